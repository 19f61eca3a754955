package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/client"
)

var (
	generateServer    string
	generatePhotoPath string
	generateOutPath   string
	formBirthDate     string
	formGender        string
	formVibe          string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an aura portrait through a running server",
	Long: `Uploads a photo and requests an aura portrait from a running aura server,
then writes the returned image to --out (aura.png, aura.webp, ... by default).

Example:
  aura generate --birth-date 2000-07-04 --gender female --vibe celestial --photo me.jpg`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addFormFlags(generateCmd)
	generateCmd.Flags().StringVar(&generateServer, "server", envOr("AURA_SERVER_URL", "http://localhost:3000"), "Base URL of the aura server")
	generateCmd.Flags().StringVar(&generatePhotoPath, "photo", "", "Path to the photo to upload")
	generateCmd.Flags().StringVarP(&generateOutPath, "out", "o", "aura", "Where to save the generated image; the extension follows the returned image type unless one is given")
}

func addFormFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&formBirthDate, "birth-date", "", "Birth date as YYYY-MM-DD")
	cmd.Flags().StringVar(&formGender, "gender", "female", "Gender: female, male or non-binary")
	cmd.Flags().StringVar(&formVibe, "vibe", "ethereal", "Vibe style: ethereal, cyberpunk, mystic, celestial, crystalline, bioluminescent, vaporwave, painterly")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sub := client.Submission{
		BirthDate: formBirthDate,
		Gender:    formGender,
		Vibe:      formVibe,
	}
	if generatePhotoPath != "" {
		path := generatePhotoPath
		sub.Photo = &client.Photo{
			Name: filepath.Base(path),
			Open: func() (io.ReadCloser, error) { return os.Open(path) },
		}
	}

	renderer := &client.TerminalRenderer{Out: cmd.OutOrStdout(), OutPath: generateOutPath}
	controller := client.NewController(client.NewHTTPRelay(&http.Client{}, generateServer), logger)

	if _, err := controller.Generate(cmd.Context(), sub, renderer); err != nil {
		return err
	}
	return renderer.Err()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
