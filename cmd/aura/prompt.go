package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/prompt"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/zodiac"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the zodiac sign, age and generation prompt for a birth date",
	Args:  cobra.NoArgs,
	RunE:  runPrompt,
}

func init() {
	addFormFlags(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	birth, err := zodiac.ParseBirthDate(formBirthDate)
	if err != nil {
		return err
	}
	gender, err := domain.ParseGender(formGender)
	if err != nil {
		return err
	}
	vibe, err := domain.ParseVibeStyle(formVibe)
	if err != nil {
		return err
	}

	c := prompt.Compose(birth, gender, vibe, time.Now())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Zodiac: %s\n", c.Zodiac)
	fmt.Fprintf(out, "Age: %d\n", c.Age)
	fmt.Fprintf(out, "Prompt: %s\n", c.Prompt)
	fmt.Fprintf(out, "Description: %s\n", c.Description)
	return nil
}
