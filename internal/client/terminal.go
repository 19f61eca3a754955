package client

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
)

// TerminalRenderer prints view model changes as text and saves the generated image to OutPath.
// An OutPath without an extension gets one matching the image's media type.
type TerminalRenderer struct {
	Out     io.Writer
	OutPath string

	lastStatus string
	lastError  string
	saved      bool
	savedPath  string
	saveErr    error
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Render prints status changes, errors and the final result
func (t *TerminalRenderer) Render(vm ViewModel) {
	if vm.Loading && vm.Status != t.lastStatus {
		fmt.Fprintln(t.Out, vm.Status)
	}
	t.lastStatus = vm.Status

	if vm.ErrorVisible && vm.ErrorMessage != t.lastError {
		fmt.Fprintln(t.Out, vm.ErrorMessage)
		t.lastError = vm.ErrorMessage
	}

	if vm.ResultVisible && !t.saved {
		t.saved = true
		fmt.Fprintf(t.Out, "Zodiac: %s\n%s\n", vm.Zodiac, vm.Description)
		if t.OutPath == "" {
			return
		}
		path := outputPath(t.OutPath, domain.DataURIMediaType(vm.ImageDataURI))
		if err := writeDataURI(path, vm.ImageDataURI); err != nil {
			t.saveErr = err
			fmt.Fprintf(t.Out, "could not save image: %v\n", err)
			return
		}
		t.savedPath = path
		fmt.Fprintf(t.Out, "Saved aura to %s\n", path)
	}
}

// Err reports a failure to save the generated image
func (t *TerminalRenderer) Err() error {
	return t.saveErr
}

// SavedPath returns where the image was written, or "" if nothing was saved
func (t *TerminalRenderer) SavedPath() string {
	return t.savedPath
}

func outputPath(path, mediaType string) string {
	if filepath.Ext(path) != "" {
		return path
	}
	if ext, ok := imageExtensions[mediaType]; ok {
		return path + ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return path + exts[0]
	}
	return path
}

func writeDataURI(path, dataURI string) error {
	data, err := base64.StdEncoding.DecodeString(domain.StripDataURIPrefix(dataURI))
	if err != nil {
		return fmt.Errorf("invalid image data: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
