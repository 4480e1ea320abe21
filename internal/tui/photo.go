package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/studybunny/internal/composer"
	"github.com/jask/studybunny/internal/record"
)

// PhotoPicker resolves what the user typed into a photo pick.
type PhotoPicker interface {
	Pick(input string) (composer.PhotoResult, error)
}

// FilePhotos picks image files from the local disk.
type FilePhotos struct {
	Validator *record.Validator
}

// Pick treats blank input as a cancelled pick.
func (p FilePhotos) Pick(input string) (composer.PhotoResult, error) {
	path := strings.TrimSpace(input)
	if path == "" {
		return composer.PhotoResult{Cancelled: true}, nil
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(os.Getenv("HOME"), path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return composer.PhotoResult{}, fmt.Errorf("resolve photo path: %w", err)
	}
	v := p.Validator
	if v == nil {
		v = record.NewValidator()
	}
	if err := v.ImageFile(abs); err != nil {
		return composer.PhotoResult{}, fmt.Errorf("photo: %w", err)
	}
	return composer.PhotoResult{URI: "file://" + abs}, nil
}
