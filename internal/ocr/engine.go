package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// DefaultLanguage is the Tesseract language used for horizontal Japanese text.
const DefaultLanguage = "jpn"

// ErrClosed is returned by engines used after Close.
var ErrClosed = errors.New("OCR engine closed")

// Engine recognizes word-level text in an image.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]Word, error)
}

// EngineConfig holds the settings shared by the Tesseract engines.
type EngineConfig struct {
	// Language is the Tesseract language code, "jpn" when empty.
	Language string

	// TessdataPrefix overrides the tessdata directory (gosseract engine only).
	TessdataPrefix string

	// TesseractPath is the tesseract binary (CLI engine only).
	TesseractPath string
}

func (c EngineConfig) language() string {
	if c.Language == "" {
		return DefaultLanguage
	}
	return c.Language
}

// Engine names accepted by NewEngine.
const (
	GosseractEngine = "gosseract"
	CLIEngineName   = "cli"
)

// KnownEngine reports whether NewEngine accepts name.
func KnownEngine(name string) bool {
	switch name {
	case "", GosseractEngine, CLIEngineName:
		return true
	}
	return false
}

// NewEngine returns the engine registered under name: "gosseract" (default)
// or "cli".
func NewEngine(name string, cfg EngineConfig) (Engine, error) {
	switch name {
	case "", GosseractEngine:
		return NewTesseractEngine(cfg)
	case CLIEngineName:
		return NewCLIEngine(cfg), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine: %s", name)
	}
}
