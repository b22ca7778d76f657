//go:build !cgo

package ocr

import (
	"context"
	"errors"
	"image"
)

// ErrNoCgo is returned when the gosseract engine is requested in a binary
// built without cgo.
var ErrNoCgo = errors.New("gosseract engine requires a cgo build; use the cli engine")

// TesseractEngine is unavailable without cgo.
type TesseractEngine struct{}

// NewTesseractEngine always fails in non-cgo builds.
func NewTesseractEngine(cfg EngineConfig) (*TesseractEngine, error) {
	return nil, ErrNoCgo
}

// Close is a no-op in non-cgo builds.
func (e *TesseractEngine) Close() error {
	return nil
}

// Recognize always fails in non-cgo builds.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) ([]Word, error) {
	return nil, ErrNoCgo
}

// TesseractVersion reports that libtesseract is not linked.
func TesseractVersion() string {
	return "unavailable (built without cgo)"
}
