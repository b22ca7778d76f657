package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
)

// CLIEngine runs the tesseract binary and parses its TSV output.
type CLIEngine struct {
	cfg EngineConfig
}

// NewCLIEngine creates an engine that shells out to tesseract.
func NewCLIEngine(cfg EngineConfig) *CLIEngine {
	if cfg.TesseractPath == "" {
		cfg.TesseractPath = "tesseract"
	}
	return &CLIEngine{cfg: cfg}
}

// Recognize writes img to a temporary PNG, runs tesseract on it and parses
// the resulting TSV. The temporary file is removed before returning.
func (e *CLIEngine) Recognize(ctx context.Context, img image.Image) ([]Word, error) {
	tmpFile, err := os.CreateTemp("", "kanjisabi-capture-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.cfg.TesseractPath, tmpPath, "stdout", "-l", e.cfg.language(), "tsv")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tesseract failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return ParseTSV(&stdout)
}
