package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/kanjisabi/internal/annotate"
	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/ironsheep/kanjisabi/internal/palette"
)

func TestOverlay(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	img := solidImage(60, 40, white)

	morphBox := &ocr.BBox{X: 10, Y: 10, W: 20, H: 10}
	runs := []annotate.AnnotatedRun{{
		Text: "降った",
		BBox: ocr.BBox{X: 10, Y: 10, W: 30, H: 10},
		Morphemes: []annotate.VisualMorpheme{
			{Morpheme: morph.Morpheme{Text: "降っ", Category: morph.Verb}, BBox: morphBox},
			{Morpheme: morph.Morpheme{Text: "た", Category: morph.AuxiliaryVerb}},
		},
	}}

	p := palette.Default()
	if err := p.Set("Verb", "#ff0000ff"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out := Overlay(img, runs, p)

	if got := out.NRGBAAt(0, 0); got != white {
		t.Errorf("pixel outside the run changed: %v", got)
	}
	if got := out.NRGBAAt(10, 10); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("morpheme outline: got %v, want opaque red", got)
	}
	if got := out.NRGBAAt(35, 15); got == white {
		t.Error("run area was not highlighted")
	}
	if img.RGBAAt(10, 10) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("Overlay mutated its input")
	}
}

func TestOverlay_ClipsToImage(t *testing.T) {
	img := solidImage(10, 10, color.White)
	runs := []annotate.AnnotatedRun{{
		BBox: ocr.BBox{X: 5, Y: 5, W: 50, H: 50},
		Morphemes: []annotate.VisualMorpheme{
			{BBox: &ocr.BBox{X: -5, Y: -5, W: 100, H: 100}},
			{BBox: &ocr.BBox{X: 3, Y: 3, W: 0, H: 4}},
		},
	}}

	out := Overlay(img, runs, palette.Default())
	if out.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("bounds: got %v", out.Bounds())
	}
}

func TestEncodePNG(t *testing.T) {
	enc, err := EncodePNG(solidImage(7, 3, color.Black))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if enc.Width != 7 || enc.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 7x3", enc.Width, enc.Height)
	}
	if enc.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", enc.MimeType)
	}
	if _, err := base64.StdEncoding.DecodeString(enc.ImageBase64); err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
	if _, err := DecodeBase64(enc.ImageBase64); err != nil {
		t.Errorf("round trip failed: %v", err)
	}
}
