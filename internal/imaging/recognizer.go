package imaging

import (
	"context"
	"image"
	"io"

	"github.com/ironsheep/kanjisabi/internal/ocr"
)

// Recognizer preprocesses captures before handing them to an OCR engine and
// maps the resulting boxes back to capture coordinates.
type Recognizer struct {
	Engine  ocr.Engine
	Options Options
}

// Recognize implements ocr.Engine.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) ([]ocr.Word, error) {
	processed, t, err := Preprocess(img, r.Options)
	if err != nil {
		return nil, err
	}

	words, err := r.Engine.Recognize(ctx, processed)
	if err != nil {
		return nil, err
	}
	return ocr.Rebase(words, t.Origin, t.Scale), nil
}

// Close releases the engine when it holds resources.
func (r *Recognizer) Close() error {
	if c, ok := r.Engine.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
