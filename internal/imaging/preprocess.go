package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// DefaultContrast is the contrast boost applied before recognition.
const DefaultContrast = 100.0

// Options controls capture preprocessing. Steps run in field order.
type Options struct {
	// Region is the capture area. The empty rectangle means the whole image.
	Region image.Rectangle

	// Scale resizes the capture; 0 and 1 keep its size.
	Scale float64

	// Contrast is a percentage in [-100, 100]; 0 leaves the image as is.
	Contrast float64

	Grayscale bool

	// Threshold binarises the capture at this luminance; 0 disables it.
	Threshold uint8
}

// Transform maps boxes on a preprocessed image back to the source image.
type Transform struct {
	Origin image.Point
	Scale  float64
}

// Preprocess crops, scales and filters img for OCR.
func Preprocess(img image.Image, opts Options) (image.Image, Transform, error) {
	bounds := img.Bounds()
	region := opts.Region
	if region.Empty() {
		region = bounds
	}

	if !region.In(bounds) {
		return nil, Transform{}, fmt.Errorf("capture region %v outside image bounds %v", region, bounds)
	}

	t := Transform{Origin: region.Min, Scale: 1}
	out := image.Image(imaging.Crop(img, region))

	if opts.Scale > 0 && opts.Scale != 1 {
		w := int(float64(region.Dx()) * opts.Scale)
		h := int(float64(region.Dy()) * opts.Scale)
		if w < 1 || h < 1 {
			return nil, Transform{}, fmt.Errorf("scale %.2f collapses a %dx%d capture", opts.Scale, region.Dx(), region.Dy())
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
		t.Scale = opts.Scale
	}

	if opts.Contrast != 0 {
		out = imaging.AdjustContrast(out, opts.Contrast)
	}
	if opts.Grayscale {
		out = imaging.Grayscale(out)
	}
	if opts.Threshold > 0 {
		out = segment.Threshold(out, opts.Threshold)
	}

	return out, t, nil
}
