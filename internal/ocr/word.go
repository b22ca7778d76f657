package ocr

import (
	"fmt"
	"image"
	"unicode/utf8"
)

// BBox is an axis-aligned bounding box in captured-image pixel coordinates.
type BBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the exclusive right edge of the box.
func (b BBox) Right() int { return b.X + b.W }

// Bottom returns the exclusive bottom edge of the box.
func (b BBox) Bottom() int { return b.Y + b.H }

// Union returns the smallest box enclosing both b and o.
func (b BBox) Union(o BBox) BBox {
	x := min(b.X, o.X)
	y := min(b.Y, o.Y)
	return BBox{
		X: x,
		Y: y,
		W: max(b.Right(), o.Right()) - x,
		H: max(b.Bottom(), o.Bottom()) - y,
	}
}

// Rect converts the box to an image.Rectangle.
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.Right(), b.Bottom())
}

func (b BBox) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.X, b.Y, b.W, b.H)
}

// LineID identifies the OCR line a word belongs to. It is a composite
// ordering key (page, block, paragraph, line), not a database identifier.
type LineID struct {
	Page      int `json:"page"`
	Block     int `json:"block"`
	Paragraph int `json:"paragraph"`
	Line      int `json:"line"`
}

// Less orders line identities lexicographically.
func (l LineID) Less(o LineID) bool {
	if l.Page != o.Page {
		return l.Page < o.Page
	}
	if l.Block != o.Block {
		return l.Block < o.Block
	}
	if l.Paragraph != o.Paragraph {
		return l.Paragraph < o.Paragraph
	}
	return l.Line < o.Line
}

func (l LineID) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", l.Page, l.Block, l.Paragraph, l.Line)
}

// Word is a single word-level OCR detection.
type Word struct {
	// Text is the recognized surface string.
	Text string `json:"text"`

	// Line is the OCR-assigned line identity.
	Line LineID `json:"line"`

	// WordNum is the OCR-assigned position of the word within its line.
	WordNum int `json:"word_num"`

	// Conf is the recognition confidence (0-100).
	Conf float64 `json:"conf"`

	// BBox is the raw word box as reported by the engine.
	BBox BBox `json:"bbox"`
}

// CharCount returns the number of Unicode scalar values in the word text.
func (w Word) CharCount() int {
	return utf8.RuneCountInString(w.Text)
}

// Rebase maps word boxes recognized on a preprocessed capture back to the
// capture's own coordinate space. Boxes are divided by scale (when scale is
// positive and not 1) and then translated by origin.
func Rebase(words []Word, origin image.Point, scale float64) []Word {
	out := make([]Word, len(words))
	for i, w := range words {
		b := w.BBox
		if scale > 0 && scale != 1 {
			b = BBox{
				X: int(float64(b.X) / scale),
				Y: int(float64(b.Y) / scale),
				W: int(float64(b.W) / scale),
				H: int(float64(b.H) / scale),
			}
		}
		b.X += origin.X
		b.Y += origin.Y
		w.BBox = b
		out[i] = w
	}
	return out
}
