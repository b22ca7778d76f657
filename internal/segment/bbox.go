package segment

import (
	"unicode/utf8"

	"github.com/ironsheep/kanjisabi/internal/ocr"
)

// CharBoxes holds one entry per character of a run. The first character of
// every OCR word carries that word's raw box; the remaining characters of the
// word have no box (nil).
type CharBoxes []*ocr.BBox

// Anchored reports how many characters carry a box.
func (c CharBoxes) Anchored() int {
	n := 0
	for _, b := range c {
		if b != nil {
			n++
		}
	}
	return n
}

// Aggregate computes the run's bounding box and its per-character box table.
//
// Horizontally the box spans from the leftmost word to the rightmost word
// edge. Vertically, Tesseract's boxes for Japanese are unreliable, so y and h
// are averaged: each word contributes its y (and h) once, and the sums are
// divided by the run's character count rather than its word count.
func (r Run) Aggregate() (ocr.BBox, CharBoxes) {
	chars := make(CharBoxes, 0, r.CharCount())
	if len(r.Words) == 0 {
		return ocr.BBox{}, chars
	}

	x := r.Words[0].BBox.X
	for _, w := range r.Words[1:] {
		x = min(x, w.BBox.X)
	}

	width, sumY, sumH, total := 0, 0, 0, 0
	for _, w := range r.Words {
		b := w.BBox
		width = max(width, b.W+b.X-x)
		sumY += b.Y
		sumH += b.H

		n := utf8.RuneCountInString(w.Text)
		total += n
		for i := 0; i < n; i++ {
			if i == 0 {
				chars = append(chars, &b)
			} else {
				chars = append(chars, nil)
			}
		}
	}

	box := ocr.BBox{X: x, W: width}
	if total > 0 {
		box.Y = sumY / total
		box.H = sumH / total
	}

	return box, chars
}
