package annotate

import (
	"unicode/utf8"

	"github.com/ironsheep/kanjisabi/internal/morph"
)

// Consistent reports whether morphemes account for exactly the characters of
// text. OCR and the analyzer tokenize independently, so a mismatch means one
// of them saw different text.
func Consistent(text string, morphemes []morph.Morpheme) bool {
	return utf8.RuneCountInString(text) == morph.CharCount(morphemes)
}
