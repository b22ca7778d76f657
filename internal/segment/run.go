package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/kanjisabi/internal/ocr"
)

// DefaultConfidenceThreshold is the OCR confidence a word must exceed to be
// part of a run.
const DefaultConfidenceThreshold = 80.0

// Run is a non-empty, contiguous sequence of trusted words from one line.
type Run struct {
	Line  ocr.LineID `json:"line"`
	Words []ocr.Word `json:"words"`
}

// Text returns the concatenated text of the run's words.
func (r Run) Text() string {
	var sb strings.Builder
	for _, w := range r.Words {
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// CharCount returns the number of Unicode scalar values in the run text.
func (r Run) CharCount() int {
	n := 0
	for _, w := range r.Words {
		n += utf8.RuneCountInString(w.Text)
	}
	return n
}

// Segmenter splits OCR lines into runs.
type Segmenter struct {
	// Threshold is the exclusive lower bound on word confidence.
	Threshold float64

	// Accept decides whether a word's text belongs in a run.
	Accept func(text string) bool
}

// NewSegmenter returns a segmenter accepting pure Japanese words whose
// confidence exceeds threshold.
func NewSegmenter(threshold float64) *Segmenter {
	return &Segmenter{
		Threshold: threshold,
		Accept:    IsJapaneseText,
	}
}

func (s *Segmenter) trusted(w ocr.Word) bool {
	return w.Conf > s.Threshold && s.Accept(w.Text)
}

// Segment cuts a sorted line into runs. A word that is not trusted closes the
// current run and is dropped; a gap in word numbers closes the current run and
// starts a new one at the next trusted word.
func (s *Segmenter) Segment(line Line) []Run {
	runs := make([]Run, 0)
	var current []ocr.Word

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, Run{Line: line.ID, Words: current})
		}
		current = nil
	}

	for _, w := range line.Words {
		if !s.trusted(w) {
			flush()
			continue
		}
		if len(current) > 0 && current[len(current)-1].WordNum+1 != w.WordNum {
			flush()
		}
		current = append(current, w)
	}
	flush()

	return runs
}

// SegmentWords clusters words into lines and segments every line, returning
// runs in line order.
func (s *Segmenter) SegmentWords(words []ocr.Word) []Run {
	runs := make([]Run, 0)
	for _, line := range ClusterLines(words) {
		runs = append(runs, s.Segment(line)...)
	}
	return runs
}
