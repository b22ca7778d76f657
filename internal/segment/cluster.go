package segment

import (
	"sort"

	"github.com/ironsheep/kanjisabi/internal/ocr"
)

// Line is the set of words sharing one OCR line identity, sorted by word number.
type Line struct {
	ID    ocr.LineID
	Words []ocr.Word
}

// ClusterLines groups words by line identity. Lines are returned in line
// identity order (page, block, paragraph, line) and the words of each line
// are sorted by word number; words with equal numbers keep their input order.
func ClusterLines(words []ocr.Word) []Line {
	index := make(map[ocr.LineID]int)
	lines := make([]Line, 0)

	for _, w := range words {
		i, ok := index[w.Line]
		if !ok {
			i = len(lines)
			index[w.Line] = i
			lines = append(lines, Line{ID: w.Line})
		}
		lines[i].Words = append(lines[i].Words, w)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].ID.Less(lines[j].ID)
	})
	for _, line := range lines {
		sort.SliceStable(line.Words, func(i, j int) bool {
			return line.Words[i].WordNum < line.Words[j].WordNum
		})
	}

	return lines
}
