package ocr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WordLevel is the value of the first TSV field for word-level records.
const WordLevel = "5"

// minFields is the number of fields in a complete Tesseract TSV record:
// level, page, block, paragraph, line, word, left, top, width, height, conf, text.
const minFields = 12

// ErrMalformedRecord is returned by ParseRecord for rows that cannot be turned
// into a Word.
var ErrMalformedRecord = errors.New("malformed OCR record")

// ParseTSV reads Tesseract TSV output and returns its word-level records in
// input order. Malformed and non-word rows are skipped; the returned error is
// non-nil only when reading from r fails.
func ParseTSV(r io.Reader) ([]Word, error) {
	scanner := bufio.NewScanner(r)
	// Long lines show up when the engine hallucinates text over noisy captures
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	words := make([]Word, 0)
	for scanner.Scan() {
		word, err := ParseRecord(scanner.Text())
		if err != nil {
			continue
		}
		words = append(words, word)
	}

	if err := scanner.Err(); err != nil {
		return words, fmt.Errorf("failed to read OCR output: %w", err)
	}

	return words, nil
}

// ParseTSVString is a convenience wrapper around ParseTSV.
func ParseTSVString(s string) []Word {
	words, _ := ParseTSV(strings.NewReader(s))
	return words
}

// ParseRecord parses a single TSV row. It returns ErrMalformedRecord (wrapped)
// for rows that are not word-level or that do not satisfy the record format.
func ParseRecord(line string) (Word, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "\t")
	if fields[0] != WordLevel {
		return Word{}, fmt.Errorf("%w: level %q is not word level", ErrMalformedRecord, fields[0])
	}
	if len(fields) < minFields {
		return Word{}, fmt.Errorf("%w: %d fields, want %d", ErrMalformedRecord, len(fields), minFields)
	}

	ints := make([]int, 9)
	for i := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(fields[i+1]))
		if err != nil {
			return Word{}, fmt.Errorf("%w: field %d: %v", ErrMalformedRecord, i+1, err)
		}
		ints[i] = v
	}

	conf, err := strconv.ParseFloat(strings.TrimSpace(fields[10]), 64)
	if err != nil {
		return Word{}, fmt.Errorf("%w: confidence: %v", ErrMalformedRecord, err)
	}

	// Empty text is kept: the word still occupies its word_num.
	return Word{
		Text: fields[11],
		Line: LineID{
			Page:      ints[0],
			Block:     ints[1],
			Paragraph: ints[2],
			Line:      ints[3],
		},
		WordNum: ints[4],
		Conf:    conf,
		BBox: BBox{
			X: ints[5],
			Y: ints[6],
			W: ints[7],
			H: ints[8],
		},
	}, nil
}
