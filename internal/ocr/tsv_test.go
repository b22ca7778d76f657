package ocr

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t640\t480\t-1\t\n" +
	"4\t1\t1\t1\t1\t0\t10\t20\t200\t30\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t10\t20\t30\t30\t96.5\t降\n" +
	"5\t1\t1\t1\t1\t2\t40\t21\t28\t29\t91\tった\n" +
	"5\t1\t1\t1\t2\t1\t10\t60\t30\t30\t88.25\t雨\n"

func TestParseTSV(t *testing.T) {
	words, err := ParseTSV(strings.NewReader(sampleTSV))
	require.NoError(t, err)
	require.Len(t, words, 3)

	assert.Equal(t, Word{
		Text:    "降",
		Line:    LineID{Page: 1, Block: 1, Paragraph: 1, Line: 1},
		WordNum: 1,
		Conf:    96.5,
		BBox:    BBox{X: 10, Y: 20, W: 30, H: 30},
	}, words[0])
	assert.Equal(t, "った", words[1].Text)
	assert.Equal(t, 2, words[1].WordNum)
	assert.Equal(t, LineID{Page: 1, Block: 1, Paragraph: 1, Line: 2}, words[2].Line)
	assert.InDelta(t, 88.25, words[2].Conf, 0.001)
}

func TestParseTSV_Empty(t *testing.T) {
	words, err := ParseTSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestParseTSV_CRLF(t *testing.T) {
	words := ParseTSVString("5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t90\t雨\r\n")
	require.Len(t, words, 1)
	assert.Equal(t, "雨", words[0].Text)
}

func TestParseRecord_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"header", "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"},
		{"line level", "4\t1\t1\t1\t1\t0\t10\t20\t200\t30\t-1\tx"},
		{"level with prefix", "51\t1\t1\t1\t1\t1\t10\t20\t30\t30\t96\t雨"},
		{"too few fields", "5\t1\t1\t1\t1\t1\t10\t20\t30\t30\t96"},
		{"non-numeric page", "5\tx\t1\t1\t1\t1\t10\t20\t30\t30\t96\t雨"},
		{"non-numeric width", "5\t1\t1\t1\t1\t1\t10\t20\tw\t30\t96\t雨"},
		{"non-numeric conf", "5\t1\t1\t1\t1\t1\t10\t20\t30\t30\thigh\t雨"},
		{"blank", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
		})
	}
}

func TestParseRecord_KeepsEmptyText(t *testing.T) {
	w, err := ParseRecord("5\t1\t1\t1\t1\t2\t10\t20\t30\t30\t96\t")
	require.NoError(t, err)
	assert.Equal(t, "", w.Text)
	assert.Equal(t, 2, w.WordNum)
	assert.Equal(t, 0, w.CharCount())
}

func TestParseTSV_DropsMalformedKeepsRest(t *testing.T) {
	input := "5\t1\t1\t1\t1\t1\t10\t20\t30\t30\tbad\t雨\n" +
		"5\t1\t1\t1\t1\t2\t40\t20\t30\t30\t95\t降る\n" +
		"5\t1\t1\t1\n"
	words := ParseTSVString(input)
	require.Len(t, words, 1)
	assert.Equal(t, "降る", words[0].Text)
}

func TestWord_CharCount(t *testing.T) {
	assert.Equal(t, 3, Word{Text: "降った"}.CharCount())
	assert.Equal(t, 0, Word{}.CharCount())
	assert.Equal(t, 2, Word{Text: "𠀋々"}.CharCount())
}

func TestLineID_Less(t *testing.T) {
	a := LineID{Page: 1, Block: 1, Paragraph: 1, Line: 2}
	b := LineID{Page: 1, Block: 2, Paragraph: 1, Line: 1}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}

func TestBBox_Union(t *testing.T) {
	a := BBox{X: 10, Y: 20, W: 30, H: 30}
	b := BBox{X: 35, Y: 15, W: 20, H: 20}
	assert.Equal(t, BBox{X: 10, Y: 15, W: 45, H: 35}, a.Union(b))
	assert.Equal(t, image.Rect(10, 20, 40, 50), a.Rect())
}

func TestRebase(t *testing.T) {
	words := []Word{{Text: "雨", BBox: BBox{X: 20, Y: 40, W: 60, H: 80}}}

	scaled := Rebase(words, image.Pt(100, 200), 2)
	assert.Equal(t, BBox{X: 110, Y: 220, W: 30, H: 40}, scaled[0].BBox)
	assert.Equal(t, BBox{X: 20, Y: 40, W: 60, H: 80}, words[0].BBox, "input must not be modified")

	unscaled := Rebase(words, image.Point{}, 1)
	assert.Equal(t, words[0].BBox, unscaled[0].BBox)
}
