package annotate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyzerFunc adapts a function to morph.Analyzer.
type analyzerFunc func(ctx context.Context, sentence string) ([]morph.Morpheme, error)

func (f analyzerFunc) Analyze(ctx context.Context, sentence string) ([]morph.Morpheme, error) {
	return f(ctx, sentence)
}

// splitting answers each sentence with the given surfaces.
func splitting(table map[string][]string) analyzerFunc {
	return func(ctx context.Context, sentence string) ([]morph.Morpheme, error) {
		surfaces, ok := table[sentence]
		if !ok {
			return nil, errors.New("unexpected sentence " + sentence)
		}
		out := make([]morph.Morpheme, len(surfaces))
		for i, s := range surfaces {
			out[i] = morph.Morpheme{Text: s}
		}
		return out, nil
	}
}

func word(text string, num, x int) ocr.Word {
	return ocr.Word{
		Text:    text,
		Line:    ocr.LineID{Page: 1, Block: 1, Paragraph: 1, Line: 1},
		WordNum: num,
		Conf:    95,
		BBox:    ocr.BBox{X: x, Y: 5, W: 10, H: 20},
	}
}

func TestAnnotate_MorphemesSpanTheirCharacters(t *testing.T) {
	logger, _ := test.NewNullLogger()
	a := New(splitting(map[string][]string{"降った": {"降っ", "た"}}), Options{Log: logger})

	res := a.Annotate(context.Background(), []ocr.Word{
		word("降", 1, 10),
		word("っ", 2, 20),
		word("た", 3, 30),
	})

	require.Len(t, res.Runs, 1)
	run := res.Runs[0]
	assert.Equal(t, "降った", run.Text)
	assert.Equal(t, ocr.BBox{X: 10, Y: 5, W: 30, H: 20}, run.BBox)

	require.Len(t, run.Morphemes, 2)
	assert.Equal(t, &ocr.BBox{X: 10, Y: 5, W: 20, H: 20}, run.Morphemes[0].BBox)
	assert.Equal(t, &ocr.BBox{X: 30, Y: 5, W: 10, H: 20}, run.Morphemes[1].BBox)
	assert.False(t, run.Morphemes[0].Interpolated)
	assert.False(t, run.Morphemes[1].Interpolated)
}

func TestAnnotate_CharacterMismatchDiscardsMorphemes(t *testing.T) {
	logger, hook := test.NewNullLogger()
	a := New(splitting(map[string][]string{"きれいな": {"きれ", "い"}}), Options{Log: logger})

	res := a.Annotate(context.Background(), []ocr.Word{
		word("きれい", 1, 0),
		word("な", 2, 30),
	})

	require.Len(t, res.Runs, 1)
	run := res.Runs[0]
	assert.Empty(t, run.Morphemes)
	assert.NotNil(t, run.Morphemes)
	assert.Equal(t, ocr.BBox{X: 0, Y: 2, W: 40, H: 10}, run.BBox)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Character count mismatch, discarding morphemes", entry.Message)
	assert.Equal(t, 4, entry.Data["run_chars"])
	assert.Equal(t, 3, entry.Data["morpheme_chars"])
}

func TestAnnotate_AnalyzerFailureKeepsGeometry(t *testing.T) {
	logger, hook := test.NewNullLogger()
	failing := analyzerFunc(func(context.Context, string) ([]morph.Morpheme, error) {
		return nil, errors.New("connection refused")
	})
	a := New(failing, Options{Log: logger})

	res := a.Annotate(context.Background(), []ocr.Word{word("雨", 1, 0)})

	require.Len(t, res.Runs, 1)
	assert.Empty(t, res.Runs[0].Morphemes)
	assert.Equal(t, 10, res.Runs[0].BBox.W)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestAnnotate_RunsKeepLineOrder(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var inFlight, peak atomic.Int32
	analyzer := analyzerFunc(func(ctx context.Context, s string) ([]morph.Morpheme, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		return []morph.Morpheme{{Text: s}}, nil
	})
	a := New(analyzer, Options{Log: logger, Concurrency: 2})

	var words []ocr.Word
	texts := []string{"一", "二", "三", "四", "五"}
	for i, text := range texts {
		w := word(text, 1, 0)
		w.Line.Line = i + 1
		words = append(words, w)
	}

	res := a.Annotate(context.Background(), words)
	require.Len(t, res.Runs, len(texts))
	for i, run := range res.Runs {
		assert.Equal(t, texts[i], run.Text)
		assert.Equal(t, i+1, run.Line.Line)
		require.Len(t, run.Morphemes, 1)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestAnnotate_CharacterConservation(t *testing.T) {
	logger, _ := test.NewNullLogger()
	a := New(splitting(map[string][]string{
		"今日は雨": {"今日", "は", "雨"},
		"傘":    {"傘"},
	}), Options{Log: logger})

	low := word("ABC", 5, 60)
	res := a.Annotate(context.Background(), []ocr.Word{
		word("今日", 1, 0),
		word("は", 2, 20),
		word("雨", 3, 30),
		low,
		word("傘", 6, 80),
	})

	require.Len(t, res.Runs, 2)
	for _, run := range res.Runs {
		ms := make([]morph.Morpheme, len(run.Morphemes))
		for i, vm := range run.Morphemes {
			ms[i] = vm.Morpheme
		}
		assert.True(t, Consistent(run.Text, ms), run.Text)
	}
}

func TestAnnotate_EmptyCapture(t *testing.T) {
	a := New(splitting(nil), Options{})
	res := a.Annotate(context.Background(), nil)
	assert.Empty(t, res.Runs)
	assert.NotNil(t, res.Runs)
	assert.Equal(t, uint64(1), res.Generation)
	assert.Equal(t, uint64(1), a.Current())
}

func TestConsistent(t *testing.T) {
	ms := []morph.Morpheme{{Text: "降っ"}, {Text: "た"}}
	assert.True(t, Consistent("降った", ms))
	assert.False(t, Consistent("降ったり", ms))
	assert.True(t, Consistent("", nil))
}
