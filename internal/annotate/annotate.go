package annotate

import (
	"context"
	"runtime"
	"sync/atomic"
	"unicode/utf8"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/ironsheep/kanjisabi/internal/segment"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AnnotatedRun is a run with its aggregate box and placed morphemes.
// Morphemes is empty when analysis failed or did not match the run text.
type AnnotatedRun struct {
	Text      string           `json:"text"`
	Line      ocr.LineID       `json:"line"`
	BBox      ocr.BBox         `json:"bbox"`
	Morphemes []VisualMorpheme `json:"morphemes"`
}

// Result is the outcome of one capture.
type Result struct {
	Generation uint64         `json:"generation"`
	Runs       []AnnotatedRun `json:"runs"`
}

// Options configures an Annotator.
type Options struct {
	// Threshold is the OCR confidence a word must exceed. Zero means
	// segment.DefaultConfidenceThreshold.
	Threshold float64

	// Concurrency bounds in-flight analyses per capture. Zero means
	// GOMAXPROCS.
	Concurrency int

	Policy Policy
	Log    logrus.FieldLogger
}

// Annotator runs the capture pipeline: segmentation, aggregation, analysis,
// validation and alignment.
type Annotator struct {
	segmenter   *segment.Segmenter
	analyzer    morph.Analyzer
	concurrency int
	policy      Policy
	log         logrus.FieldLogger

	generation atomic.Uint64
}

// New creates an annotator backed by analyzer.
func New(analyzer morph.Analyzer, opts Options) *Annotator {
	if opts.Threshold == 0 {
		opts.Threshold = segment.DefaultConfidenceThreshold
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	if opts.Policy == "" {
		opts.Policy = Interpolate
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	return &Annotator{
		segmenter:   segment.NewSegmenter(opts.Threshold),
		analyzer:    analyzer,
		concurrency: opts.Concurrency,
		policy:      opts.Policy,
		log:         opts.Log,
	}
}

// Next starts a new generation and returns its number.
func (a *Annotator) Next() uint64 {
	return a.generation.Add(1)
}

// Current returns the latest generation.
func (a *Annotator) Current() uint64 {
	return a.generation.Load()
}

// Annotate processes words as a new generation.
func (a *Annotator) Annotate(ctx context.Context, words []ocr.Word) Result {
	return a.AnnotateGeneration(ctx, a.Next(), words)
}

// AnnotateGeneration processes words under an already reserved generation.
// Runs are analysed concurrently; the result lists them in line order.
func (a *Annotator) AnnotateGeneration(ctx context.Context, gen uint64, words []ocr.Word) Result {
	runs := a.segmenter.SegmentWords(words)
	out := make([]AnnotatedRun, len(runs))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, run := range runs {
		g.Go(func() error {
			out[i] = a.AnnotateRun(ctx, run)
			return nil
		})
	}
	_ = g.Wait()

	a.log.WithFields(logrus.Fields{
		"generation": gen,
		"words":      len(words),
		"runs":       len(runs),
	}).Debug("Annotated capture")

	return Result{Generation: gen, Runs: out}
}

// AnnotateRun analyses a single run.
func (a *Annotator) AnnotateRun(ctx context.Context, run segment.Run) AnnotatedRun {
	box, chars := run.Aggregate()
	text := run.Text()

	ar := AnnotatedRun{
		Text:      text,
		Line:      run.Line,
		BBox:      box,
		Morphemes: []VisualMorpheme{},
	}

	morphemes, err := a.analyzer.Analyze(ctx, text)
	if err != nil {
		entry := a.log.WithError(err).WithField("text", text)
		if ctx.Err() != nil {
			entry.Debug("Analysis abandoned")
		} else {
			entry.Warn("Analysis failed")
		}
		return ar
	}

	if !Consistent(text, morphemes) {
		a.log.WithFields(logrus.Fields{
			"text":           text,
			"run_chars":      utf8.RuneCountInString(text),
			"morpheme_chars": morph.CharCount(morphemes),
		}).Info("Character count mismatch, discarding morphemes")
		return ar
	}

	ar.Morphemes = Align(morphemes, chars, box, a.policy)
	return ar
}
