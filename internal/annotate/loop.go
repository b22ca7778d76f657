package annotate

import (
	"context"
	"image"
	"sync"

	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/sirupsen/logrus"
)

// Command is a discrete trigger delivered to a Loop.
type Command interface {
	command()
}

// Capture starts a new generation. Words are used as given; otherwise Image
// is recognized with the loop's engine.
type Capture struct {
	Image image.Image
	Words []ocr.Word
}

// Reset abandons any in-flight capture and publishes an empty result.
type Reset struct{}

// Shutdown stops the loop. With Drain set the loop first waits for the
// current capture and publishes its result.
type Shutdown struct {
	Drain bool
}

func (Capture) command()  {}
func (Reset) command()    {}
func (Shutdown) command() {}

// Loop serialises commands for an Annotator. Each capture supersedes the
// previous one: the older analysis is cancelled and its result, should it
// still arrive, is dropped.
type Loop struct {
	annotator *Annotator
	engine    ocr.Engine
	log       logrus.FieldLogger

	commands chan Command
	results  chan Result
}

// NewLoop creates a loop. engine may be nil when captures always carry words.
func NewLoop(annotator *Annotator, engine ocr.Engine, log logrus.FieldLogger) *Loop {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loop{
		annotator: annotator,
		engine:    engine,
		log:       log,
		commands:  make(chan Command),
		results:   make(chan Result, 1),
	}
}

// Send delivers cmd to the running loop.
func (l *Loop) Send(ctx context.Context, cmd Command) error {
	select {
	case l.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results yields the latest current result. An unread result is replaced by
// a newer one.
func (l *Loop) Results() <-chan Result {
	return l.results
}

// Run processes commands until Shutdown or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	done := make(chan Result)
	quit := make(chan struct{})
	cancel := context.CancelFunc(func() {})

	// pending counts capture goroutines whose result has not been received.
	pending := 0
	draining := false

	var wg sync.WaitGroup
	defer func() {
		cancel()
		close(quit)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-l.commands:
			switch c := cmd.(type) {
			case Capture:
				cancel()
				gen := l.annotator.Next()

				var runCtx context.Context
				runCtx, cancel = context.WithCancel(ctx)

				pending++
				wg.Add(1)
				go func() {
					defer wg.Done()
					res := l.capture(runCtx, gen, c)
					select {
					case done <- res:
					case <-quit:
					}
				}()

			case Reset:
				cancel()
				gen := l.annotator.Next()
				l.publish(Result{Generation: gen, Runs: []AnnotatedRun{}})

			case Shutdown:
				if c.Drain && pending > 0 {
					l.log.WithField("pending", pending).Debug("Annotation loop draining")
					draining = true
					continue
				}
				l.log.Debug("Annotation loop shutting down")
				return nil
			}

		case res := <-done:
			pending--
			if res.Generation != l.annotator.Current() {
				l.log.WithFields(logrus.Fields{
					"generation": res.Generation,
					"current":    l.annotator.Current(),
				}).Debug("Dropping stale result")
			} else {
				l.publish(res)
			}
			if draining && pending == 0 {
				l.log.Debug("Annotation loop shutting down")
				return nil
			}
		}
	}
}

func (l *Loop) capture(ctx context.Context, gen uint64, c Capture) Result {
	words := c.Words
	if words == nil && c.Image != nil && l.engine != nil {
		recognized, err := l.engine.Recognize(ctx, c.Image)
		if err != nil {
			l.log.WithError(err).WithField("generation", gen).Warn("Recognition failed")
		}
		words = recognized
	}
	return l.annotator.AnnotateGeneration(ctx, gen, words)
}

// publish replaces any unread result. Only the loop goroutine sends.
func (l *Loop) publish(r Result) {
	select {
	case <-l.results:
	default:
	}
	l.results <- r
}
