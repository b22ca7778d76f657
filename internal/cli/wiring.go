package cli

import (
	"context"
	"image"

	"github.com/ironsheep/kanjisabi/internal/annotate"
	"github.com/ironsheep/kanjisabi/internal/config"
	"github.com/ironsheep/kanjisabi/internal/imaging"
	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/ironsheep/kanjisabi/internal/palette"
	"github.com/ironsheep/kanjisabi/internal/rpc"
	"github.com/ironsheep/kanjisabi/internal/tokenizer"
	"github.com/sirupsen/logrus"
)

func tokenizerConfig(c config.Config) tokenizer.Config {
	return tokenizer.Config{
		Address:           c.Tokenizer.Address,
		Timeout:           c.Tokenizer.Timeout,
		Retries:           c.Tokenizer.Retries,
		RequestsPerSecond: c.Tokenizer.RequestsPerSecond,
	}
}

func connectBudget(c config.Config) rpc.Budget {
	return rpc.Budget{
		Attempts: c.Server.ConnectAttempts,
		Interval: c.Server.ConnectInterval,
	}
}

func engineConfig(c config.Config) ocr.EngineConfig {
	return ocr.EngineConfig{
		Language:       c.OCR.Language,
		TessdataPrefix: c.OCR.TessdataPrefix,
		TesseractPath:  c.OCR.TesseractPath,
	}
}

func preprocOptions(c config.Config, region image.Rectangle) imaging.Options {
	return imaging.Options{
		Region:    region,
		Scale:     c.Preproc.Scale,
		Contrast:  c.Preproc.Contrast,
		Grayscale: c.Preproc.Grayscale,
		Threshold: c.Preproc.Threshold,
	}
}

func annotateOptions(c config.Config, log logrus.FieldLogger) (annotate.Options, error) {
	policy, err := annotate.ParsePolicy(c.Pipeline.Unanchored)
	if err != nil {
		return annotate.Options{}, err
	}
	return annotate.Options{
		Threshold:   c.OCR.ConfidenceThreshold,
		Concurrency: c.Pipeline.Concurrency,
		Policy:      policy,
		Log:         log,
	}, nil
}

// newRecognizer builds the configured OCR engine behind capture preprocessing.
func newRecognizer(c config.Config, region image.Rectangle) (*imaging.Recognizer, error) {
	engine, err := ocr.NewEngine(c.OCR.Engine, engineConfig(c))
	if err != nil {
		return nil, err
	}
	return &imaging.Recognizer{Engine: engine, Options: preprocOptions(c, region)}, nil
}

func newPalette(c config.Config) (*palette.Palette, error) {
	return palette.New(c.Colors)
}

// backend is the morphological analyzer a client command talks to.
type backend struct {
	morph.Analyzer
	dictionary func(ctx context.Context) (string, error)
	close      func() error
}

// connectBackend reaches the analysis service, or the tokenizer itself when
// direct is set.
func connectBackend(ctx context.Context, c config.Config, direct bool, log logrus.FieldLogger) (*backend, error) {
	if direct {
		client := tokenizer.New(tokenizerConfig(c), log)
		return &backend{
			Analyzer: client,
			dictionary: func(ctx context.Context) (string, error) {
				schema, err := client.Probe(ctx)
				if err != nil {
					return "", err
				}
				return schema.Name, nil
			},
			close: func() error { return nil },
		}, nil
	}

	client, err := rpc.Connect(ctx, c.Server.Address, connectBudget(c), log)
	if err != nil {
		return nil, err
	}
	return &backend{
		Analyzer:   client,
		dictionary: client.Dictionary,
		close:      client.Close,
	}, nil
}
