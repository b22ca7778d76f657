// Package config loads kanjisabi settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ironsheep/kanjisabi/internal/annotate"
	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/ironsheep/kanjisabi/internal/palette"
	"github.com/ironsheep/kanjisabi/internal/rpc"
	"github.com/ironsheep/kanjisabi/internal/segment"
	"github.com/ironsheep/kanjisabi/internal/tokenizer"
	"github.com/sirupsen/logrus"
	yaml "go.yaml.in/yaml/v3"
)

// FileName is the configuration file looked up in the user config dir.
const FileName = "kanjisabi.yaml"

type Config struct {
	Tokenizer Tokenizer         `yaml:"tokenizer"`
	Server    Server            `yaml:"server"`
	OCR       OCR               `yaml:"ocr"`
	Preproc   Preproc           `yaml:"preproc"`
	Pipeline  Pipeline          `yaml:"pipeline"`
	Colors    map[string]string `yaml:"colors"`
	Log       Log               `yaml:"log"`
}

// Tokenizer configures the client of the base tokenizer.
type Tokenizer struct {
	Address           string        `yaml:"address"`
	Timeout           time.Duration `yaml:"timeout"`
	Retries           int           `yaml:"retries"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// Server configures the analysis service, and where clients find it.
type Server struct {
	Address         string        `yaml:"address"`
	Dictionary      string        `yaml:"dictionary"`
	ConnectAttempts int           `yaml:"connect_attempts"`
	ConnectInterval time.Duration `yaml:"connect_interval"`
}

type OCR struct {
	Engine              string  `yaml:"engine"`
	Language            string  `yaml:"language"`
	TessdataPrefix      string  `yaml:"tessdata_prefix"`
	TesseractPath       string  `yaml:"tesseract_path"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

type Preproc struct {
	Contrast  float64 `yaml:"contrast"`
	Grayscale bool    `yaml:"grayscale"`
	Threshold uint8   `yaml:"threshold"`
	Scale     float64 `yaml:"scale"`
}

type Pipeline struct {
	Concurrency int    `yaml:"concurrency"`
	Unanchored  string `yaml:"unanchored"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tokenizer: Tokenizer{
			Address: tokenizer.DefaultAddress,
			Timeout: 5 * time.Second,
			Retries: 2,
		},
		Server: Server{
			Address:         rpc.DefaultAddress,
			Dictionary:      rpc.AutoDictionary,
			ConnectAttempts: rpc.DefaultConnectAttempts,
			ConnectInterval: rpc.DefaultConnectInterval,
		},
		OCR: OCR{
			Engine:              ocr.GosseractEngine,
			Language:            ocr.DefaultLanguage,
			TesseractPath:       "tesseract",
			ConfidenceThreshold: segment.DefaultConfidenceThreshold,
		},
		Preproc: Preproc{
			Contrast: 100,
			Scale:    1,
		},
		Pipeline: Pipeline{
			Unanchored: string(annotate.Interpolate),
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath returns FileName inside the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, FileName)
}

// Load reads the file at path over the defaults, then applies environment
// overrides and validates the result. An empty path means DefaultPath, which
// may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from KANJISABI_* variables (plus LOG_LEVEL and
// TESSDATA_PREFIX).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"KANJISABI_TOKENIZER_ADDRESS": &c.Tokenizer.Address,
		"KANJISABI_SERVER_ADDRESS":    &c.Server.Address,
		"KANJISABI_DICTIONARY":        &c.Server.Dictionary,
		"KANJISABI_OCR_ENGINE":        &c.OCR.Engine,
		"KANJISABI_OCR_LANGUAGE":      &c.OCR.Language,
		"KANJISABI_TESSERACT_PATH":    &c.OCR.TesseractPath,
		"TESSDATA_PREFIX":             &c.OCR.TessdataPrefix,
		"KANJISABI_UNANCHORED":        &c.Pipeline.Unanchored,
		"LOG_LEVEL":                   &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("KANJISABI_CONCURRENCY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("KANJISABI_CONCURRENCY: %w", err)
		}
		c.Pipeline.Concurrency = n
	}
	if v, ok := lookup("KANJISABI_CONFIDENCE_THRESHOLD"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("KANJISABI_CONFIDENCE_THRESHOLD: %w", err)
		}
		c.OCR.ConfidenceThreshold = f
	}
	return nil
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	if c.Tokenizer.Address == "" {
		errs = append(errs, errors.New("tokenizer.address is required"))
	}
	if c.Tokenizer.Retries < 0 {
		errs = append(errs, errors.New("tokenizer.retries must not be negative"))
	}
	if c.Tokenizer.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("tokenizer.requests_per_second must not be negative"))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.Dictionary != rpc.AutoDictionary {
		if _, err := morph.SchemaByName(c.Server.Dictionary); err != nil {
			errs = append(errs, fmt.Errorf("server.dictionary: %w", err))
		}
	}
	if c.Server.ConnectAttempts < 0 {
		errs = append(errs, errors.New("server.connect_attempts must not be negative"))
	}
	if !ocr.KnownEngine(c.OCR.Engine) {
		errs = append(errs, fmt.Errorf("ocr.engine: unknown engine %q", c.OCR.Engine))
	}
	// Zero selects the annotator default, so it cannot be configured.
	if c.OCR.ConfidenceThreshold <= 0 || c.OCR.ConfidenceThreshold > 100 {
		errs = append(errs, errors.New("ocr.confidence_threshold must be within (0, 100]"))
	}
	if c.Preproc.Contrast < -100 || c.Preproc.Contrast > 100 {
		errs = append(errs, errors.New("preproc.contrast must be within [-100, 100]"))
	}
	if c.Preproc.Scale < 0 {
		errs = append(errs, errors.New("preproc.scale must not be negative"))
	}
	if c.Pipeline.Concurrency < 0 {
		errs = append(errs, errors.New("pipeline.concurrency must not be negative"))
	}
	if _, err := annotate.ParsePolicy(c.Pipeline.Unanchored); err != nil {
		errs = append(errs, fmt.Errorf("pipeline.unanchored: %w", err))
	}
	if _, err := palette.New(c.Colors); err != nil {
		errs = append(errs, fmt.Errorf("colors: %w", err))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}
