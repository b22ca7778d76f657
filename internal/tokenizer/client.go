// Package tokenizer is a client for the base morphological tokenizer, an
// HTTP service that accepts a UTF-8 sentence on POST /tokenize and answers
// with one record per morpheme.
package tokenizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultAddress is where the tokenizer listens unless configured otherwise.
const DefaultAddress = "0.0.0.0:3333"

// ProbeSentence is analysed to detect the dictionary schema in use.
const ProbeSentence = "。"

// ErrBadResponse is returned when the tokenizer answers with a non-200
// status or a body that is not a token list.
var ErrBadResponse = errors.New("bad tokenizer response")

// Token is one record of the tokenizer's answer.
type Token struct {
	Text   string   `json:"text"`
	Detail []string `json:"detail"`
}

// Config holds the client settings.
type Config struct {
	Address           string
	Timeout           time.Duration
	Retries           int
	RequestsPerSecond float64
}

// Client talks to the tokenizer. It implements morph.Analyzer.
type Client struct {
	endpoint   string
	httpClient *retryablehttp.Client
	limiter    *rate.Limiter
	log        logrus.FieldLogger
}

// New creates a client. A zero RequestsPerSecond disables rate limiting.
func New(cfg Config, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	client.RetryWaitMin = 50 * time.Millisecond
	client.RetryWaitMax = 500 * time.Millisecond
	client.Logger = nil // requests are logged by Tokenize
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		endpoint:   baseURL(cfg.Address) + "/tokenize",
		httpClient: client,
		limiter:    limiter,
		log:        log.WithField("tokenizer", cfg.Address),
	}
}

func baseURL(address string) string {
	if strings.Contains(address, "://") {
		return strings.TrimRight(address, "/")
	}
	return "http://" + address
}

// Tokenize sends text to the tokenizer and returns its records in order.
func (c *Client) Tokenize(ctx context.Context, text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to tokenizer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(body),
		}).Warn("Tokenizer returned non-200 status")
		return nil, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var tokens []Token
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	c.log.WithFields(logrus.Fields{
		"text":   text,
		"tokens": len(tokens),
	}).Debug("Tokenized")

	return tokens, nil
}

// Analyze tokenizes sentence and decodes each record into a categorized
// morpheme.
func (c *Client) Analyze(ctx context.Context, sentence string) ([]morph.Morpheme, error) {
	tokens, err := c.Tokenize(ctx, sentence)
	if err != nil {
		return nil, err
	}

	morphemes := make([]morph.Morpheme, 0, len(tokens))
	for _, t := range tokens {
		morphemes = append(morphemes, morph.NewMorpheme(t.Text, morph.Tags(t.Detail)))
	}
	return morphemes, nil
}

// Probe analyses ProbeSentence and returns the schema matching the length of
// the first tag tuple.
func (c *Client) Probe(ctx context.Context) (*morph.Schema, error) {
	tokens, err := c.Tokenize(ctx, ProbeSentence)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens for probe sentence", ErrBadResponse)
	}

	schema := morph.SchemaFor(morph.Tags(tokens[0].Detail))
	if schema == nil {
		return nil, fmt.Errorf("%w: unknown tag tuple length %d", ErrBadResponse, len(tokens[0].Detail))
	}
	return schema, nil
}
