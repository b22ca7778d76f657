package rpc

import (
	"context"
	"fmt"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls the analysis service. It implements morph.Analyzer.
type Client struct {
	conn       *grpc.ClientConn
	dictionary string
	log        logrus.FieldLogger
}

// Connect dials address and calls Dictionary until it answers or the budget
// is spent, in which case the error wraps ErrUnavailable.
func Connect(ctx context.Context, address string, b Budget, log logrus.FieldLogger) (*Client, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("analyzer", address)

	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", address, err)
	}

	c := &Client{conn: conn, log: log}

	b = b.withDefaults()
	err = retry(ctx, b, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, 4*b.Interval)
		defer cancel()

		name, err := c.Dictionary(attemptCtx)
		if err != nil {
			log.WithError(err).Debug("Analyzer not ready")
			return err
		}
		c.dictionary = name
		return nil
	})
	if err != nil {
		conn.Close()
		return nil, err
	}

	log.WithField("dictionary", c.dictionary).Info("Connected to analyzer")
	return c, nil
}

// Dictionary asks the server for its schema name.
func (c *Client) Dictionary(ctx context.Context) (string, error) {
	out := new(DictName)
	if err := c.conn.Invoke(ctx, dictionaryMethod, &Empty{}, out); err != nil {
		return "", err
	}
	return out.Name, nil
}

// DictionaryName is the schema name reported when connecting.
func (c *Client) DictionaryName() string {
	return c.dictionary
}

// Analyze returns the categorized morphemes of sentence.
func (c *Client) Analyze(ctx context.Context, sentence string) ([]morph.Morpheme, error) {
	out := new(Analysis)
	if err := c.conn.Invoke(ctx, analyzeMethod, &Sentence{Sentence: sentence}, out); err != nil {
		return nil, err
	}
	return out.Morphemes, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
