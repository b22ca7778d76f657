package rpc

import (
	"context"
	"fmt"
	"net"
	"unicode/utf8"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultAddress is where the analysis service listens unless configured
// otherwise.
const DefaultAddress = "0.0.0.0:55555"

// AutoDictionary asks the server to detect the schema from the tokenizer.
const AutoDictionary = "auto"

// Prober reports the dictionary schema of a tokenizer.
type Prober interface {
	Probe(ctx context.Context) (*morph.Schema, error)
}

// Server implements APIServer on top of a morph.Analyzer.
type Server struct {
	analyzer   morph.Analyzer
	dictionary string
	log        logrus.FieldLogger
}

// NewServer creates a server answering Dictionary with dictionary.
func NewServer(analyzer morph.Analyzer, dictionary string, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{analyzer: analyzer, dictionary: dictionary, log: log}
}

func (s *Server) Dictionary(ctx context.Context, _ *Empty) (*DictName, error) {
	return &DictName{Name: s.dictionary}, nil
}

func (s *Server) Analyze(ctx context.Context, in *Sentence) (*Analysis, error) {
	if !utf8.ValidString(in.Sentence) {
		return nil, status.Error(codes.InvalidArgument, "sentence is not valid UTF-8")
	}

	morphemes, err := s.analyzer.Analyze(ctx, in.Sentence)
	if err != nil {
		s.log.WithError(err).WithField("sentence", in.Sentence).Warn("Analysis failed")
		return nil, status.Errorf(codes.Unavailable, "tokenizer: %v", err)
	}
	if morphemes == nil {
		morphemes = []morph.Morpheme{}
	}

	s.log.WithFields(logrus.Fields{
		"sentence":  in.Sentence,
		"morphemes": len(morphemes),
	}).Debug("Analyzed sentence")

	return &Analysis{Morphemes: morphemes}, nil
}

// ResolveDictionary checks the tokenizer is reachable within the budget and
// returns the schema name to advertise. With AutoDictionary the probed
// schema wins; otherwise the configured name is validated and kept.
func ResolveDictionary(ctx context.Context, p Prober, configured string, b Budget, log logrus.FieldLogger) (string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var want *morph.Schema
	if configured != "" && configured != AutoDictionary {
		s, err := morph.SchemaByName(configured)
		if err != nil {
			return "", err
		}
		want = s
	}

	var probed *morph.Schema
	err := retry(ctx, b, func(ctx context.Context) error {
		s, err := p.Probe(ctx)
		if err != nil {
			log.WithError(err).Debug("Tokenizer probe failed")
			return err
		}
		probed = s
		return nil
	})
	if err != nil {
		return "", err
	}

	if want == nil {
		log.WithField("dictionary", probed.Name).Info("Detected dictionary schema")
		return probed.Name, nil
	}
	if want != probed {
		log.WithFields(logrus.Fields{
			"configured": want.Name,
			"detected":   probed.Name,
		}).Warn("Configured dictionary differs from the tokenizer's")
	}
	return want.Name, nil
}

// Serve runs a gRPC server for srv on lis until ctx is cancelled.
func Serve(ctx context.Context, lis net.Listener, srv APIServer, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}

	g := grpc.NewServer()
	Register(g, srv)

	go func() {
		<-ctx.Done()
		g.GracefulStop()
	}()

	log.WithField("address", lis.Addr().String()).Info("Analysis service listening")
	if err := g.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// ListenAndServe listens on address and calls Serve.
func ListenAndServe(ctx context.Context, address string, srv APIServer, log logrus.FieldLogger) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return Serve(ctx, lis, srv, log)
}
