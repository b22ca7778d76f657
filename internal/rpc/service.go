// Package rpc exposes morphological analysis with resolved lexical
// categories as a gRPC service, and provides the matching client.
//
// Messages are plain Go structs carried by a JSON codec, so the service needs
// no generated code.
package rpc

import (
	"context"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"google.golang.org/grpc"
)

const (
	serviceName      = "kanjisabi.morph.Api"
	dictionaryMethod = "/" + serviceName + "/Dictionary"
	analyzeMethod    = "/" + serviceName + "/Analyze"
)

// Empty is the request of Dictionary.
type Empty struct{}

// DictName names the dictionary schema of the analyzer, "ipadic" or "unidic".
type DictName struct {
	Name string `json:"name"`
}

// Sentence is the request of Analyze.
type Sentence struct {
	Sentence string `json:"sentence"`
}

// Analysis is the ordered, categorized morphemes of a sentence.
type Analysis struct {
	Morphemes []morph.Morpheme `json:"morphemes"`
}

// APIServer is the server side of the service.
type APIServer interface {
	Dictionary(context.Context, *Empty) (*DictName, error)
	Analyze(context.Context, *Sentence) (*Analysis, error)
}

func dictionaryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(APIServer).Dictionary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: dictionaryMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(APIServer).Dictionary(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func analyzeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Sentence)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(APIServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: analyzeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(APIServer).Analyze(ctx, req.(*Sentence))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*APIServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Dictionary", Handler: dictionaryHandler},
		{MethodName: "Analyze", Handler: analyzeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kanjisabi/morph/api",
}

// Register adds srv to a gRPC server.
func Register(s grpc.ServiceRegistrar, srv APIServer) {
	s.RegisterService(&ServiceDesc, srv)
}
