package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/kanjisabi/internal/annotate"
	"github.com/ironsheep/kanjisabi/internal/imaging"
	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/ironsheep/kanjisabi/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "kanjisabi_annotate_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

var errNotConfigured = errors.New("tool not available in this configuration")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "kanjisabi_annotate_image":
		return s.handleAnnotateImage(ctx, args)
	case "kanjisabi_annotate_tsv":
		return s.handleAnnotateTSV(ctx, args)
	case "kanjisabi_analyze":
		return s.handleAnalyze(ctx, args)
	case "kanjisabi_categorize":
		return s.handleCategorize(args)
	case "kanjisabi_dictionary":
		return s.handleDictionary(ctx)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Annotation Handlers ===

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type annotateImageArgs struct {
	Path        string      `json:"path"`
	ImageBase64 string      `json:"image_base64"`
	Region      *regionArgs `json:"region"`
	Overlay     bool        `json:"overlay"`
}

// AnnotateImageResult is the capture annotation plus an optional rendering.
type AnnotateImageResult struct {
	annotate.Result
	Overlay *imaging.EncodedImage `json:"overlay,omitempty"`
}

func (s *Server) handleAnnotateImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a annotateImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.annotator == nil || s.recognizer == nil {
		return nil, errNotConfigured
	}

	var img image.Image
	var err error
	switch {
	case a.Path != "":
		img, err = s.cache.Load(a.Path)
	case a.ImageBase64 != "":
		img, err = imaging.DecodeBase64(a.ImageBase64)
	default:
		err = errors.New("either path or image_base64 is required")
	}
	if err != nil {
		return nil, err
	}

	if a.Region != nil {
		r := image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
		if r.Empty() || !r.In(img.Bounds()) {
			return nil, fmt.Errorf("region %v outside image bounds %v", r, img.Bounds())
		}
		img = subImage(img, r)
	}

	words, err := s.recognizer.Recognize(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("recognition failed: %w", err)
	}

	res := AnnotateImageResult{Result: s.annotator.Annotate(ctx, words)}
	if a.Overlay {
		res.Overlay, err = imaging.EncodePNG(imaging.Overlay(img, res.Runs, s.palette))
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// subImage restricts img to r, keeping its coordinates when possible.
func subImage(img image.Image, r image.Rectangle) image.Image {
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	return img
}

type annotateTSVArgs struct {
	TSV string `json:"tsv"`
}

func (s *Server) handleAnnotateTSV(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a annotateTSVArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.annotator == nil {
		return nil, errNotConfigured
	}
	return s.annotator.Annotate(ctx, ocr.ParseTSVString(a.TSV)), nil
}

// === Analysis Handlers ===

type analyzeArgs struct {
	Sentence string `json:"sentence"`
}

func (s *Server) handleAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a analyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.analyzer == nil {
		return nil, errNotConfigured
	}

	morphemes, err := s.analyzer.Analyze(ctx, a.Sentence)
	if err != nil {
		return nil, err
	}
	if morphemes == nil {
		morphemes = []morph.Morpheme{}
	}
	return map[string]interface{}{"morphemes": morphemes}, nil
}

type categorizeArgs struct {
	Tags morph.Tags `json:"tags"`
	Text string     `json:"text"`
}

// CategorizeResult is a decoded tag tuple.
type CategorizeResult struct {
	morph.Morpheme
	Schema string `json:"schema,omitempty"`
}

func (s *Server) handleCategorize(args json.RawMessage) (interface{}, error) {
	var a categorizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Tags) == 0 {
		return nil, errors.New("tags are required")
	}

	res := CategorizeResult{Morpheme: morph.NewMorpheme(a.Text, a.Tags)}
	if schema := morph.SchemaFor(a.Tags); schema != nil {
		res.Schema = schema.Name
	}
	return res, nil
}

func (s *Server) handleDictionary(ctx context.Context) (interface{}, error) {
	if s.dictionary == nil {
		return nil, errNotConfigured
	}
	name, err := s.dictionary(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"name": name, "categories": CategoryNames()}, nil
}
