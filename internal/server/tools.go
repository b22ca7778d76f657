package server

import "github.com/ironsheep/kanjisabi/internal/morph"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Capture Annotation
		{
			Name:        "kanjisabi_annotate_image",
			Description: "Run OCR on a screen capture and split every Japanese text run into morphemes with per-morpheme bounding boxes and grammatical categories. Optionally returns a base64 PNG with the runs and morphemes highlighted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the capture file",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64 encoded capture, used when path is empty",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional capture region in pixels",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Render the annotation over the capture",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "kanjisabi_annotate_tsv",
			Description: "Annotate pre-recognized Tesseract TSV output (level, page, block, par, line, word, left, top, width, height, conf, text).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tsv": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract TSV output, header row optional",
					},
				},
				"required": []string{"tsv"},
			},
		},

		// Morphological Analysis
		{
			Name:        "kanjisabi_analyze",
			Description: "Split a Japanese sentence into morphemes with lemma, reading and grammatical category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sentence": map[string]interface{}{
						"type":        "string",
						"description": "Sentence to analyze",
					},
				},
				"required": []string{"sentence"},
			},
		},
		{
			Name:        "kanjisabi_categorize",
			Description: "Map a raw dictionary tag tuple (9 fields for IPADIC, 17 for UniDic) to a grammatical category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tags": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Tag tuple as returned by the tokenizer",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Optional surface text of the morpheme",
					},
				},
				"required": []string{"tags"},
			},
		},
		{
			Name:        "kanjisabi_dictionary",
			Description: "Report the dictionary schema used by the morphological analyzer.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// CategoryNames lists the category names tools may return.
func CategoryNames() []string {
	cats := morph.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return names
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{"tools": GetToolDefinitions()}}
}
