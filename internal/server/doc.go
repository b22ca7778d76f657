// Package server implements the MCP (Model Context Protocol) server for kanjisabi.
//
// The server exposes the capture annotation pipeline to MCP clients so that an
// assistant can read Japanese text off a screenshot together with its
// morpheme boundaries, readings and grammatical categories.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Capture Annotation:
//   - kanjisabi_annotate_image: OCR a capture and annotate its Japanese runs
//   - kanjisabi_annotate_tsv: Annotate pre-recognized Tesseract TSV
//
// Morphological Analysis:
//   - kanjisabi_analyze: Split a sentence into morphemes
//   - kanjisabi_categorize: Categorize a raw tag tuple
//   - kanjisabi_dictionary: Report the analyzer's dictionary schema
//
// # Result Format
//
// Tool results are returned as MCP text content holding pretty-printed JSON.
// Annotation results carry the capture generation and one entry per text
// run. A run whose morphemes do not cover its characters keeps its bounding
// box and reports no morphemes.
//
// # Errors
//
//   - -32601: Unknown method
//   - -32602: Malformed tools/call params
//   - -32000: Tool execution failed (message carries the cause)
package server
