// Package ocr turns Tesseract output into typed word records.
//
// Tesseract reports recognition results at five granularities (page, block,
// paragraph, line, word). Only word-level records are of interest here: each
// one carries the recognized surface text, the composite line identity it
// belongs to, its position within that line, a confidence score and a pixel
// bounding box in the coordinate space of the image handed to the engine.
//
// # Sources
//
// Words can be obtained in three ways:
//
//   - ParseTSV: parse the tab-separated output of `tesseract <img> stdout tsv`
//   - CLIEngine: run the tesseract binary and parse its TSV output
//   - TesseractEngine: call libtesseract through gosseract (requires cgo)
//
// # Malformed Records
//
// The engine is not trusted. Rows that are not word-level, have fewer than
// twelve fields, carry non-numeric geometry or confidence, or have empty text
// are dropped silently. A parse never fails because of the content of a row;
// only I/O errors from the underlying reader are returned.
//
// # Coordinates
//
// Bounding boxes are (x, y, w, h) with (0,0) at the top-left corner of the
// recognized image. When the image was cropped or scaled before recognition,
// Rebase maps the boxes back to the original capture.
package ocr
