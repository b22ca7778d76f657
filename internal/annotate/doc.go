// Package annotate turns OCR words into annotated runs: runs of trusted
// Japanese words, each with its aggregate box and the categorized morphemes
// of its text placed on the image.
//
// Analysis failures and OCR/analyzer disagreements never fail a capture; the
// affected run keeps its geometry and loses its morphemes.
package annotate
