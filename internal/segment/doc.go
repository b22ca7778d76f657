// Package segment turns word-level OCR detections into runs of Japanese text.
//
// The OCR engine is unreliable for Japanese: it splits text into "words" of
// one or a few characters, mixes in low-confidence garbage, and reports
// vertical extents that jitter from word to word. Segmentation keeps only
// what can be trusted:
//
//  1. ClusterLines groups words by their OCR line identity and sorts each
//     line by word number.
//  2. Segmenter.Segment walks a line and cuts it into Runs: maximal
//     contiguous sequences of words that are confident (conf > threshold),
//     purely Kanji/Hiragana/Katakana, and numbered consecutively.
//  3. Run.Aggregate computes the run's bounding box and a per-character box
//     table used to place morphemes back onto the image.
package segment
