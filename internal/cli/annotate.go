package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/ironsheep/kanjisabi/internal/annotate"
	"github.com/ironsheep/kanjisabi/internal/imaging"
	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [image]",
	Short: "Annotate the Japanese text of a capture",
	Long: `Annotate runs OCR on a capture, segments the recognized words into
Japanese text runs and places every morpheme of each run on the capture.

With --tsv the OCR step is skipped and Tesseract TSV output is read instead.
The result is printed to stdout as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnnotate,
}

var (
	tsvPath     string
	overlayPath string
	region      []int
	direct      bool
)

func init() {
	RootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().StringVar(&tsvPath, "tsv", "", "Read words from a Tesseract TSV file (- for stdin) instead of running OCR")
	annotateCmd.Flags().StringVarP(&overlayPath, "overlay", "o", "", "Write the capture with the annotation drawn over it to this PNG file")
	annotateCmd.Flags().IntSliceVar(&region, "region", nil, "Capture region as x1,y1,x2,y2")

	RootCmd.PersistentFlags().BoolVar(&direct, "direct", false, "Query the tokenizer directly instead of the analysis server")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if tsvPath == "" && len(args) == 0 {
		return fmt.Errorf("an image or --tsv is required")
	}
	if tsvPath != "" && overlayPath != "" && len(args) == 0 {
		return fmt.Errorf("--overlay needs the capture image")
	}

	r, err := parseRegion(region)
	if err != nil {
		return err
	}

	var img image.Image
	if len(args) > 0 {
		img, err = imaging.Open(args[0])
		if err != nil {
			return err
		}
	}

	var words []ocr.Word
	if tsvPath != "" {
		words, err = readTSV(cmd.InOrStdin(), tsvPath)
		if err != nil {
			return err
		}
	} else {
		recognizer, err := newRecognizer(cfg, r)
		if err != nil {
			return err
		}
		defer recognizer.Close()
		logger.WithField("image", args[0]).Info("Recognizing capture")
		words, err = recognizer.Recognize(ctx, img)
		if err != nil {
			return fmt.Errorf("recognition failed: %w", err)
		}
	}

	be, err := connectBackend(ctx, cfg, direct, logger)
	if err != nil {
		return err
	}
	defer be.close()

	opts, err := annotateOptions(cfg, logger)
	if err != nil {
		return err
	}
	res := annotate.New(be, opts).Annotate(ctx, words)

	logger.WithField("runs", len(res.Runs)).Debug("Annotated capture")

	if overlayPath != "" {
		if err := writeOverlay(img, res, overlayPath); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func parseRegion(v []int) (image.Rectangle, error) {
	switch len(v) {
	case 0:
		return image.Rectangle{}, nil
	case 4:
		r := image.Rect(v[0], v[1], v[2], v[3])
		if r.Empty() {
			return image.Rectangle{}, fmt.Errorf("region %v is empty", r)
		}
		return r, nil
	default:
		return image.Rectangle{}, fmt.Errorf("region needs 4 values, got %d", len(v))
	}
}

func readTSV(stdin io.Reader, path string) ([]ocr.Word, error) {
	if path == "-" {
		return ocr.ParseTSV(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ocr.ParseTSV(f)
}

func writeOverlay(img image.Image, res annotate.Result, path string) error {
	p, err := newPalette(cfg)
	if err != nil {
		return err
	}
	encoded, err := imaging.EncodePNG(imaging.Overlay(img, res.Runs, p))
	if err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(encoded.ImageBase64)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}
	logger.WithField("path", path).Info("Wrote overlay")
	return nil
}
