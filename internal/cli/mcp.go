package cli

import (
	"image"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/kanjisabi/internal/annotate"
	"github.com/ironsheep/kanjisabi/internal/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the annotation tools over MCP on stdio",
	Long: `Mcp runs a Model Context Protocol server on stdin and stdout.
Configure it in your MCP client (e.g., Claude Desktop).`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	RootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := connectBackend(ctx, cfg, direct, logger)
	if err != nil {
		return err
	}
	defer be.close()

	annotateOpts, err := annotateOptions(cfg, logger)
	if err != nil {
		return err
	}
	recognizer, err := newRecognizer(cfg, image.Rectangle{})
	if err != nil {
		// TSV and analysis tools still work without an OCR engine
		logger.WithError(err).Warn("OCR engine unavailable")
	}
	p, err := newPalette(cfg)
	if err != nil {
		return err
	}

	opts := server.Options{
		Annotator:  annotate.New(be, annotateOpts),
		Analyzer:   be,
		Dictionary: be.dictionary,
		Palette:    p,
		Log:        logger,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
	}
	if recognizer != nil {
		opts.Recognizer = recognizer
		defer recognizer.Close()
	}

	logger.WithField("version", server.Version).Debug("Starting MCP server")
	return server.New(opts).Run(ctx)
}
