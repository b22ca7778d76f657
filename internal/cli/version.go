package cli

import (
	"fmt"

	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/ironsheep/kanjisabi/internal/server"
	"github.com/spf13/cobra"
)

// Version information - set by ldflags during build
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "kanjisabi %s\n", server.Version)
		fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		fmt.Fprintf(out, "  Tesseract:  %s\n", ocr.TesseractVersion())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
