// Package cli implements the kanjisabi command line.
package cli

import (
	"os"
	"time"

	"github.com/ironsheep/kanjisabi/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logger = logrus.New()
	cfg    = config.Default()
)

var RootCmd = &cobra.Command{
	Use:   "kanjisabi",
	Short: "Japanese screen text annotation",
	Long: `kanjisabi reads Japanese text off screen captures and splits it into
morphemes with bounding boxes, readings and grammatical categories.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded

		ll, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		if ll != "" {
			cfg.Log.Level = ll
		}

		return setupLogger(logger, cfg.Log.Level)
	},
}

// setupLogger writes to stderr; stdout carries results and the MCP stream.
func setupLogger(l *logrus.Logger, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return nil
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (default "+config.DefaultPath()+")")
	RootCmd.PersistentFlags().String("log-level", os.Getenv("LOG_LEVEL"), "The logging level for the command")
}
