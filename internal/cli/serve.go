package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/kanjisabi/internal/rpc"
	"github.com/ironsheep/kanjisabi/internal/tokenizer"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the morphological analysis server",
	Long: `Serve waits for the tokenizer to answer, resolves its dictionary schema
and exposes Dictionary and Analyze over gRPC until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", "", "Listen address (overrides server.address)")
	serveCmd.Flags().String("dictionary", "", "Dictionary schema: auto, ipadic or unidic (overrides server.dictionary)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if v, _ := cmd.Flags().GetString("address"); v != "" {
		cfg.Server.Address = v
	}
	if v, _ := cmd.Flags().GetString("dictionary"); v != "" {
		cfg.Server.Dictionary = v
	}

	client := tokenizer.New(tokenizerConfig(cfg), logger)

	dictionary, err := rpc.ResolveDictionary(ctx, client, cfg.Server.Dictionary, connectBudget(cfg), logger)
	if err != nil {
		logger.WithError(err).WithField("tokenizer", cfg.Tokenizer.Address).Error("Tokenizer unavailable")
		return err
	}

	return rpc.ListenAndServe(ctx, cfg.Server.Address, rpc.NewServer(client, dictionary, logger), logger)
}
