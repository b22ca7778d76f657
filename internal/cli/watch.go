package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ironsheep/kanjisabi/internal/annotate"
	"github.com/ironsheep/kanjisabi/internal/imaging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Annotate captures named on stdin as they arrive",
	Long: `Watch reads one command per line from stdin:

  <path>   annotate the capture at path, superseding any capture in progress
  reset    drop the current annotation
  quit     stop watching

Each current result is printed to stdout as one JSON line. Results of
superseded captures are never printed. End of input stops watching once
the capture in progress has been printed.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntSliceVar(&region, "region", nil, "Capture region as x1,y1,x2,y2")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := parseRegion(region)
	if err != nil {
		return err
	}
	recognizer, err := newRecognizer(cfg, r)
	if err != nil {
		return err
	}
	defer recognizer.Close()

	be, err := connectBackend(ctx, cfg, direct, logger)
	if err != nil {
		return err
	}
	defer be.close()

	opts, err := annotateOptions(cfg, logger)
	if err != nil {
		return err
	}

	loop := annotate.NewLoop(annotate.New(be, opts), recognizer, logger)
	return watch(ctx, loop, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
}

// watch drives loop from the command lines of in and prints its results.
func watch(ctx context.Context, loop *annotate.Loop, in io.Reader, out io.Writer, log logrus.FieldLogger) error {
	g, ctx := errgroup.WithContext(ctx)
	stopped := make(chan struct{})

	g.Go(func() error {
		defer close(stopped)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		enc := json.NewEncoder(out)
		for {
			select {
			case res := <-loop.Results():
				if err := enc.Encode(res); err != nil {
					return fmt.Errorf("failed to write result: %w", err)
				}
			case <-stopped:
				select {
				case res := <-loop.Results():
					return enc.Encode(res)
				default:
					return nil
				}
			}
		}
	})

	// Not part of the group: a blocked read of stdin must not hold up the exit
	go func() {
		stop, err := feed(ctx, loop, in, log)
		if err != nil {
			log.WithError(err).Error("Failed to read commands")
		}
		_ = loop.Send(ctx, stop)
	}()

	return g.Wait()
}

// feed sends commands to loop until quit or the end of in, and returns the
// Shutdown that should follow. End of input lets the current capture finish.
func feed(ctx context.Context, loop *annotate.Loop, in io.Reader, log logrus.FieldLogger) (annotate.Shutdown, error) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		cmd, ok := parseWatchCommand(scanner.Text(), log)
		if !ok {
			continue
		}
		if stop, quit := cmd.(annotate.Shutdown); quit {
			return stop, nil
		}
		if loop.Send(ctx, cmd) != nil {
			// stopped
			return annotate.Shutdown{}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return annotate.Shutdown{}, err
	}
	return annotate.Shutdown{Drain: true}, nil
}

// parseWatchCommand decodes capture paths afresh on every line, since
// captures are usually rewritten in place.
func parseWatchCommand(line string, log logrus.FieldLogger) (annotate.Command, bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return nil, false
	case "reset":
		return annotate.Reset{}, true
	case "quit":
		return annotate.Shutdown{}, true
	}

	img, err := imaging.Open(line)
	if err != nil {
		log.WithError(err).WithField("path", line).Warn("Skipping capture")
		return nil, false
	}
	return annotate.Capture{Image: img}, true
}
