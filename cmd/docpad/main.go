package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docpad/internal/config"
	"github.com/dgallion1/docpad/internal/docio"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "docpad",
		Short:         "Edit rich documents as annotated plain text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	verbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "docpad:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	decodeCmd.Flags().StringVarP(&decodeOut, "output", "o", "", "Write the annotated text to this file instead of stdout")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(convertCmd)
}

// newService builds the document service from the environment and the
// optional DOCPAD_CONFIG file. The API key is not required here.
func newService() (*docio.Service, *slog.Logger, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return docio.New(log, docio.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}), log, nil
}
