package main

import (
	"fmt"

	"github.com/dgallion1/docpad/internal/docio"
	"github.com/spf13/cobra"
)

var decodeOut string

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Print a document as annotated text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, log, err := newService()
		if err != nil {
			return err
		}
		loaded, err := svc.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if loaded.Outcome == docio.OutcomePlainFallback {
			log.Warn("formatting could not be recovered", "file", args[0], "cause", loaded.Cause)
		}
		if decodeOut != "" {
			return svc.Save(cmd.Context(), decodeOut, loaded.Text)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), loaded.Text)
		return err
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode <in.txt> <out>",
	Short: "Save annotated text as a document",
	Long:  "Save annotated text as a document. Only **bold** markers are applied; other markers stay literal.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		if !docio.IsTextExtension(args[0]) {
			return fmt.Errorf("%w: input must be a text file", docio.ErrUnsupportedFormat)
		}
		loaded, err := svc.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return svc.Save(cmd.Context(), args[1], loaded.Text)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Print a short summary of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		summary, err := svc.Preview(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.String())
		return err
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Convert between formats, e.g. notes.md to notes.docx",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		return svc.Convert(cmd.Context(), args[0], args[1])
	},
}
