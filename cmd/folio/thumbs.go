package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/alexchen-dev/folio"
)

func newThumbsCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "thumbs <src-dir> <dst-dir>",
		Short: "Generate JPEG thumbnails for project images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			thumbs, errs := folio.ThumbnailDir(args[0], args[1], width)
			for _, t := range thumbs {
				fmt.Fprintf(out, "%s -> %s (%dx%d, %s)\n", t.Source, t.Path, t.Width, t.Height, humanize.Bytes(uint64(t.Size)))
			}
			for _, err := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), "skipped:", err)
			}
			if len(thumbs) == 0 && len(errs) > 0 {
				return fmt.Errorf("no thumbnails written")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", folio.DefaultThumbWidth, "maximum thumbnail width in pixels")
	return cmd
}
