package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docx/pkg/docx"
)

func newPartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parts FILE",
		Short: "List the parts of a package with their content types",
		Example: `  # List every part of report.docx
  docx parts report.docx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := docx.Open(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, part := range pkg.Parts() {
				fmt.Fprintf(w, "%s\t%s\t%d rels\n", part.PartName(), part.ContentType(), part.Rels().Len())
			}
			return w.Flush()
		},
	}
}
