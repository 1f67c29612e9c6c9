package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docx/pkg/docx"
)

func newStylesCmd() *cobra.Command {
	var styleType string

	cmd := &cobra.Command{
		Use:   "styles FILE",
		Short: "List the styles of a document",
		Example: `  # All styles
  docx styles report.docx

  # Character styles only
  docx styles report.docx --type character`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter docx.StyleType
			if styleType != "" {
				st, err := parseStyleType(styleType)
				if err != nil {
					return err
				}
				filter = st
			}

			doc, err := openMainDocument(args[0])
			if err != nil {
				return err
			}
			styles, err := doc.Styles()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, style := range styles.List() {
				if filter != 0 && style.Type != filter {
					continue
				}
				marker := ""
				if style.Default {
					marker = "default"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", style.StyleID, style.Type, style.Name, marker)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&styleType, "type", "", "Only list styles of this type (paragraph, character, table, numbering)")

	return cmd
}

func newStyleIDCmd() *cobra.Command {
	var styleType string

	cmd := &cobra.Command{
		Use:   "style-id FILE NAME",
		Short: "Resolve a style name to the id content should reference",
		Long: `Resolves a style by its UI name (e.g. "Heading 1") to the style id Word
stores in content. The default style of a type resolves to no id at all,
printed as "(default)".`,
		Example: `  docx style-id report.docx "Heading 1"
  docx style-id report.docx Emphasis --type character`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStyleType(styleType)
			if err != nil {
				return err
			}

			doc, err := openMainDocument(args[0])
			if err != nil {
				return err
			}

			id, err := doc.GetStyleID(docx.RefByName(args[1]), st)
			if err != nil {
				return err
			}
			if id == "" {
				id = "(default)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&styleType, "type", "paragraph", "Style type the content needs")

	return cmd
}

func openMainDocument(path string) (*docx.DocumentPart, error) {
	pkg, err := docx.Open(path)
	if err != nil {
		return nil, err
	}
	return pkg.MainDocumentPart()
}
