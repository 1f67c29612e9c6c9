package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docx/pkg/docx"
)

type addPictureOptions struct {
	output string
	width  string
	height string
	header string
	footer string
}

func newAddPictureCmd() *cobra.Command {
	opts := &addPictureOptions{}

	cmd := &cobra.Command{
		Use:   "add-picture FILE IMAGE",
		Short: "Append an inline picture to a story and save the document",
		Long: `Appends a paragraph holding IMAGE as an inline picture to the document
body, or to the header or footer named by its relationship id.

Sizes take a unit suffix (in, cm, mm, pt, twip, emu). When only one of
--width and --height is given the other keeps the aspect ratio; with
neither the image's native size is used.`,
		Example: `  docx add-picture report.docx logo.png -o out.docx --width 2in
  docx add-picture report.docx logo.png -o out.docx --header rId7 --height 1cm`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output .docx file (required)")
	cmd.Flags().StringVar(&opts.width, "width", "", "Picture width, e.g. 2in")
	cmd.Flags().StringVar(&opts.height, "height", "", "Picture height, e.g. 3cm")
	cmd.Flags().StringVar(&opts.header, "header", "", "Relationship id of the header to add the picture to")
	cmd.Flags().StringVar(&opts.footer, "footer", "", "Relationship id of the footer to add the picture to")
	_ = cmd.MarkFlagRequired("output")
	cmd.MarkFlagsMutuallyExclusive("header", "footer")

	return cmd
}

func (o *addPictureOptions) run(cmd *cobra.Command, file, image string) error {
	width, err := parseOptionalLength("--width", o.width)
	if err != nil {
		return err
	}
	height, err := parseOptionalLength("--height", o.height)
	if err != nil {
		return err
	}

	pkg, err := docx.Open(file)
	if err != nil {
		return err
	}
	doc, err := pkg.MainDocumentPart()
	if err != nil {
		return err
	}

	story, err := o.story(doc)
	if err != nil {
		return err
	}

	inline, err := story.AddPicture(image, width, height)
	if err != nil {
		return err
	}

	if err := pkg.SaveFile(o.output); err != nil {
		return err
	}

	cx, cy := inline.Size()
	docx.WithFields(docx.Fields{"part": story.PartName(), "rId": inline.RelID()}).Debug("added picture %s", image)
	fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s as %s (%s x %s, id %d)\n",
		inline.Filename(), story.PartName(), inline.RelID(), docx.Emu(cx), docx.Emu(cy), inline.ShapeID())
	return nil
}

// story picks the body, or the header/footer named by --header/--footer
func (o *addPictureOptions) story(doc *docx.DocumentPart) (*docx.StoryPart, error) {
	switch {
	case o.header != "":
		hp, err := doc.HeaderPart(o.header)
		if err != nil {
			return nil, err
		}
		return hp.StoryPart, nil
	case o.footer != "":
		fp, err := doc.FooterPart(o.footer)
		if err != nil {
			return nil, err
		}
		return fp.StoryPart, nil
	}
	return doc.StoryPart, nil
}

func parseOptionalLength(flag, value string) (docx.Length, error) {
	if value == "" {
		return 0, nil
	}
	l, err := docx.ParseLength(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", flag, err)
	}
	if l == 0 {
		return 0, errors.New(flag + " must be greater than zero")
	}
	return l, nil
}
