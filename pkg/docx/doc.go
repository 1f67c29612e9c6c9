// Package docx opens Microsoft Word documents (DOCX) and works on their story parts.
//
// A DOCX file is an OPC package: a zip archive of parts connected by relationships.
// Story parts hold the document's content: the main document body, headers and footers.
// Every story part resolves styles through the main document part and can place
// pictures inline.
//
// # Quick Start
//
//	pkg, err := docx.Open("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := pkg.MainDocumentPart()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Two inches wide, height follows the aspect ratio
//	if _, err := doc.AddPicture("logo.png", docx.Inches(2), 0); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := pkg.SaveFile("output.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Styles
//
// Styles are looked up by id and type, or referenced by the name Word shows:
//
//	id, err := doc.GetStyleID(docx.RefByName("Heading 1"), docx.StyleParagraph)
//
// An empty id means the default style of the type; content using it carries no style
// reference. Asking for a style of the wrong type is an error.
//
// # Pictures
//
// NewPicInline builds a wp:inline element for an image file without inserting it;
// AddPicture also appends it as a new paragraph at the end of the story. The same image
// file used twice shares one media part and one relationship per story part.
//
// # Configuration
//
// Configuration is read from DOCX_* environment variables and optionally a YAML file:
//
//	DOCX_LOG_LEVEL            - debug, info, warn, error or off (default: info)
//	DOCX_DEFAULT_DPI          - resolution of images that record none (default: 72)
//	DOCX_SCALE_ROUNDING       - half-even, half-up, floor or ceil (default: half-even)
//	DOCX_IMAGE_CACHE_MAX_SIZE - cached image descriptors, 0 disables (default: 64)
//	DOCX_IMAGE_CACHE_TTL      - lifetime of cached descriptors, e.g. 5m (default: none)
//
// A Package is not safe for concurrent use. The image cache may be shared between
// packages with WithImageCache.
package docx
