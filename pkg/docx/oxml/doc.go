// Package oxml provides the XML fragments go-docx reads and writes inside DOCX parts.
//
// DOCX files are ZIP archives of XML parts. The docx package handles the container, the
// relationship graph and the typed parts; this package holds the element-level pieces:
//
//   - ns.go: namespace URIs
//   - inline.go: the wp:inline fragment that embeds a picture in a run (CT_Inline)
//   - styles.go: the w:styles / w:style elements of styles.xml
//   - story.go: token-level helpers over story XML (document body, header, footer)
//
// # Prefixed names
//
// Elements are marshaled with literal prefixed names ("wp:inline", "a:blip") the way Word
// writes them. Fragments that may be embedded on their own declare every prefix they use, so
// the output of Inline.XML is a well-formed document by itself:
//
//	inline := oxml.NewPicInline(24, "rId42", "bar.png", 444, 888)
//	s, err := inline.XML()
//
// # XML Namespaces
//
// Story XML uses several namespaces:
//   - w: (word processing) - Main WordProcessingML namespace
//   - r: (relationships) - Relationships namespace
//   - wp: (word processing drawing) - Inline and anchored drawings
//   - a: (drawing) - DrawingML namespace
//   - pic: (picture) - DrawingML pictures
package oxml
