package docx

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name    string
	content string
}

const testNsDecls = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>
<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>
</Types>`

const testPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const testDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>
</Relationships>`

// the body already holds a drawing with id 23
const testDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + testNsDecls + `><w:body>` +
	`<w:p><w:r><w:t>Hello</w:t></w:r></w:p>` +
	`<w:p><w:r><w:drawing><wp:inline><wp:docPr id="23" name="Picture 23"/></wp:inline></w:drawing></w:r></w:p>` +
	`<w:sectPr><w:headerReference w:type="default" r:id="rId2"/></w:sectPr>` +
	`</w:body></w:document>`

const testStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:customStyle="1" w:styleId="MyStyle"><w:name w:val="My Style"/></w:style>` +
	`<w:style w:type="character" w:default="1" w:styleId="DefaultParagraphFont"><w:name w:val="Default Paragraph Font"/></w:style>` +
	`<w:style w:type="character" w:styleId="Emphasis"><w:name w:val="Emphasis"/></w:style>` +
	`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/></w:style>` +
	`</w:styles>`

const testHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr ` + testNsDecls + `><w:p><w:r><w:t>Header</w:t></w:r></w:p></w:hdr>`

const testFooter = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr ` + testNsDecls + `><w:p/></w:ftr>`

func testDocxEntries() []zipEntry {
	return []zipEntry{
		{"[Content_Types].xml", testContentTypes},
		{"_rels/.rels", testPackageRels},
		{"word/document.xml", testDocument},
		{"word/_rels/document.xml.rels", testDocumentRels},
		{"word/styles.xml", testStyles},
		{"word/header1.xml", testHeader},
		{"word/footer1.xml", testFooter},
	}
}

func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		require.NoError(t, err)
		_, err = f.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func openTestPackage(t *testing.T, opts ...Option) *Package {
	t.Helper()
	opts = append([]Option{WithLogger(NewLogger(nil, LogOff))}, opts...)
	pkg, err := OpenBytes(buildZip(t, testDocxEntries()), opts...)
	require.NoError(t, err)
	return pkg
}

func mainDocument(t *testing.T, pkg *Package) *DocumentPart {
	t.Helper()
	doc, err := pkg.MainDocumentPart()
	require.NoError(t, err)
	return doc
}

// testPNG encodes a blank w x h PNG; with dpi > 0 a pHYs chunk in meters is added
func testPNG(t *testing.T, w, h, dpi int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewGray(image.Rect(0, 0, w, h))))
	data := buf.Bytes()
	if dpi <= 0 {
		return data
	}

	ppm := uint32(float64(dpi)/0.0254 + 0.5)
	payload := make([]byte, 9)
	binary.BigEndian.PutUint32(payload[0:], ppm)
	binary.BigEndian.PutUint32(payload[4:], ppm)
	payload[8] = 1

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(payload)))
	chunk = append(chunk, "pHYs"...)
	chunk = append(chunk, payload...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(append([]byte("pHYs"), payload...)))

	// signature (8) + IHDR chunk (25)
	const ihdrEnd = 33
	out := append([]byte{}, data[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, data[ihdrEnd:]...)
}

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
