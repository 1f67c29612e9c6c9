package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentPart_GetStyle(t *testing.T) {
	doc := mainDocument(t, openTestPackage(t))

	style, err := doc.GetStyle("Heading1", StyleParagraph)
	require.NoError(t, err)
	assert.Equal(t, "Heading 1", style.Name)

	style, err = doc.GetStyle("", StyleTable)
	require.NoError(t, err)
	assert.Equal(t, "TableNormal", style.StyleID)
}

func TestDocumentPart_GetStyleID(t *testing.T) {
	doc := mainDocument(t, openTestPackage(t))

	id, err := doc.GetStyleID(RefByName("My Style"), StyleParagraph)
	require.NoError(t, err)
	assert.Equal(t, "MyStyle", id)

	id, err = doc.GetStyleID(RefByName("Default Paragraph Font"), StyleCharacter)
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestDocumentPart_StylesAreParsedOnce(t *testing.T) {
	doc := mainDocument(t, openTestPackage(t))

	first, err := doc.Styles()
	require.NoError(t, err)
	second, err := doc.Styles()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDocumentPart_CreatesDefaultStylesPart(t *testing.T) {
	entries := []zipEntry{
		{"[Content_Types].xml", testContentTypes},
		{"_rels/.rels", testPackageRels},
		{"word/document.xml", testDocument},
	}
	pkg, err := OpenBytes(buildZip(t, entries), WithLogger(NewLogger(nil, LogOff)))
	require.NoError(t, err)
	doc := mainDocument(t, pkg)

	styles, err := doc.Styles()
	require.NoError(t, err)
	assert.Equal(t, 0, styles.Len())

	style, err := doc.GetStyle("Anything", StyleParagraph)
	require.NoError(t, err)
	assert.Nil(t, style)

	part, err := pkg.Part("/word/styles.xml")
	require.NoError(t, err)
	assert.Equal(t, CTWmlStyles, part.ContentType())

	rels := doc.Rels().ByType(RTStyles)
	require.Len(t, rels, 1)
	assert.Equal(t, "styles.xml", rels[0].Target)

	again, err := doc.Styles()
	require.NoError(t, err)
	assert.Same(t, styles, again)
}

func TestDocumentPart_HeadersAndFooters(t *testing.T) {
	doc := mainDocument(t, openTestPackage(t))

	headers, err := doc.Headers()
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "/word/header1.xml", headers["rId2"].PartName())

	footers, err := doc.Footers()
	require.NoError(t, err)
	require.Len(t, footers, 1)
	assert.Equal(t, "/word/footer1.xml", footers["rId3"].PartName())

	_, err = doc.HeaderPart("rId3")
	assert.True(t, IsPackageError(err))

	_, err = doc.FooterPart("rId99")
	assert.ErrorIs(t, err, ErrPartNotFound)
}

func TestDocumentPart_AddHeaderAndFooterPart(t *testing.T) {
	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)

	header, rID, err := doc.AddHeaderPart()
	require.NoError(t, err)
	assert.Equal(t, "/word/header2.xml", header.PartName())
	assert.Equal(t, "rId4", rID)

	got, err := doc.HeaderPart(rID)
	require.NoError(t, err)
	assert.Same(t, header, got)

	footer, rID, err := doc.AddFooterPart()
	require.NoError(t, err)
	assert.Equal(t, "/word/footer2.xml", footer.PartName())
	assert.Equal(t, "rId5", rID)

	style, err := footer.GetStyle("Heading1", StyleParagraph)
	require.NoError(t, err)
	assert.Equal(t, "Heading1", style.StyleID)
}

func TestDocumentPart_DropRel(t *testing.T) {
	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)

	doc.DropRel("rId3")
	_, ok := doc.Rels().ByID("rId3")
	assert.False(t, ok)
	_, err := pkg.Part("/word/footer1.xml")
	assert.ErrorIs(t, err, ErrPartNotFound)

	doc.DropRel("rId42")
	assert.Equal(t, 2, doc.Rels().Len())
}

func TestDocumentPart_DropRelKeepsSharedTarget(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "shared.png", testPNG(t, 4, 4, 0))

	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)
	headers, err := doc.Headers()
	require.NoError(t, err)

	docRID, _, err := doc.GetOrAddImage(src)
	require.NoError(t, err)
	_, _, err = headers["rId2"].GetOrAddImage(src)
	require.NoError(t, err)

	doc.DropRel(docRID)
	_, err = pkg.Part("/word/media/image1.png")
	assert.NoError(t, err)
}
