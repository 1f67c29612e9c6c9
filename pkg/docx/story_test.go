package docx

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docx/pkg/docx/oxml"
)

type mockOwner struct {
	mock.Mock
}

func (m *mockOwner) MainDocumentPart() (*DocumentPart, error) {
	args := m.Called()
	doc, _ := args.Get(0).(*DocumentPart)
	return doc, args.Error(1)
}

func (m *mockOwner) LoadImage(src string) (*Image, error) {
	args := m.Called(src)
	img, _ := args.Get(0).(*Image)
	return img, args.Error(1)
}

func (m *mockOwner) GetOrAddImagePart(img *Image) (*ImagePart, error) {
	args := m.Called(img)
	ip, _ := args.Get(0).(*ImagePart)
	return ip, args.Error(1)
}

func newTestStoryPart(o owner, xml string) *StoryPart {
	return newStoryPart(newPart("/word/document.xml", CTWmlDocumentMain, []byte(xml), nil), o)
}

func TestStoryPart_GetStyleForwardsToDocumentPart(t *testing.T) {
	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)

	headers, err := doc.Headers()
	require.NoError(t, err)
	header := headers["rId2"]
	require.NotNil(t, header)

	tests := []struct {
		name      string
		styleID   string
		styleType StyleType
	}{
		{"known id", "Heading1", StyleParagraph},
		{"empty id", "", StyleParagraph},
		{"unknown id", "Nope", StyleParagraph},
		{"type mismatch", "Emphasis", StyleParagraph},
		{"character style", "Emphasis", StyleCharacter},
		{"no default", "", StyleNumbering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, wantErr := doc.GetStyle(tt.styleID, tt.styleType)
			got, err := header.GetStyle(tt.styleID, tt.styleType)
			assert.Equal(t, wantErr, err)
			assert.Same(t, want, got)
		})
	}
}

func TestStoryPart_GetStyleIDForwardsToDocumentPart(t *testing.T) {
	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)

	footers, err := doc.Footers()
	require.NoError(t, err)
	footer := footers["rId3"]
	require.NotNil(t, footer)

	styles, err := doc.Styles()
	require.NoError(t, err)
	heading := styles.GetByID("Heading1", StyleParagraph)
	require.NotNil(t, heading)

	tests := []struct {
		name      string
		ref       StyleRef
		styleType StyleType
	}{
		{"zero ref", StyleRef{}, StyleParagraph},
		{"by style", RefByStyle(heading), StyleParagraph},
		{"by ui name", RefByName("Heading 1"), StyleParagraph},
		{"default style", RefByName("Normal"), StyleParagraph},
		{"unknown name", RefByName("Missing"), StyleParagraph},
		{"wrong type", RefByStyle(heading), StyleCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, wantErr := doc.GetStyleID(tt.ref, tt.styleType)
			got, err := footer.GetStyleID(tt.ref, tt.styleType)
			assert.Equal(t, want, got)
			assert.Equal(t, wantErr, err)
		})
	}
}

func TestStoryPart_DocumentPartIsResolvedThroughOwner(t *testing.T) {
	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)

	for _, part := range pkg.Parts() {
		var story *StoryPart
		switch p := part.(type) {
		case *DocumentPart:
			story = p.StoryPart
		case *HeaderPart:
			story = p.StoryPart
		case *FooterPart:
			story = p.StoryPart
		default:
			continue
		}
		got, err := story.documentPart()
		require.NoError(t, err)
		assert.Same(t, doc, got, part.PartName())
	}
}

func TestStoryPart_WithoutOwner(t *testing.T) {
	sp := newTestStoryPart(nil, `<w:document/>`)

	_, err := sp.GetStyle("Normal", StyleParagraph)
	assert.ErrorIs(t, err, ErrNoPackage)

	_, err = sp.GetStyleID(RefByName("Normal"), StyleParagraph)
	assert.ErrorIs(t, err, ErrNoPackage)

	_, err = sp.NewPicInline("foo.png", 0, 0)
	assert.ErrorIs(t, err, ErrNoPackage)

	var nilPkg *Package
	sp = newTestStoryPart(nilPkg, `<w:document/>`)
	_, err = sp.documentPart()
	assert.ErrorIs(t, err, ErrNoPackage)
}

func TestStoryPart_OwnerErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	o := new(mockOwner)
	o.On("MainDocumentPart").Return(nil, boom)
	o.On("LoadImage", "missing.png").Return(nil, boom)

	sp := newTestStoryPart(o, `<w:document/>`)

	_, err := sp.GetStyle("Normal", StyleParagraph)
	assert.Same(t, boom, err)

	_, err = sp.GetStyleID(RefByName("Normal"), StyleParagraph)
	assert.Same(t, boom, err)

	_, err = sp.NewPicInline("missing.png", 0, 0)
	assert.Same(t, boom, err)

	o.AssertExpectations(t)
}

func TestStoryPart_NewPicInline(t *testing.T) {
	img, err := ImageFromBlob(testPNG(t, 100, 50, 0), "bar.png")
	require.NoError(t, err)
	imagePart := newImagePart(newPart("/word/media/image1.png", "image/png", img.Blob(), nil), img, nil)

	o := new(mockOwner)
	o.On("LoadImage", "foo/bar.png").Return(img, nil)
	o.On("GetOrAddImagePart", img).Return(imagePart, nil)

	sp := newTestStoryPart(o, testDocument)
	sp.Rels().GetOrAdd(RTStyles, "/word/styles.xml")

	inline, err := sp.NewPicInline("foo/bar.png", 444, 888)
	require.NoError(t, err)

	assert.Equal(t, 24, inline.ShapeID())
	assert.Equal(t, "rId2", inline.RelID())
	assert.Equal(t, "bar.png", inline.Filename())
	cx, cy := inline.Size()
	assert.Equal(t, int64(444), cx)
	assert.Equal(t, int64(888), cy)
	assert.Equal(t, "Picture 24", inline.DocPr.Name)

	rel, ok := sp.Rels().ByID("rId2")
	require.True(t, ok)
	assert.Equal(t, RTImage, rel.Type)
	assert.Equal(t, "media/image1.png", rel.Target)

	o.AssertExpectations(t)
}

func TestStoryPart_NewPicInlinePassesRequestedSizeToImage(t *testing.T) {
	img, err := ImageFromBlob(testPNG(t, 100, 50, 0), "bar.png")
	require.NoError(t, err)
	imagePart := newImagePart(newPart("/word/media/image1.png", "image/png", img.Blob(), nil), img, nil)

	o := new(mockOwner)
	o.On("LoadImage", "foo/bar.png").Return(img, nil)
	o.On("GetOrAddImagePart", img).Return(imagePart, nil)

	sp := newTestStoryPart(o, testDocument)

	var gotImage *Image
	var gotWidth, gotHeight Length
	sp.scale = func(img *Image, width, height Length) (Length, Length) {
		gotImage, gotWidth, gotHeight = img, width, height
		return 444, 888
	}

	inline, err := sp.NewPicInline("foo/bar.png", 100, 200)
	require.NoError(t, err)

	assert.Same(t, img, gotImage)
	assert.Equal(t, Length(100), gotWidth)
	assert.Equal(t, Length(200), gotHeight)

	cx, cy := inline.Size()
	assert.Equal(t, int64(444), cx)
	assert.Equal(t, int64(888), cy)
	assert.Equal(t, 24, inline.ShapeID())
	assert.Equal(t, "bar.png", inline.Filename())
	o.AssertExpectations(t)
}

func TestStoryPart_NewPicInlineScalesMissingDimension(t *testing.T) {
	// 100x50 px at 72 dpi: 1270000 x 635000 EMU
	img, err := ImageFromBlob(testPNG(t, 100, 50, 0), "")
	require.NoError(t, err)
	imagePart := newImagePart(newPart("/word/media/image1.png", "image/png", img.Blob(), nil), img, nil)

	o := new(mockOwner)
	o.On("LoadImage", mock.Anything).Return(img, nil)
	o.On("GetOrAddImagePart", img).Return(imagePart, nil)

	tests := []struct {
		name          string
		width, height Length
		wantCx        int64
		wantCy        int64
	}{
		{"native", 0, 0, 1270000, 635000},
		{"width only", 635000, 0, 635000, 317500},
		{"height only", 0, 1270000, 2540000, 1270000},
		{"both", 10, 20, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := newTestStoryPart(o, `<w:document `+testNsDecls+`><w:body/></w:document>`)
			inline, err := sp.NewPicInline("img.png", tt.width, tt.height)
			require.NoError(t, err)
			cx, cy := inline.Size()
			assert.Equal(t, tt.wantCx, cx)
			assert.Equal(t, tt.wantCy, cy)
			assert.Equal(t, "image.png", inline.Filename())
		})
	}
}

func TestStoryPart_SameImageSameRelationship(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "foo/bar.png", testPNG(t, 10, 10, 0))

	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)

	first, err := doc.NewPicInline(src, 0, 0)
	require.NoError(t, err)
	second, err := doc.NewPicInline(src, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, first.RelID(), second.RelID())
	assert.Less(t, first.ShapeID(), second.ShapeID())

	images := 0
	for _, part := range pkg.Parts() {
		if _, ok := part.(*ImagePart); ok {
			images++
		}
	}
	assert.Equal(t, 1, images)
}

func TestStoryPart_NextID(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want []int
	}{
		{"empty story", `<w:hdr xmlns:w="` + oxml.NsW + `"><w:p/></w:hdr>`, []int{1, 2, 3}},
		{"existing drawings", testDocument, []int{24, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := newTestStoryPart(nil, tt.xml)
			for _, want := range tt.want {
				got, err := sp.NextID()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestStoryPart_NextIDMalformedXML(t *testing.T) {
	sp := newTestStoryPart(nil, `<w:document><w:body></w:document>`)
	_, err := sp.NextID()
	assert.True(t, IsPackageError(err))
}

func TestStoryPart_AddPicture(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "logo.png", testPNG(t, 20, 10, 0))

	pkg := openTestPackage(t)
	doc := mainDocument(t, pkg)

	inline, err := doc.AddPicture(src, Inches(1), 0)
	require.NoError(t, err)
	assert.Equal(t, 24, inline.ShapeID())

	body := string(doc.Blob())
	pic := `<wp:docPr id="24" name="Picture 24">`
	require.Contains(t, body, pic)
	assert.Less(t, strings.Index(body, pic), strings.Index(body, "<w:sectPr>"))

	headers, err := doc.Headers()
	require.NoError(t, err)
	header := headers["rId2"]
	hInline, err := header.AddPicture(src, 0, Cm(1))
	require.NoError(t, err)
	assert.Equal(t, 1, hInline.ShapeID())
	assert.Contains(t, string(header.Blob()), `r:embed="`+hInline.RelID()+`"`)

	rel, ok := header.Rels().ByID(hInline.RelID())
	require.True(t, ok)
	assert.Equal(t, "media/image1.png", rel.Target)
}
