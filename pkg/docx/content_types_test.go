package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypes_ContentTypeFor(t *testing.T) {
	ct, err := parseContentTypes([]byte(testContentTypes))
	require.NoError(t, err)

	tests := []struct {
		partName string
		want     string
		found    bool
	}{
		{"/word/document.xml", CTWmlDocumentMain, true},
		{"/WORD/Document.xml", CTWmlDocumentMain, true},
		{"/word/settings.xml", CTXML, true},
		{"/word/media/image1.png", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.partName, func(t *testing.T) {
			got, ok := ct.ContentTypeFor(tt.partName)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentTypes_Rebuild(t *testing.T) {
	ct := &ContentTypes{}
	parts := []PackagePart{
		newPart("/word/document.xml", CTWmlDocumentMain, nil, nil),
		newPart("/word/media/image2.jpg", "image/jpeg", nil, nil),
		newPart("/word/media/image1.jpg", "image/jpeg", nil, nil),
		newPart("/customXml/item1.xml", CTXML, nil, nil),
	}

	out := ct.rebuild(parts)

	got, ok := out.defaultFor("jpg")
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", got)

	require.Len(t, out.Overrides, 1)
	assert.Equal(t, "/word/document.xml", out.Overrides[0].PartName)

	data, err := out.marshal()
	require.NoError(t, err)
	back, err := parseContentTypes(data)
	require.NoError(t, err)
	got, ok = back.ContentTypeFor("/word/media/image1.jpg")
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", got)
}
