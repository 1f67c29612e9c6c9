package docx

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

const contentTypesNamespace = "http://schemas.openxmlformats.org/package/2006/content-types"

// ContentTypes represents [Content_Types].xml
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// ContentTypeDefault maps a file extension to a content type
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps a single partname to a content type
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// extensionContentTypes is used when a part is added whose extension has no Default yet
var extensionContentTypes = map[string]string{
	"rels": CTOpcRelationships,
	"xml":  CTXML,
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"emf":  "image/x-emf",
	"wmf":  "image/x-wmf",
}

func parseContentTypes(content []byte) (*ContentTypes, error) {
	var ct ContentTypes
	if err := xml.Unmarshal(content, &ct); err != nil {
		return nil, fmt.Errorf("failed to parse [Content_Types].xml: %w", err)
	}
	return &ct, nil
}

// ContentTypeFor returns the content type of a partname: its Override when there is one,
// otherwise the Default of its extension.
func (ct *ContentTypes) ContentTypeFor(partName string) (string, bool) {
	for _, o := range ct.Overrides {
		if strings.EqualFold(o.PartName, partName) {
			return o.ContentType, true
		}
	}
	return ct.defaultFor(partExt(partName))
}

func (ct *ContentTypes) defaultFor(ext string) (string, bool) {
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType, true
		}
	}
	return "", false
}

// ensureDefault registers a Default for ext unless one exists
func (ct *ContentTypes) ensureDefault(ext, contentType string) {
	if _, ok := ct.defaultFor(ext); ok {
		return
	}
	ct.Defaults = append(ct.Defaults, ContentTypeDefault{
		Extension:   ext,
		ContentType: contentType,
	})
}

// rebuild returns the content types for the given parts: existing Defaults (plus rels and
// xml) and an Override for every part whose type differs from its extension's Default.
func (ct *ContentTypes) rebuild(parts []PackagePart) *ContentTypes {
	out := &ContentTypes{Namespace: contentTypesNamespace}
	out.Defaults = append(out.Defaults, ct.Defaults...)
	out.ensureDefault("rels", CTOpcRelationships)
	out.ensureDefault("xml", CTXML)

	for _, part := range parts {
		ext := partExt(part.PartName())
		if def, ok := out.defaultFor(ext); ok && def == part.ContentType() {
			continue
		}
		if !strings.HasSuffix(part.ContentType(), "xml") && ext != "" {
			if _, ok := out.defaultFor(ext); !ok {
				out.ensureDefault(ext, part.ContentType())
				continue
			}
		}
		out.Overrides = append(out.Overrides, ContentTypeOverride{
			PartName:    part.PartName(),
			ContentType: part.ContentType(),
		})
	}

	sort.Slice(out.Overrides, func(i, j int) bool {
		return out.Overrides[i].PartName < out.Overrides[j].PartName
	})
	return out
}

func (ct *ContentTypes) marshal() ([]byte, error) {
	if ct.Namespace == "" {
		ct.Namespace = contentTypesNamespace
	}
	output, err := xml.Marshal(ct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content types: %w", err)
	}
	return append([]byte(xmlHeader), output...), nil
}
