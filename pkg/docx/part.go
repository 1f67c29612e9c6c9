package docx

import (
	"path"
	"strings"
)

// Content types of the parts go-docx knows how to type
const (
	CTWmlDocumentMain     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	CTWmlTemplateMain     = "application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"
	CTWmlDocumentMacro    = "application/vnd.ms-word.document.macroEnabled.main+xml"
	CTWmlHeader           = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	CTWmlFooter           = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	CTWmlStyles           = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	CTOpcRelationships    = "application/vnd.openxmlformats-package.relationships+xml"
	CTXML                 = "application/xml"
	contentTypesPartName  = "/[Content_Types].xml"
	packageRelsBaseURI    = "/"
	defaultMainPartName   = "/word/document.xml"
	defaultStylesPartName = "/word/styles.xml"
)

// Relationship types
const (
	RTOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RTStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RTHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	RTFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	RTImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RTHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// PackagePart is any part held by a Package
type PackagePart interface {
	PartName() string
	ContentType() string
	Blob() []byte
	Rels() *Relationships
	base() *Part
}

// Part is a single part of the package: a name, a content type, the bytes, and the
// relationships from this part to others.
type Part struct {
	partName    string
	contentType string
	blob        []byte
	rels        *Relationships
	pkg         *Package
}

func newPart(partName, contentType string, blob []byte, pkg *Package) *Part {
	return &Part{
		partName:    partName,
		contentType: contentType,
		blob:        blob,
		rels:        NewRelationships(baseURI(partName)),
		pkg:         pkg,
	}
}

// PartName returns the absolute partname, e.g. "/word/document.xml"
func (p *Part) PartName() string { return p.partName }

// ContentType returns the MIME content type of the part
func (p *Part) ContentType() string { return p.contentType }

// Blob returns the serialized content of the part
func (p *Part) Blob() []byte { return p.blob }

// SetBlob replaces the content of the part
func (p *Part) SetBlob(blob []byte) { p.blob = blob }

// Rels returns the relationships from this part
func (p *Part) Rels() *Relationships { return p.rels }

// Package returns the package holding the part, or nil for a detached part
func (p *Part) Package() *Package { return p.pkg }

func (p *Part) base() *Part { return p }

// RelateTo returns the id of a relationship of relType from this part to target,
// adding the relationship when none exists yet.
func (p *Part) RelateTo(targetPartName, relType string) string {
	return p.rels.GetOrAdd(relType, targetPartName)
}

// RelatedPart returns the part a relationship of this part points at
func (p *Part) RelatedPart(rID string) (PackagePart, error) {
	rel, ok := p.rels.ByID(rID)
	if !ok {
		return nil, NewPackageError("resolve relationship", p.partName, WithContext(ErrPartNotFound, "no relationship", map[string]interface{}{"rId": rID}))
	}
	if rel.IsExternal() {
		return nil, NewPackageError("resolve relationship", p.partName, WithContext(ErrPartNotFound, "external relationship", map[string]interface{}{"rId": rID}))
	}
	if p.pkg == nil {
		return nil, ErrNoPackage
	}
	return p.pkg.Part(p.rels.TargetPartName(rel))
}

// baseURI returns the directory of a partname, "/" for parts at the package root
func baseURI(partName string) string {
	dir := path.Dir(partName)
	if dir == "." || dir == "" {
		return "/"
	}
	return dir
}

// zipName converts an absolute partname into a zip entry name
func zipName(partName string) string {
	return strings.TrimPrefix(partName, "/")
}

// relsPartName returns the partname of the relationships part of a source part.
// e.g., "/word/document.xml" -> "/word/_rels/document.xml.rels", "/" -> "/_rels/.rels"
func relsPartName(partName string) string {
	if partName == packageRelsBaseURI {
		return "/_rels/.rels"
	}
	return path.Join(baseURI(partName), "_rels", path.Base(partName)+".rels")
}

// partExt returns the lowercase extension of a partname without the dot
func partExt(partName string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(partName), "."))
}

// resolveTarget turns a relationship target into an absolute partname
func resolveTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	return path.Join(base, target)
}

// relativeRef returns target relative to the base directory, as stored in a .rels part
func relativeRef(base, target string) string {
	if base == "/" {
		return strings.TrimPrefix(target, "/")
	}

	baseSegs := strings.Split(strings.Trim(base, "/"), "/")
	targetSegs := strings.Split(strings.Trim(target, "/"), "/")

	common := 0
	for common < len(baseSegs) && common < len(targetSegs)-1 && baseSegs[common] == targetSegs[common] {
		common++
	}

	var segs []string
	for i := common; i < len(baseSegs); i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, targetSegs[common:]...)
	return strings.Join(segs, "/")
}
