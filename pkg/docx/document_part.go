package docx

import (
	"fmt"

	"github.com/benjaminschreck/go-docx/pkg/docx/oxml"
)

// DocumentPart is the main document part. It owns the styles of the document and the
// headers and footers its sections refer to.
type DocumentPart struct {
	*StoryPart
}

func newDocumentPart(base *Part, o owner) *DocumentPart {
	return &DocumentPart{StoryPart: newStoryPart(base, o)}
}

// GetStyle returns the style with styleID of styleType, or the default style of that type
// when the id is empty, unknown or of another type.
func (d *DocumentPart) GetStyle(styleID string, styleType StyleType) (*Style, error) {
	styles, err := d.Styles()
	if err != nil {
		return nil, err
	}
	return styles.GetByID(styleID, styleType), nil
}

// GetStyleID returns the style id for ref, "" when content of styleType should carry no
// explicit style.
func (d *DocumentPart) GetStyleID(ref StyleRef, styleType StyleType) (string, error) {
	styles, err := d.Styles()
	if err != nil {
		return "", err
	}
	return styles.GetStyleID(ref, styleType)
}

// Styles returns the style collection of the document
func (d *DocumentPart) Styles() (*Styles, error) {
	sp, err := d.stylesPart()
	if err != nil {
		return nil, err
	}
	return sp.Styles()
}

// stylesPart returns the related styles part, creating an empty one when the document has none
func (d *DocumentPart) stylesPart() (*StylesPart, error) {
	if rels := d.Rels().ByType(RTStyles); len(rels) > 0 {
		part, err := d.RelatedPart(rels[0].ID)
		if err != nil {
			return nil, err
		}
		sp, ok := part.(*StylesPart)
		if !ok {
			return nil, NewPackageError("load styles", part.PartName(), fmt.Errorf("unexpected content type %s", part.ContentType()))
		}
		return sp, nil
	}

	pkg := d.Package()
	if pkg == nil {
		return nil, ErrNoPackage
	}

	partName := defaultStylesPartName
	if _, err := pkg.Part(partName); err == nil {
		partName = pkg.nextPartName("/word/styles%d.xml")
	}
	sp := newStylesPart(newPart(partName, CTWmlStyles, []byte(oxml.DefaultStylesXML), pkg))
	pkg.addPart(sp)
	d.RelateTo(partName, RTStyles)

	pkg.log.WithField("part", partName).Debug("created default styles part")
	return sp, nil
}

// HeaderPart returns the header part related by rID
func (d *DocumentPart) HeaderPart(rID string) (*HeaderPart, error) {
	part, err := d.RelatedPart(rID)
	if err != nil {
		return nil, err
	}
	hp, ok := part.(*HeaderPart)
	if !ok {
		return nil, NewPackageError("load header", part.PartName(), fmt.Errorf("relationship %s is not a header", rID))
	}
	return hp, nil
}

// FooterPart returns the footer part related by rID
func (d *DocumentPart) FooterPart(rID string) (*FooterPart, error) {
	part, err := d.RelatedPart(rID)
	if err != nil {
		return nil, err
	}
	fp, ok := part.(*FooterPart)
	if !ok {
		return nil, NewPackageError("load footer", part.PartName(), fmt.Errorf("relationship %s is not a footer", rID))
	}
	return fp, nil
}

// Headers returns the header parts keyed by relationship id
func (d *DocumentPart) Headers() (map[string]*HeaderPart, error) {
	out := make(map[string]*HeaderPart)
	for _, rel := range d.Rels().ByType(RTHeader) {
		hp, err := d.HeaderPart(rel.ID)
		if err != nil {
			return nil, err
		}
		out[rel.ID] = hp
	}
	return out, nil
}

// Footers returns the footer parts keyed by relationship id
func (d *DocumentPart) Footers() (map[string]*FooterPart, error) {
	out := make(map[string]*FooterPart)
	for _, rel := range d.Rels().ByType(RTFooter) {
		fp, err := d.FooterPart(rel.ID)
		if err != nil {
			return nil, err
		}
		out[rel.ID] = fp
	}
	return out, nil
}

// AddHeaderPart adds an empty header part and relates the document to it
func (d *DocumentPart) AddHeaderPart() (*HeaderPart, string, error) {
	pkg := d.Package()
	if pkg == nil {
		return nil, "", ErrNoPackage
	}
	partName := pkg.nextPartName("/word/header%d.xml")
	hp := newHeaderPart(newPart(partName, CTWmlHeader, append([]byte(nil), oxml.DefaultHeaderXML...), pkg), pkg)
	pkg.addPart(hp)
	return hp, d.RelateTo(partName, RTHeader), nil
}

// AddFooterPart adds an empty footer part and relates the document to it
func (d *DocumentPart) AddFooterPart() (*FooterPart, string, error) {
	pkg := d.Package()
	if pkg == nil {
		return nil, "", ErrNoPackage
	}
	partName := pkg.nextPartName("/word/footer%d.xml")
	fp := newFooterPart(newPart(partName, CTWmlFooter, append([]byte(nil), oxml.DefaultFooterXML...), pkg), pkg)
	pkg.addPart(fp)
	return fp, d.RelateTo(partName, RTFooter), nil
}

// DropRel removes the relationship rID. The target part is dropped from the package as
// well once nothing refers to it anymore.
func (d *DocumentPart) DropRel(rID string) {
	rel, ok := d.Rels().ByID(rID)
	if !ok {
		return
	}
	d.Rels().Remove(rID)

	pkg := d.Package()
	if pkg == nil || rel.IsExternal() {
		return
	}
	target := d.Rels().TargetPartName(rel)
	if !pkg.isReferenced(target) {
		pkg.removePart(target)
		pkg.log.WithField("part", target).Debug("dropped unreferenced part")
	}
}
