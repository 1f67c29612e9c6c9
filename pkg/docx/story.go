package docx

import (
	"fmt"

	"github.com/benjaminschreck/go-docx/pkg/docx/oxml"
)

// owner is the package a story part belongs to
type owner interface {
	MainDocumentPart() (*DocumentPart, error)
	LoadImage(src string) (*Image, error)
	GetOrAddImagePart(img *Image) (*ImagePart, error)
}

// StoryPart is a content stream of the document: the main body, a header or a footer.
// Style resolution is delegated to the main document part of the owning package.
type StoryPart struct {
	*Part
	owner owner

	nextID int
	seeded bool

	// scale sizes an image for display; (*Image).ScaledDimensions unless replaced in tests
	scale func(img *Image, width, height Length) (Length, Length)
}

func newStoryPart(base *Part, o owner) *StoryPart {
	sp := &StoryPart{Part: base, scale: (*Image).ScaledDimensions}
	// keep a nil *Package out of the interface
	if pkg, ok := o.(*Package); !ok || pkg != nil {
		sp.owner = o
	}
	return sp
}

// GetStyle returns the style matching styleID and styleType, as resolved by the main
// document part, including its fallback to the default style of that type.
func (s *StoryPart) GetStyle(styleID string, styleType StyleType) (*Style, error) {
	doc, err := s.documentPart()
	if err != nil {
		return nil, err
	}
	return doc.GetStyle(styleID, styleType)
}

// GetStyleID returns the style id for a style reference, as resolved by the main document
// part. An empty id means the content should carry no explicit style.
func (s *StoryPart) GetStyleID(ref StyleRef, styleType StyleType) (string, error) {
	doc, err := s.documentPart()
	if err != nil {
		return "", err
	}
	return doc.GetStyleID(ref, styleType)
}

// GetOrAddImage returns the relationship id from this part to the image at src and the
// image's descriptor. The image part and the relationship are added on first use; the
// same file yields the same relationship id on later calls.
func (s *StoryPart) GetOrAddImage(src string) (string, *Image, error) {
	if s.owner == nil {
		return "", nil, ErrNoPackage
	}

	img, err := s.owner.LoadImage(src)
	if err != nil {
		return "", nil, err
	}

	imagePart, err := s.owner.GetOrAddImagePart(img)
	if err != nil {
		return "", nil, err
	}

	rID := s.RelateTo(imagePart.PartName(), RTImage)
	return rID, img, nil
}

// NewPicInline returns an inline picture for the image at src. A zero width or height is
// derived from the other, keeping the aspect ratio; with both zero the image's native
// size is used.
func (s *StoryPart) NewPicInline(src string, width, height Length) (*oxml.Inline, error) {
	rID, img, err := s.GetOrAddImage(src)
	if err != nil {
		return nil, err
	}

	cx, cy := s.scale(img, width, height)

	shapeID, err := s.NextID()
	if err != nil {
		return nil, err
	}

	return oxml.NewPicInline(shapeID, rID, img.Filename(), cx.Emu(), cy.Emu()), nil
}

// NextID returns a drawing id unused in this part. Ids increase strictly with every call;
// the first call starts above the largest numeric id already in the part's XML.
func (s *StoryPart) NextID() (int, error) {
	if !s.seeded {
		maxID, err := oxml.MaxNumericID(s.Blob())
		if err != nil {
			return 0, NewPackageError("allocate id", s.PartName(), err)
		}
		s.nextID = maxID + 1
		s.seeded = true
	}

	id := s.nextID
	s.nextID++
	return id, nil
}

// AppendInline adds a paragraph holding the inline at the end of the story
func (s *StoryPart) AppendInline(inline *oxml.Inline) error {
	block, err := inline.ParagraphXML()
	if err != nil {
		return err
	}

	updated, err := oxml.AppendBlock(s.Blob(), block)
	if err != nil {
		return NewPackageError("append inline", s.PartName(), err)
	}

	s.SetBlob(updated)
	return nil
}

// AddPicture appends a paragraph with an inline picture of the image at src
func (s *StoryPart) AddPicture(src string, width, height Length) (*oxml.Inline, error) {
	inline, err := s.NewPicInline(src, width, height)
	if err != nil {
		return nil, err
	}
	if err := s.AppendInline(inline); err != nil {
		return nil, fmt.Errorf("failed to add picture %s: %w", src, err)
	}
	return inline, nil
}

// documentPart resolves the main document part through the owning package on every call
func (s *StoryPart) documentPart() (*DocumentPart, error) {
	if s.owner == nil {
		return nil, ErrNoPackage
	}
	return s.owner.MainDocumentPart()
}
