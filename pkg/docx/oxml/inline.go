package oxml

import (
	"encoding/xml"
	"fmt"
)

// PictureURI is the graphicData uri identifying a DrawingML picture
const PictureURI = "http://schemas.openxmlformats.org/drawingml/2006/picture"

// Inline is a wp:inline element: a picture placed in the text flow of a run
type Inline struct {
	XMLName  xml.Name `xml:"wp:inline"`
	XmlnsWP  string   `xml:"xmlns:wp,attr"`
	XmlnsA   string   `xml:"xmlns:a,attr"`
	XmlnsPic string   `xml:"xmlns:pic,attr"`
	XmlnsR   string   `xml:"xmlns:r,attr"`
	DistT    int      `xml:"distT,attr"`
	DistB    int      `xml:"distB,attr"`
	DistL    int      `xml:"distL,attr"`
	DistR    int      `xml:"distR,attr"`

	Extent         Extent         `xml:"wp:extent"`
	DocPr          NonVisualProps `xml:"wp:docPr"`
	GraphicFramePr GraphicFramePr `xml:"wp:cNvGraphicFramePr"`
	Graphic        Graphic        `xml:"a:graphic"`
}

// Extent holds a width (cx) and height (cy) in EMU
type Extent struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

// NonVisualProps is the id/name pair used by wp:docPr and pic:cNvPr
type NonVisualProps struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// GraphicFramePr represents the wp:cNvGraphicFramePr element
type GraphicFramePr struct {
	Locks GraphicFrameLocks `xml:"a:graphicFrameLocks"`
}

// GraphicFrameLocks represents the locks applied to the graphic frame
type GraphicFrameLocks struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

// Graphic represents the a:graphic wrapper of the picture
type Graphic struct {
	Data GraphicData `xml:"a:graphicData"`
}

// GraphicData represents graphic content identified by its uri
type GraphicData struct {
	URI string   `xml:"uri,attr"`
	Pic *Picture `xml:"pic:pic"`
}

// Picture is the pic:pic element referencing image data by relationship id
type Picture struct {
	NvPicPr  NvPicPr         `xml:"pic:nvPicPr"`
	BlipFill BlipFill        `xml:"pic:blipFill"`
	SpPr     ShapeProperties `xml:"pic:spPr"`
}

// NvPicPr represents the non-visual properties of a picture
type NvPicPr struct {
	CNvPr    NonVisualProps `xml:"pic:cNvPr"`
	CNvPicPr struct{}       `xml:"pic:cNvPicPr"`
}

// BlipFill represents how the image fills the picture shape
type BlipFill struct {
	Blip    Blip    `xml:"a:blip"`
	Stretch Stretch `xml:"a:stretch"`
}

// Blip represents a reference to the image part
type Blip struct {
	Embed string `xml:"r:embed,attr"`
}

// Stretch represents the fill mode stretching the image over the shape
type Stretch struct {
	FillRect struct{} `xml:"a:fillRect"`
}

// ShapeProperties represents the pic:spPr element
type ShapeProperties struct {
	Xfrm     Transform      `xml:"a:xfrm"`
	PrstGeom PresetGeometry `xml:"a:prstGeom"`
}

// Transform represents the position and size of the shape
type Transform struct {
	Off Offset `xml:"a:off"`
	Ext Extent `xml:"a:ext"`
}

// Offset represents the shape position in EMU
type Offset struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

// PresetGeometry represents a predefined shape such as rect
type PresetGeometry struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

// NewPicInline builds the inline for a picture. shapeID must be unique within the story
// part; rID is the relationship id of the image part; cx and cy are the display size in EMU.
func NewPicInline(shapeID int, rID, filename string, cx, cy int64) *Inline {
	return &Inline{
		XmlnsWP:  NsWP,
		XmlnsA:   NsA,
		XmlnsPic: NsPic,
		XmlnsR:   NsR,
		Extent:   Extent{Cx: cx, Cy: cy},
		DocPr: NonVisualProps{
			ID:   shapeID,
			Name: fmt.Sprintf("Picture %d", shapeID),
		},
		GraphicFramePr: GraphicFramePr{Locks: GraphicFrameLocks{NoChangeAspect: 1}},
		Graphic: Graphic{
			Data: GraphicData{
				URI: PictureURI,
				Pic: newPicture(0, rID, filename, cx, cy),
			},
		},
	}
}

func newPicture(picID int, rID, filename string, cx, cy int64) *Picture {
	return &Picture{
		NvPicPr: NvPicPr{
			CNvPr: NonVisualProps{ID: picID, Name: filename},
		},
		BlipFill: BlipFill{
			Blip: Blip{Embed: rID},
		},
		SpPr: ShapeProperties{
			Xfrm: Transform{
				Ext: Extent{Cx: cx, Cy: cy},
			},
			PrstGeom: PresetGeometry{Prst: "rect"},
		},
	}
}

// ShapeID returns the wp:docPr id
func (i *Inline) ShapeID() int { return i.DocPr.ID }

// RelID returns the relationship id of the embedded image
func (i *Inline) RelID() string {
	if i.Graphic.Data.Pic == nil {
		return ""
	}
	return i.Graphic.Data.Pic.BlipFill.Blip.Embed
}

// Filename returns the name recorded on pic:cNvPr
func (i *Inline) Filename() string {
	if i.Graphic.Data.Pic == nil {
		return ""
	}
	return i.Graphic.Data.Pic.NvPicPr.CNvPr.Name
}

// Size returns the display extent in EMU
func (i *Inline) Size() (cx, cy int64) {
	return i.Extent.Cx, i.Extent.Cy
}

// XML marshals the inline as a self-contained fragment
func (i *Inline) XML() (string, error) {
	out, err := xml.Marshal(i)
	if err != nil {
		return "", fmt.Errorf("failed to marshal inline: %w", err)
	}
	return string(out), nil
}

// ParagraphXML wraps the inline in w:p/w:r/w:drawing, ready to append to a story.
// The w prefix must be declared by the story's root element.
func (i *Inline) ParagraphXML() ([]byte, error) {
	inline, err := xml.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inline: %w", err)
	}

	out := make([]byte, 0, len(inline)+64)
	out = append(out, "<w:p><w:r><w:drawing>"...)
	out = append(out, inline...)
	out = append(out, "</w:drawing></w:r></w:p>"...)
	return out, nil
}
