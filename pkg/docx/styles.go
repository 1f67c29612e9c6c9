package docx

import (
	"fmt"
	"strings"

	"github.com/benjaminschreck/go-docx/pkg/docx/oxml"
)

// StyleType identifies what kind of content a style applies to
type StyleType int

const (
	StyleParagraph StyleType = iota + 1
	StyleCharacter
	StyleTable
	StyleNumbering
)

var styleTypeNames = map[StyleType]string{
	StyleParagraph: "paragraph",
	StyleCharacter: "character",
	StyleTable:     "table",
	StyleNumbering: "numbering",
}

// String returns the w:type value of the style type
func (t StyleType) String() string {
	if name, ok := styleTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("StyleType(%d)", int(t))
}

// ParseStyleType converts a w:type value such as "paragraph" into a StyleType
func ParseStyleType(s string) (StyleType, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	for t, name := range styleTypeNames {
		if name == value {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown style type %q", s)
}

// Style is a style definition of the styles part
type Style struct {
	StyleID string
	Type    StyleType
	// Name is the name shown in Word's UI, e.g. "Heading 1"
	Name    string
	BuiltIn bool
	Default bool
	BasedOn string

	rawName string
}

// Built-in styles whose stored name differs from the name shown in the UI
var styleAliases = [][2]string{
	{"Caption", "caption"},
	{"Footer", "footer"},
	{"Header", "header"},
	{"Heading 1", "heading 1"},
	{"Heading 2", "heading 2"},
	{"Heading 3", "heading 3"},
	{"Heading 4", "heading 4"},
	{"Heading 5", "heading 5"},
	{"Heading 6", "heading 6"},
	{"Heading 7", "heading 7"},
	{"Heading 8", "heading 8"},
	{"Heading 9", "heading 9"},
}

func uiToInternalName(name string) string {
	for _, alias := range styleAliases {
		if alias[0] == name {
			return alias[1]
		}
	}
	return name
}

func internalToUIName(name string) string {
	for _, alias := range styleAliases {
		if alias[1] == name {
			return alias[0]
		}
	}
	return name
}

// styleIDFromName derives the id Word uses for a style name: "Heading 1" -> "Heading1"
func styleIDFromName(name string) string {
	return strings.ReplaceAll(internalToUIName(name), " ", "")
}

// StyleRef refers to a style either directly or by its UI name. The zero StyleRef means
// no style at all.
type StyleRef struct {
	style *Style
	name  string
}

// RefByStyle refers to a style object
func RefByStyle(style *Style) StyleRef {
	return StyleRef{style: style}
}

// RefByName refers to a style by the name shown in Word's UI
func RefByName(name string) StyleRef {
	return StyleRef{name: name}
}

// IsZero reports whether the reference names no style
func (r StyleRef) IsZero() bool {
	return r.style == nil && r.name == ""
}

// Style returns the referenced style object, or nil for a by-name reference
func (r StyleRef) Style() *Style {
	return r.style
}

// Name returns the referenced name, or "" for a by-style reference
func (r StyleRef) Name() string {
	return r.name
}

func (r StyleRef) String() string {
	switch {
	case r.style != nil:
		return r.style.StyleID
	case r.name != "":
		return r.name
	}
	return "<none>"
}

// Styles is the collection of style definitions of a document
type Styles struct {
	part  *StylesPart
	items []*Style
}

func newStyles(part *StylesPart, parsed *oxml.Styles) *Styles {
	s := &Styles{part: part}
	for _, el := range parsed.Styles {
		s.items = append(s.items, styleFromXML(el))
	}
	return s
}

func styleFromXML(el oxml.Style) *Style {
	styleType := StyleParagraph
	if el.Type != "" {
		if t, err := ParseStyleType(el.Type); err == nil {
			styleType = t
		}
	}

	style := &Style{
		StyleID: el.StyleID,
		Type:    styleType,
		BuiltIn: !oxml.IsOn(el.CustomStyle),
		Default: oxml.IsOn(el.Default),
	}
	if el.Name != nil {
		style.rawName = el.Name.Val
		style.Name = internalToUIName(el.Name.Val)
	}
	if el.BasedOn != nil {
		style.BasedOn = el.BasedOn.Val
	}
	return style
}

// Len returns the number of style definitions
func (s *Styles) Len() int {
	return len(s.items)
}

// List returns the styles in document order
func (s *Styles) List() []*Style {
	out := make([]*Style, len(s.items))
	copy(out, s.items)
	return out
}

// Default returns the default style of styleType, or nil when there is none. When more
// than one style is marked default the last one wins.
func (s *Styles) Default(styleType StyleType) *Style {
	var def *Style
	for _, style := range s.items {
		if style.Type == styleType && style.Default {
			def = style
		}
	}
	return def
}

// GetByID returns the style with styleID when it is of styleType. An empty id, an unknown
// id or a style of another type all yield the default style of styleType, which may be nil.
func (s *Styles) GetByID(styleID string, styleType StyleType) *Style {
	if styleID == "" {
		return s.Default(styleType)
	}
	for _, style := range s.items {
		if style.StyleID != styleID {
			continue
		}
		if style.Type != styleType {
			break
		}
		return style
	}
	return s.Default(styleType)
}

// ByName returns the style with the given UI name. Style ids are accepted as a fallback.
func (s *Styles) ByName(name string) (*Style, error) {
	internal := uiToInternalName(name)
	for _, style := range s.items {
		if style.rawName == internal {
			return style, nil
		}
	}
	for _, style := range s.items {
		if style.StyleID == name {
			GetLogger().WithField("style", name).Debug("style looked up by id instead of name")
			return style, nil
		}
	}
	return nil, &StyleError{Name: name, Cause: ErrStyleNotFound}
}

// GetStyleID returns the id to reference ref with from content of styleType. It returns ""
// for a zero ref and for the default style of styleType, since such content carries no
// style reference at all.
func (s *Styles) GetStyleID(ref StyleRef, styleType StyleType) (string, error) {
	if ref.IsZero() {
		return "", nil
	}

	style := ref.style
	if style == nil {
		var err error
		style, err = s.ByName(ref.name)
		if err != nil {
			return "", err
		}
	}

	if style.Type != styleType {
		return "", &StyleError{
			Name:  style.Name,
			Want:  styleType,
			Got:   style.Type,
			Cause: ErrStyleTypeMismatch,
		}
	}
	if style == s.Default(styleType) {
		return "", nil
	}
	return style.StyleID, nil
}

// AddStyle adds a user-defined style named name. The name must not be in use yet.
func (s *Styles) AddStyle(name string, styleType StyleType) (*Style, error) {
	if _, ok := styleTypeNames[styleType]; !ok {
		return nil, fmt.Errorf("add style %q: invalid style type %d", name, int(styleType))
	}

	internal := uiToInternalName(name)
	for _, style := range s.items {
		if style.rawName == internal {
			return nil, &StyleError{Name: name, Cause: fmt.Errorf("style name already in use")}
		}
	}

	style := &Style{
		StyleID: styleIDFromName(internal),
		Type:    styleType,
		Name:    internalToUIName(internal),
		rawName: internal,
	}

	if s.part != nil {
		el, err := oxml.NewStyleXML(styleType.String(), style.StyleID, internal, true)
		if err != nil {
			return nil, err
		}
		updated, err := oxml.InsertStyles(s.part.Blob(), el)
		if err != nil {
			return nil, NewPackageError("add style", s.part.PartName(), err)
		}
		s.part.SetBlob(updated)
	}

	s.items = append(s.items, style)
	return style, nil
}

// StylesPart is the /word/styles.xml part
type StylesPart struct {
	*Part
	styles *Styles
}

func newStylesPart(base *Part) *StylesPart {
	return &StylesPart{Part: base}
}

// Styles parses the part on first use; later calls return the same collection
func (sp *StylesPart) Styles() (*Styles, error) {
	if sp.styles != nil {
		return sp.styles, nil
	}
	parsed, err := oxml.ParseStyles(sp.Blob())
	if err != nil {
		return nil, NewPackageError("parse styles", sp.PartName(), err)
	}
	sp.styles = newStyles(sp, parsed)
	return sp.styles, nil
}
