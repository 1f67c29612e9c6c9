package oxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Styles represents the w:styles element in styles.xml
type Styles struct {
	XMLName xml.Name `xml:"styles"`
	Styles  []Style  `xml:"style"`
}

// Style represents a single w:style element
type Style struct {
	Type        string `xml:"type,attr"`
	StyleID     string `xml:"styleId,attr"`
	Default     string `xml:"default,attr"`
	CustomStyle string `xml:"customStyle,attr"`
	Name        *Val   `xml:"name"`
	BasedOn     *Val   `xml:"basedOn"`
	RawXML      []byte `xml:",innerxml"`
}

// Val is an element carrying a single w:val attribute
type Val struct {
	Val string `xml:"val,attr"`
}

// DefaultStylesXML is the content of a styles part created for a document that has none
const DefaultStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<w:styles xmlns:w="` + NsW + `"></w:styles>`

// ParseStyles parses a styles.xml file
func ParseStyles(stylesXML []byte) (*Styles, error) {
	var styles Styles
	if err := xml.Unmarshal(stylesXML, &styles); err != nil {
		return nil, fmt.Errorf("failed to parse styles.xml: %w", err)
	}
	return &styles, nil
}

// IsOn reports whether an ST_OnOff attribute value is true
func IsOn(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on":
		return true
	}
	return false
}

// NewStyleXML renders a w:style element. custom marks the style as user-defined.
func NewStyleXML(styleType, styleID, name string, custom bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<w:style w:type="`)
	if err := xml.EscapeText(&buf, []byte(styleType)); err != nil {
		return nil, err
	}
	buf.WriteString(`"`)
	if custom {
		buf.WriteString(` w:customStyle="1"`)
	}
	buf.WriteString(` w:styleId="`)
	if err := xml.EscapeText(&buf, []byte(styleID)); err != nil {
		return nil, err
	}
	buf.WriteString(`"><w:name w:val="`)
	if err := xml.EscapeText(&buf, []byte(name)); err != nil {
		return nil, err
	}
	buf.WriteString(`"/></w:style>`)
	return buf.Bytes(), nil
}

// InsertStyles adds rendered w:style elements before the closing </w:styles> tag
func InsertStyles(originalXML []byte, newStyles ...[]byte) ([]byte, error) {
	if len(newStyles) == 0 {
		return originalXML, nil
	}

	closingIndex := bytes.LastIndex(originalXML, []byte("</w:styles>"))
	if closingIndex == -1 {
		return nil, fmt.Errorf("styles.xml has no </w:styles> closing tag")
	}

	var out bytes.Buffer
	out.Grow(len(originalXML))
	out.Write(originalXML[:closingIndex])
	for _, style := range newStyles {
		out.Write(style)
	}
	out.Write(originalXML[closingIndex:])

	return out.Bytes(), nil
}
