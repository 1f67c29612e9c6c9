package oxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// DefaultHeaderXML is the content of a newly added header part
var DefaultHeaderXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<w:hdr xmlns:w="` + NsW + `" xmlns:r="` + NsR + `" xmlns:wp="` + NsWP + `"><w:p/></w:hdr>`)

// DefaultFooterXML is the content of a newly added footer part
var DefaultFooterXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<w:ftr xmlns:w="` + NsW + `" xmlns:r="` + NsR + `" xmlns:wp="` + NsWP + `"><w:p/></w:ftr>`)

// MaxNumericID returns the largest value of an unqualified, all-digit id attribute in the
// XML (drawing ids such as wp:docPr/@id), or 0 when there is none. Prefixed ids like
// w:id belong to other counters and are ignored.
func MaxNumericID(data []byte) (int, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	maxID := 0

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to scan ids: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Space != "" || attr.Name.Local != "id" || !isDigits(attr.Value) {
				continue
			}
			id, err := strconv.Atoi(attr.Value)
			if err != nil {
				continue
			}
			if id > maxID {
				maxID = id
			}
		}
	}

	return maxID, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// AppendBlock inserts block-level XML at the end of a story: before the trailing
// w:sectPr of a document body, or before the closing tag of a w:hdr / w:ftr root.
func AppendBlock(story []byte, block []byte) ([]byte, error) {
	d := xml.NewDecoder(bytes.NewReader(story))

	depth := 0
	root := ""
	inBody := false
	sectPrAt := int64(-1)

	var (
		containerStart int64 = -1 // offset just past the container's start tag
		insertAt       int64 = -1
		selfClosed     bool
		containerName  string
	)

	for insertAt < 0 {
		off := d.InputOffset()
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				root = t.Name.Local
				if root != "document" {
					containerStart = d.InputOffset()
					containerName = rawName(t.Name)
				}
			case depth == 2 && root == "document" && t.Name.Local == "body":
				inBody = true
				containerStart = d.InputOffset()
				containerName = rawName(t.Name)
			case depth == 3 && inBody && t.Name.Local == "sectPr" && sectPrAt < 0:
				sectPrAt = off
			}
		case xml.EndElement:
			isContainerEnd := (root == "document" && depth == 2 && t.Name.Local == "body") ||
				(root != "document" && depth == 1)
			if isContainerEnd {
				insertAt = off
				// a synthesized end for <x/> consumes no input
				selfClosed = off == containerStart && bytes.HasSuffix(story[:containerStart], []byte("/>"))
				if sectPrAt >= 0 {
					insertAt = sectPrAt
				}
			}
			depth--
		}
	}

	if insertAt < 0 {
		return nil, fmt.Errorf("story has no body or root container to append to")
	}

	var out bytes.Buffer
	out.Grow(len(story) + len(block) + len(containerName) + 3)

	if selfClosed {
		// <w:body/> becomes <w:body>block</w:body>
		tagEnd := int(containerStart)
		out.Write(bytes.TrimRight(story[:tagEnd-2], " \t\r\n"))
		out.WriteString(">")
		out.Write(block)
		out.WriteString("</" + containerName + ">")
		out.Write(story[tagEnd:])
		return out.Bytes(), nil
	}

	out.Write(story[:insertAt])
	out.Write(block)
	out.Write(story[insertAt:])
	return out.Bytes(), nil
}

func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
