package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	relationshipsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"
	targetModeExternal     = "External"
)

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// IsExternal reports whether the relationship points outside the package
func (r Relationship) IsExternal() bool {
	return r.TargetMode == targetModeExternal
}

// relationshipsXML is the serialized form of a .rels part
type relationshipsXML struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// Relationships is the collection of relationships from one source part. Targets are
// stored relative to baseURI, the directory of the source part.
type Relationships struct {
	baseURI string
	items   []Relationship
	loaded  bool
}

// NewRelationships creates an empty collection for a source part in baseURI
func NewRelationships(baseURI string) *Relationships {
	return &Relationships{baseURI: baseURI}
}

// ParseRelationships parses a .rels part
func ParseRelationships(baseURI string, content []byte) (*Relationships, error) {
	var rels relationshipsXML
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return &Relationships{
		baseURI: baseURI,
		items:   rels.Relationship,
		loaded:  true,
	}, nil
}

// Len returns the number of relationships
func (r *Relationships) Len() int {
	return len(r.items)
}

// All returns a copy of the relationships in document order
func (r *Relationships) All() []Relationship {
	out := make([]Relationship, len(r.items))
	copy(out, r.items)
	return out
}

// ByID looks up a relationship by its id
func (r *Relationships) ByID(rID string) (Relationship, bool) {
	for _, rel := range r.items {
		if rel.ID == rID {
			return rel, true
		}
	}
	return Relationship{}, false
}

// ByType returns the relationships of a type in document order
func (r *Relationships) ByType(relType string) []Relationship {
	var out []Relationship
	for _, rel := range r.items {
		if rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out
}

// TargetPartName resolves the target of an internal relationship to an absolute partname
func (r *Relationships) TargetPartName(rel Relationship) string {
	return resolveTarget(r.baseURI, rel.Target)
}

// GetOrAdd returns the id of the internal relationship of relType pointing at
// targetPartName, adding one when none exists.
func (r *Relationships) GetOrAdd(relType, targetPartName string) string {
	for _, rel := range r.items {
		if rel.Type != relType || rel.IsExternal() {
			continue
		}
		if r.TargetPartName(rel) == targetPartName {
			return rel.ID
		}
	}

	rID := r.nextID()
	r.items = append(r.items, Relationship{
		ID:     rID,
		Type:   relType,
		Target: relativeRef(r.baseURI, targetPartName),
	})
	return rID
}

// AddExternal adds a relationship to a URL outside the package, reusing a matching one
func (r *Relationships) AddExternal(relType, url string) string {
	for _, rel := range r.items {
		if rel.Type == relType && rel.IsExternal() && rel.Target == url {
			return rel.ID
		}
	}

	rID := r.nextID()
	r.items = append(r.items, Relationship{
		ID:         rID,
		Type:       relType,
		Target:     url,
		TargetMode: targetModeExternal,
	})
	return rID
}

// Remove deletes a relationship by id; it reports whether one was removed
func (r *Relationships) Remove(rID string) bool {
	for i, rel := range r.items {
		if rel.ID == rID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// Targets reports whether any internal relationship points at targetPartName
func (r *Relationships) Targets(targetPartName string) bool {
	for _, rel := range r.items {
		if !rel.IsExternal() && r.TargetPartName(rel) == targetPartName {
			return true
		}
	}
	return false
}

// nextID generates the next available relationship ID
func (r *Relationships) nextID() string {
	maxID := 0

	for _, rel := range r.items {
		if strings.HasPrefix(rel.ID, "rId") {
			if id, err := strconv.Atoi(rel.ID[3:]); err == nil && id > maxID {
				maxID = id
			}
		}
	}

	return fmt.Sprintf("rId%d", maxID+1)
}

// shouldWrite reports whether the collection needs a .rels part on save
func (r *Relationships) shouldWrite() bool {
	return r.loaded || len(r.items) > 0
}

// MarshalRels serializes the collection as a .rels part
func (r *Relationships) MarshalRels() ([]byte, error) {
	output, err := xml.Marshal(&relationshipsXML{
		Namespace:    relationshipsNamespace,
		Relationship: r.items,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relationships: %w", err)
	}
	return append([]byte(xmlHeader), output...), nil
}

// xmlHeader with standalone="yes" (required by Word)
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
