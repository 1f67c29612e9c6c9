package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// DocxReader indexes the entries of a DOCX zip archive
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	if _, ok := dr.Parts[zipName(contentTypesPartName)]; !ok {
		return nil, fmt.Errorf("%w: missing [Content_Types].xml", ErrNotDocx)
	}
	if _, ok := dr.Parts[zipName(relsPartName(packageRelsBaseURI))]; !ok {
		return nil, fmt.Errorf("%w: missing _rels/.rels", ErrNotDocx)
	}

	return dr, nil
}

// DocxReaderFromFile creates a DocxReader from a file path
func DocxReaderFromFile(path string) (*DocxReader, error) {
	// The whole archive is held in memory; parts are rewritten on save anyway
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return NewDocxReader(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the content of a specific zip entry
func (dr *DocxReader) GetPart(name string) ([]byte, error) {
	file, ok := dr.Parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s: %w", name, ErrPartNotFound)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}

	return content, nil
}

// GetRelationships retrieves the relationships of a source partname ("/" for the package)
func (dr *DocxReader) GetRelationships(partName string) (*Relationships, error) {
	base := baseURI(partName)
	if partName == packageRelsBaseURI {
		base = packageRelsBaseURI
	}

	file, ok := dr.Parts[zipName(relsPartName(partName))]
	if !ok {
		// Missing relationships file is not an error, just return empty
		return NewRelationships(base), nil
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open relationships file: %w", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read relationships file: %w", err)
	}

	return ParseRelationships(base, content)
}

// ContentPartNames returns the partnames of every entry that is a part: everything except
// directories, [Content_Types].xml and .rels parts. Order follows the archive.
func (dr *DocxReader) ContentPartNames() []string {
	var names []string
	for _, file := range dr.reader.File {
		name := file.Name
		if strings.HasSuffix(name, "/") || "/"+name == contentTypesPartName {
			continue
		}
		if strings.HasSuffix(name, ".rels") && strings.Contains("/"+name, "/_rels/") {
			continue
		}
		names = append(names, "/"+name)
	}
	return names
}
