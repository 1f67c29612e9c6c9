package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Package is an opened DOCX package: its parts, the package-level relationships and the
// content types. A Package is not safe for concurrent use.
type Package struct {
	parts        map[string]PackagePart
	order        []string
	rels         *Relationships
	contentTypes *ContentTypes
	imagesBySHA  map[string]*ImagePart

	images *ImageCache
	log    *Logger
	config *Config
}

// Option configures a Package
type Option func(*Package)

// WithConfig sets the configuration used for image decoding and the default image cache
func WithConfig(config *Config) Option {
	return func(p *Package) {
		p.config = config
	}
}

// WithLogger sets the logger of the package
func WithLogger(logger *Logger) Option {
	return func(p *Package) {
		p.log = logger
	}
}

// WithImageCache shares an image descriptor cache between packages
func WithImageCache(cache *ImageCache) Option {
	return func(p *Package) {
		p.images = cache
	}
}

func newPackage(opts ...Option) *Package {
	p := &Package{
		parts: make(map[string]PackagePart),
		rels:  NewRelationships(packageRelsBaseURI),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.config == nil {
		p.config = GetGlobalConfig()
	}
	if p.log == nil {
		p.log = GetLogger()
	}
	if p.images == nil {
		p.images = NewImageCacheWithConfig(ImageCacheConfig{
			MaxSize: p.config.ImageCacheMaxSize,
			TTL:     p.config.ImageCacheTTL,
		})
	}
	return p
}

// Open reads a DOCX package from a file
func Open(path string, opts ...Option) (*Package, error) {
	dr, err := DocxReaderFromFile(path)
	if err != nil {
		return nil, NewPackageError("open", path, err)
	}
	pkg, err := load(dr, opts...)
	if err != nil {
		return nil, NewPackageError("open", path, err)
	}
	return pkg, nil
}

// OpenReader reads a DOCX package from a reader
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Package, error) {
	dr, err := NewDocxReader(r, size)
	if err != nil {
		return nil, NewPackageError("open", "", err)
	}
	pkg, err := load(dr, opts...)
	if err != nil {
		return nil, NewPackageError("open", "", err)
	}
	return pkg, nil
}

// OpenBytes reads a DOCX package held in memory
func OpenBytes(data []byte, opts ...Option) (*Package, error) {
	return OpenReader(bytes.NewReader(data), int64(len(data)), opts...)
}

func load(dr *DocxReader, opts ...Option) (*Package, error) {
	p := newPackage(opts...)

	ctXML, err := dr.GetPart(zipName(contentTypesPartName))
	if err != nil {
		return nil, err
	}
	p.contentTypes, err = parseContentTypes(ctXML)
	if err != nil {
		return nil, err
	}

	p.rels, err = dr.GetRelationships(packageRelsBaseURI)
	if err != nil {
		return nil, fmt.Errorf("package relationships: %w", err)
	}

	var relErrs error
	for _, partName := range dr.ContentPartNames() {
		blob, err := dr.GetPart(zipName(partName))
		if err != nil {
			return nil, err
		}

		contentType, ok := p.contentTypes.ContentTypeFor(partName)
		if !ok {
			p.log.Warn("no content type for %s, treating as application/octet-stream", partName)
			contentType = "application/octet-stream"
		}

		part := p.newTypedPart(partName, contentType, blob)

		rels, err := dr.GetRelationships(partName)
		if err != nil {
			relErrs = multierr.Append(relErrs, fmt.Errorf("%s: %w", partName, err))
			continue
		}
		part.base().rels = rels

		p.addPart(part)
	}
	if relErrs != nil {
		return nil, relErrs
	}

	p.log.WithField("parts", len(p.parts)).Debug("loaded package")
	return p, nil
}

// newTypedPart builds the part type matching a content type
func (p *Package) newTypedPart(partName, contentType string, blob []byte) PackagePart {
	base := newPart(partName, contentType, blob, p)

	switch {
	case contentType == CTWmlDocumentMain, contentType == CTWmlTemplateMain, contentType == CTWmlDocumentMacro:
		return newDocumentPart(base, p)
	case contentType == CTWmlHeader:
		return newHeaderPart(base, p)
	case contentType == CTWmlFooter:
		return newFooterPart(base, p)
	case contentType == CTWmlStyles:
		return newStylesPart(base)
	case strings.HasPrefix(contentType, "image/"):
		return newImagePart(base, nil, p.config)
	default:
		return base
	}
}

func (p *Package) addPart(part PackagePart) {
	name := part.PartName()
	if _, exists := p.parts[name]; !exists {
		p.order = append(p.order, name)
	}
	p.parts[name] = part

	if ip, ok := part.(*ImagePart); ok && p.imagesBySHA != nil {
		p.imagesBySHA[ip.SHA1()] = ip
	}
}

func (p *Package) removePart(partName string) {
	part, ok := p.parts[partName]
	if !ok {
		return
	}
	delete(p.parts, partName)
	for i, name := range p.order {
		if name == partName {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if ip, ok := part.(*ImagePart); ok && p.imagesBySHA != nil {
		delete(p.imagesBySHA, ip.SHA1())
	}
}

// isReferenced reports whether any relationship in the package points at partName
func (p *Package) isReferenced(partName string) bool {
	if p.rels.Targets(partName) {
		return true
	}
	for _, part := range p.parts {
		if part.Rels().Targets(partName) {
			return true
		}
	}
	return false
}

// Rels returns the package-level relationships
func (p *Package) Rels() *Relationships {
	return p.rels
}

// Part returns the part with the given absolute partname
func (p *Package) Part(partName string) (PackagePart, error) {
	part, ok := p.parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s: %w", partName, ErrPartNotFound)
	}
	return part, nil
}

// Parts returns every part in load order, added parts last
func (p *Package) Parts() []PackagePart {
	out := make([]PackagePart, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.parts[name])
	}
	return out
}

// MainDocumentPart returns the target of the package's officeDocument relationship
func (p *Package) MainDocumentPart() (*DocumentPart, error) {
	rels := p.rels.ByType(RTOfficeDocument)
	if len(rels) == 0 {
		return nil, fmt.Errorf("%w: no officeDocument relationship", ErrNotDocx)
	}

	partName := p.rels.TargetPartName(rels[0])
	part, err := p.Part(partName)
	if err != nil {
		return nil, err
	}

	doc, ok := part.(*DocumentPart)
	if !ok {
		return nil, fmt.Errorf("%w: main part %s has content type %s", ErrNotDocx, partName, part.ContentType())
	}
	return doc, nil
}

// LoadImage returns the descriptor of the image file at src, through the image cache
func (p *Package) LoadImage(src string) (*Image, error) {
	return p.images.Load(src, func(path string) (*Image, error) {
		return imageFromFileWithConfig(path, p.config)
	})
}

// GetOrAddImagePart returns the image part holding the same bytes as img, adding a new
// part under /word/media when the package has none.
func (p *Package) GetOrAddImagePart(img *Image) (*ImagePart, error) {
	if img == nil {
		return nil, &ImageError{Cause: fmt.Errorf("nil image")}
	}

	p.indexImages()
	if existing, ok := p.imagesBySHA[img.SHA1()]; ok {
		p.log.WithField("part", existing.PartName()).Debug("reusing image part for %s", img.Filename())
		return existing, nil
	}

	partName := p.nextImagePartName(img.Ext())
	part := newImagePart(newPart(partName, img.ContentType(), img.Blob(), p), img, p.config)
	p.addPart(part)
	p.log.WithField("part", partName).Debug("added image part for %s", img.Filename())

	return part, nil
}

func (p *Package) indexImages() {
	if p.imagesBySHA != nil {
		return
	}
	p.imagesBySHA = make(map[string]*ImagePart)
	for _, name := range p.order {
		if ip, ok := p.parts[name].(*ImagePart); ok {
			if _, seen := p.imagesBySHA[ip.SHA1()]; !seen {
				p.imagesBySHA[ip.SHA1()] = ip
			}
		}
	}
}

var imagePartNamePattern = regexp.MustCompile(`^/word/media/image(\d+)\.[^/]+$`)

// nextImagePartName returns /word/media/imageN.ext for the lowest N not in use
func (p *Package) nextImagePartName(ext string) string {
	n := p.lowestFreeIndex(imagePartNamePattern)
	return fmt.Sprintf("/word/media/image%d.%s", n, ext)
}

// nextPartName returns the partname built from template (with one %d) for the lowest free index
func (p *Package) nextPartName(template string) string {
	pattern := regexp.MustCompile("^" + strings.Replace(regexp.QuoteMeta(template), "%d", `(\d+)`, 1) + "$")
	return fmt.Sprintf(template, p.lowestFreeIndex(pattern))
}

func (p *Package) lowestFreeIndex(pattern *regexp.Regexp) int {
	used := make(map[int]bool)
	for name := range p.parts {
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}

// Save writes the package as a DOCX zip archive
func (p *Package) Save(w io.Writer) error {
	zw := zip.NewWriter(w)
	err := p.writeParts(zw)
	err = multierr.Append(err, zw.Close())
	if err != nil {
		return NewPackageError("save", "", err)
	}
	return nil
}

// SaveFile writes the package to a file
func (p *Package) SaveFile(filePath string) (err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return NewPackageError("save", filePath, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := p.Save(f); err != nil {
		return err
	}
	p.log.WithField("path", filePath).Debug("saved package")
	return nil
}

func (p *Package) writeParts(zw *zip.Writer) error {
	parts := p.Parts()

	ct, err := p.contentTypesFor(parts).marshal()
	if err != nil {
		return err
	}
	if err := writeEntry(zw, contentTypesPartName, ct); err != nil {
		return err
	}

	pkgRels, err := p.rels.MarshalRels()
	if err != nil {
		return err
	}
	if err := writeEntry(zw, relsPartName(packageRelsBaseURI), pkgRels); err != nil {
		return err
	}

	for _, part := range parts {
		if err := writeEntry(zw, part.PartName(), part.Blob()); err != nil {
			return err
		}
		if !part.Rels().shouldWrite() {
			continue
		}
		rels, err := part.Rels().MarshalRels()
		if err != nil {
			return fmt.Errorf("%s: %w", part.PartName(), err)
		}
		if err := writeEntry(zw, relsPartName(part.PartName()), rels); err != nil {
			return err
		}
	}
	return nil
}

func (p *Package) contentTypesFor(parts []PackagePart) *ContentTypes {
	if p.contentTypes == nil {
		p.contentTypes = &ContentTypes{}
	}
	return p.contentTypes.rebuild(parts)
}

func writeEntry(zw *zip.Writer, partName string, content []byte) error {
	fw, err := zw.Create(zipName(partName))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", partName, err)
	}
	if _, err := fw.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", partName, err)
	}
	return nil
}
