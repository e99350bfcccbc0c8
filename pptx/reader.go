// Package pptx provides PPTX (Office Open XML Presentation) document parsing.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/slidegrade/deck"
)

// maxPartSize bounds how much of a single ZIP entry is read.
const maxPartSize = 64 << 20

const relTypeSlide = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"

// ErrNotPresentation is returned when the archive has no presentation part.
var ErrNotPresentation = errors.New("pptx: not a presentation")

// Reader provides access to PPTX document content.
type Reader struct {
	zipReader    *zip.Reader
	closer       io.Closer
	files        map[string]*zip.File
	presentation *presentationXML
	presRels     *relationshipsXML
	slides       []*deck.Slide
	coreProps    *corePropertiesXML
	appProps     *appPropertiesXML
}

// Open opens a PPTX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	r, err := newReader(&zr.Reader, zr)
	if err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// OpenReader reads a PPTX document from ra, which holds size bytes.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, nil)
}

// Load opens filename, builds the presentation model and closes the file.
func Load(filename string) (*deck.Presentation, error) {
	r, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Presentation(), nil
}

func newReader(zr *zip.Reader, closer io.Closer) (*Reader, error) {
	r := &Reader{
		zipReader: zr,
		closer:    closer,
		files:     make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	// Parse presentation relationships first
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Parse presentation to get slide order
	if err := r.parsePresentation(); err != nil {
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}

	if err := r.parseSlides(); err != nil {
		return nil, fmt.Errorf("parsing slides: %w", err)
	}

	// Metadata is optional
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that the presentation part exists. A presentation without
// slides is valid.
func (r *Reader) validate() error {
	if _, ok := r.files["ppt/presentation.xml"]; !ok {
		return ErrNotPresentation
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	if f.UncompressedSize64 > maxPartSize {
		return nil, fmt.Errorf("%s: part too large (%d bytes)", name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxPartSize))
}

// decodeXML unmarshals data, honouring a non-UTF-8 encoding declaration.
func decodeXML(data []byte, v any) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel
	return d.Decode(v)
}

// parseRelationships parses the presentation relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil // Relationships might be optional
	}

	r.presRels = &relationshipsXML{}
	return decodeXML(data, r.presRels)
}

// parsePresentation parses the main presentation file.
func (r *Reader) parsePresentation() error {
	data, err := r.getFileContent("ppt/presentation.xml")
	if err != nil {
		return err
	}

	r.presentation = &presentationXML{}
	return decodeXML(data, r.presentation)
}

// slidePaths returns the slide parts in presentation order. The order comes
// from p:sldIdLst resolved through the presentation relationships; archives
// without a usable list fall back to the slide file numbers.
func (r *Reader) slidePaths() ([]string, error) {
	if r.presentation.SlideIdList != nil && len(r.presentation.SlideIdList.SlideId) > 0 && r.presRels != nil {
		targets := make(map[string]string, len(r.presRels.Relationship))
		for _, rel := range r.presRels.Relationship {
			if rel.Type == relTypeSlide {
				targets[rel.ID] = resolveTarget("ppt", rel.Target)
			}
		}
		paths := make([]string, 0, len(r.presentation.SlideIdList.SlideId))
		for _, id := range r.presentation.SlideIdList.SlideId {
			p, ok := targets[id.RID]
			if !ok {
				return nil, fmt.Errorf("slide %s: no relationship %q", id.ID, id.RID)
			}
			paths = append(paths, p)
		}
		return paths, nil
	}

	paths := make([]string, 0)
	for name := range r.files {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			paths = append(paths, name)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		ni, nj := extractSlideNumber(paths[i]), extractSlideNumber(paths[j])
		if ni != nj {
			return ni < nj
		}
		return paths[i] < paths[j]
	})
	return paths, nil
}

// resolveTarget turns a relationship target into an archive path. Relative
// targets are relative to base; absolute ones to the archive root.
func resolveTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(base, target)
}

// parseSlides parses all slides. Any slide that cannot be read fails the
// whole document, so that two presentations are never paired on a partial
// slide list.
func (r *Reader) parseSlides() error {
	paths, err := r.slidePaths()
	if err != nil {
		return err
	}

	r.slides = make([]*deck.Slide, 0, len(paths))
	for i, slidePath := range paths {
		slide, err := r.parseSlide(slidePath, i)
		if err != nil {
			return fmt.Errorf("%s: %w", slidePath, err)
		}
		r.slides = append(r.slides, slide)
	}
	return nil
}

// extractSlideNumber extracts the slide number from a path like "ppt/slides/slide1.xml"
func extractSlideNumber(path string) int {
	name := strings.TrimPrefix(path, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// parseSlide parses a single slide file.
func (r *Reader) parseSlide(slidePath string, index int) (*deck.Slide, error) {
	data, err := r.getFileContent(slidePath)
	if err != nil {
		return nil, err
	}

	var sx slideXML
	if err := decodeXML(data, &sx); err != nil {
		return nil, err
	}

	return &deck.Slide{
		Index:  index,
		Shapes: convertTree(&sx.CSld.SpTree),
	}, nil
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if decodeXML(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if decodeXML(data, props) == nil {
		r.appProps = props
	}
}

// SlideCount returns the number of slides.
func (r *Reader) SlideCount() int {
	return len(r.slides)
}

// Slide returns the slide at the given index (0-indexed).
func (r *Reader) Slide(index int) (*deck.Slide, error) {
	if index < 0 || index >= len(r.slides) {
		return nil, fmt.Errorf("slide index %d out of range [0, %d)", index, len(r.slides))
	}
	return r.slides[index], nil
}

// Metadata returns document metadata.
func (r *Reader) Metadata() deck.Metadata {
	meta := deck.Metadata{}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}

// Presentation returns the shape model of the whole document.
func (r *Reader) Presentation() *deck.Presentation {
	p := &deck.Presentation{
		Slides:   r.slides,
		Metadata: r.Metadata(),
	}
	if sz := r.presentation.SlideSz; sz != nil {
		p.SlideWidth = deck.EMU(sz.Cx)
		p.SlideHeight = deck.EMU(sz.Cy)
	}
	return p
}
