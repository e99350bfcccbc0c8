// Package pptxtest builds small PPTX archives for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Deck describes an archive. Each entry of Slides is the inner XML of one
// p:spTree; see Rect and the fill helpers for building it.
type Deck struct {
	Slides  []string
	Title   string
	Creator string
	App     string

	// Reverse stores the slide parts in reverse file-name order while
	// keeping the presentation order, so readers that sort by file name
	// get it wrong.
	Reverse bool
}

// Bytes returns the archive.
func (d Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	var overrides, rels, ids strings.Builder
	for i := range d.Slides {
		part := d.partName(i)
		fmt.Fprintf(&overrides, `<Override PartName="/ppt/slides/%s" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, part)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s/slide" Target="slides/%s"/>`, i+2, nsR, part)
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}

	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` + overrides.String() + `</Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="` + nsR + `/officeDocument" Target="ppt/presentation.xml"/></Relationships>`},
		{"ppt/_rels/presentation.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`},
		{"ppt/presentation.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="` + nsP + `" xmlns:r="` + nsR + `"><p:sldIdLst>` + ids.String() + `</p:sldIdLst><p:sldSz cx="9144000" cy="6858000"/></p:presentation>`},
	}
	if d.Title != "" || d.Creator != "" {
		files = append(files, struct{ name, content string }{"docProps/core.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>` + d.Title + `</dc:title><dc:creator>` + d.Creator + `</dc:creator></cp:coreProperties>`})
	}
	if d.App != "" {
		files = append(files, struct{ name, content string }{"docProps/app.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"><Application>` + d.App + `</Application></Properties>`})
	}
	for i, body := range d.Slides {
		files = append(files, struct{ name, content string }{"ppt/slides/" + d.partName(i), Slide(body)})
	}

	for _, f := range files {
		if err := write(f.name, f.content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d Deck) partName(i int) string {
	n := i + 1
	if d.Reverse {
		n = len(d.Slides) - i
	}
	return fmt.Sprintf("slide%d.xml", n)
}

// Write stores the archive as dir/name and returns its path.
func Write(t testing.TB, dir, name string, d Deck) string {
	t.Helper()
	data, err := d.Bytes()
	if err != nil {
		t.Fatalf("building %s: %v", name, err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return p
}

// Slide wraps shape tree content in a complete slide part.
func Slide(spTree string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="` + nsP + `" xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` + spTree + `</p:spTree></p:cSld></p:sld>`
}

// Rect returns a p:sp rectangle at (x, y) points, 100x50 points in size.
// props is extra spPr content after the geometry, such as a fill or a:ln.
func Rect(id int, x, y float64, props string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Rectangle %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="1270000" cy="635000"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom>%s</p:spPr></p:sp>`,
		id, id, int64(x*12700), int64(y*12700), props)
}

// Placeholder returns a title placeholder shape.
func Placeholder(id int, kind string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Title %d"/><p:cNvSpPr/><p:nvPr><p:ph type="%s"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>`, id, id, kind)
}

// Solid returns an a:solidFill with an sRGB color.
func Solid(hex string) string {
	return `<a:solidFill><a:srgbClr val="` + hex + `"/></a:solidFill>`
}

// Preset returns an a:solidFill with a named preset color such as "red".
func Preset(name string) string {
	return `<a:solidFill><a:prstClr val="` + name + `"/></a:solidFill>`
}

// Line returns an a:ln with a preset dash and a solid sRGB color.
func Line(dash, hex string) string {
	return `<a:ln w="12700"><a:solidFill><a:srgbClr val="` + hex + `"/></a:solidFill><a:prstDash val="` + dash + `"/></a:ln>`
}
