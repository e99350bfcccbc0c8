package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/slidegrade/deck"
	"github.com/tsawler/slidegrade/internal/pptxtest"
)

// writeZipFile writes a file into a zip archive.
func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// writeZip creates an archive from name/content pairs and returns its path.
func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "test.pptx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		writeZipFile(t, zw, name, content)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return p
}

func openDeck(t *testing.T, d pptxtest.Deck) *Reader {
	t.Helper()
	r, err := Open(pptxtest.Write(t, t.TempDir(), "deck.pptx", d))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpen(t *testing.T) {
	r := openDeck(t, pptxtest.Deck{Slides: []string{
		pptxtest.Placeholder(2, "title") + pptxtest.Rect(3, 0, 0, pptxtest.Solid("FF0000")),
	}})

	if r.SlideCount() != 1 {
		t.Errorf("SlideCount() = %d, want 1", r.SlideCount())
	}
	p := r.Presentation()
	if p.SlideWidth != deck.Inches(10) || p.SlideHeight != deck.Inches(7.5) {
		t.Errorf("slide size = %v x %v, want 10in x 7.5in", p.SlideWidth, p.SlideHeight)
	}
	total, geometric := p.ShapeCount()
	if total != 2 || geometric != 1 {
		t.Errorf("ShapeCount() = %d, %d, want 2, 1", total, geometric)
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.pptx")
	if err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.pptx")
	if err := os.WriteFile(p, []byte("not a zip file"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(p)
	if err == nil {
		t.Error("Open() expected error for invalid zip")
	}
}

func TestOpen_MissingPresentation(t *testing.T) {
	p := writeZip(t, map[string]string{"[Content_Types].xml": "<Types/>"})

	_, err := Open(p)
	if !errors.Is(err, ErrNotPresentation) {
		t.Errorf("Open() error = %v, want ErrNotPresentation", err)
	}
}

func TestOpen_NoSlides(t *testing.T) {
	p := writeZip(t, map[string]string{
		"[Content_Types].xml":  "<Types/>",
		"ppt/presentation.xml": "<presentation/>",
	})

	r, err := Open(p)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	if r.SlideCount() != 0 {
		t.Errorf("SlideCount() = %d, want 0", r.SlideCount())
	}
	if got := r.Presentation().SlideCount(); got != 0 {
		t.Errorf("Presentation().SlideCount() = %d, want 0", got)
	}
}

func TestOpen_BrokenSlide(t *testing.T) {
	p := writeZip(t, map[string]string{
		"ppt/presentation.xml":    "<presentation/>",
		"ppt/slides/slide1.xml":   pptxtest.Slide(pptxtest.Rect(2, 0, 0, "")),
		"ppt/slides/slide2.xml":   `<p:sld xmlns:p="x"><p:cSld><p:spTree><p:sp>`,
		"ppt/slides/slide10.xml":  pptxtest.Slide(""),
		"[Content_Types].xml":     "<Types/>",
		"docProps/unrelated.json": "{}",
	})

	_, err := Open(p)
	if err == nil {
		t.Fatal("Open() expected error for truncated slide")
	}
}

func TestOpen_MissingSlideRelationship(t *testing.T) {
	p := writeZip(t, map[string]string{
		"ppt/presentation.xml": `<p:presentation xmlns:p="` + "p" + `" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:sldIdLst><p:sldId id="256" r:id="rId7"/></p:sldIdLst></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"ppt/slides/slide1.xml":           pptxtest.Slide(""),
	})

	if _, err := Open(p); err == nil {
		t.Error("Open() expected error for dangling slide relationship")
	}
}

func TestOpenReader(t *testing.T) {
	data, err := pptxtest.Deck{Slides: []string{"", ""}}.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	defer r.Close()

	if r.SlideCount() != 2 {
		t.Errorf("SlideCount() = %d, want 2", r.SlideCount())
	}
}

func TestLoad(t *testing.T) {
	p := pptxtest.Write(t, t.TempDir(), "a.pptx", pptxtest.Deck{Slides: []string{pptxtest.Rect(2, 0, 0, "")}})

	pres, err := Load(p)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if pres.SlideCount() != 1 {
		t.Errorf("SlideCount() = %d, want 1", pres.SlideCount())
	}
}

func TestReader_Close(t *testing.T) {
	p := pptxtest.Write(t, t.TempDir(), "a.pptx", pptxtest.Deck{Slides: []string{""}})

	r, err := Open(p)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Second close should be safe
	if err := r.Close(); err != nil {
		t.Errorf("Second Close() failed: %v", err)
	}
}

func TestReader_Slide(t *testing.T) {
	r := openDeck(t, pptxtest.Deck{Slides: []string{"", pptxtest.Rect(2, 0, 0, "")}})

	s, err := r.Slide(1)
	if err != nil {
		t.Fatalf("Slide(1) failed: %v", err)
	}
	if s.Index != 1 || len(s.Shapes) != 1 {
		t.Errorf("Slide(1) = index %d with %d shapes, want index 1 with 1 shape", s.Index, len(s.Shapes))
	}

	for _, idx := range []int{-1, 2} {
		if _, err := r.Slide(idx); err == nil {
			t.Errorf("Slide(%d) expected error", idx)
		}
	}
}

func TestReader_SlideOrder(t *testing.T) {
	var slides []string
	for i := 0; i < 12; i++ {
		slides = append(slides, pptxtest.Rect(i+2, float64(i), 0, ""))
	}
	r := openDeck(t, pptxtest.Deck{Slides: slides, Reverse: true})

	if r.SlideCount() != 12 {
		t.Fatalf("SlideCount() = %d, want 12", r.SlideCount())
	}
	for i := 0; i < r.SlideCount(); i++ {
		s, _ := r.Slide(i)
		if got := s.Shapes[0].ID; got != i+2 {
			t.Errorf("slide %d holds shape %d, want %d", i, got, i+2)
		}
	}
}

func TestReader_SlideOrderWithoutList(t *testing.T) {
	files := map[string]string{"ppt/presentation.xml": "<presentation/>"}
	for _, n := range []int{10, 2, 1} {
		files["ppt/slides/slide"+itoa(n)+".xml"] = pptxtest.Slide(pptxtest.Rect(n, 0, 0, ""))
	}
	files["ppt/slides/_rels/slide1.xml.rels"] = "<Relationships/>"

	r, err := Open(writeZip(t, files))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	var got []int
	for _, s := range r.Presentation().Slides {
		got = append(got, s.Shapes[0].ID)
	}
	if diff := cmp.Diff([]int{1, 2, 10}, got); diff != "" {
		t.Errorf("slide order mismatch (-want +got):\n%s", diff)
	}
}

const shapeTree = `
<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="3" name="Box"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
  <p:spPr>
    <a:xfrm><a:off x="127000" y="254000"/><a:ext cx="1270000" cy="635000"/></a:xfrm>
    <a:prstGeom prst="ellipse"><a:avLst/></a:prstGeom>
    <a:solidFill><a:schemeClr val="accent1"><a:lumMod val="75000"/></a:schemeClr></a:solidFill>
    <a:ln w="12700"><a:solidFill><a:srgbClr val="00FF00"/></a:solidFill><a:prstDash val="dash"/></a:ln>
  </p:spPr>
</p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="4" name="TextBox 3"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>
  <p:spPr><a:prstGeom prst="rect"/><a:noFill/></p:spPr>
</p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="5" name="Freeform 4"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
  <p:spPr>
    <a:custGeom><a:pathLst/></a:custGeom>
    <a:gradFill rotWithShape="1">
      <a:gsLst>
        <a:gs pos="0"><a:srgbClr val="FF0000"/></a:gs>
        <a:gs pos="100000"><a:schemeClr val="accent2"><a:lumMod val="60000"/><a:lumOff val="40000"/></a:schemeClr></a:gs>
      </a:gsLst>
      <a:lin ang="5400000" scaled="1"/>
    </a:gradFill>
  </p:spPr>
</p:sp>
<p:sp><p:nvSpPr><p:cNvPr id="6" name="Pattern"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
  <p:spPr>
    <a:prstGeom prst="roundRect"/>
    <a:pattFill prst="cross">
      <a:fgClr><a:prstClr val="red"/></a:fgClr>
      <a:bgClr><a:sysClr val="window" lastClr="FFFFFF"/></a:bgClr>
    </a:pattFill>
  </p:spPr>
</p:sp>
<p:pic><p:nvPicPr><p:cNvPr id="7" name="Picture 6"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>
  <p:blipFill><a:blip r:embed="rId2"/></p:blipFill>
  <p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="100" cy="100"/></a:xfrm><a:prstGeom prst="rect"/></p:spPr>
</p:pic>
<p:grpSp><p:nvGrpSpPr><p:cNvPr id="8" name="Group 7"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
  <p:grpSpPr><a:xfrm><a:off x="12700" y="12700"/><a:ext cx="25400" cy="25400"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>
  <p:sp><p:nvSpPr><p:cNvPr id="9" name="Inner"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/></p:sp>
</p:grpSp>
<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="10" name="Table 9"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>
  <p:xfrm><a:off x="38100" y="0"/><a:ext cx="100" cy="100"/></p:xfrm>
  <a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl/></a:graphicData></a:graphic>
</p:graphicFrame>
<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="11" name="Connector 10"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>
  <p:spPr><a:prstGeom prst="line"/><a:ln><a:solidFill><a:hslClr hue="7200000" sat="100000" lum="50000"/></a:solidFill></a:ln></p:spPr>
</p:cxnSp>
<mc:AlternateContent>
  <mc:Choice Requires="p14">
    <p:sp><p:nvSpPr><p:cNvPr id="12" name="Ink"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/></p:sp>
  </mc:Choice>
  <mc:Fallback>
    <p:pic><p:nvPicPr><p:cNvPr id="13" name="Ink fallback"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill/><p:spPr/></p:pic>
  </mc:Fallback>
</mc:AlternateContent>
<p:extLst/>
`

func TestReader_Shapes(t *testing.T) {
	r := openDeck(t, pptxtest.Deck{Slides: []string{shapeTree}})
	s, err := r.Slide(0)
	if err != nil {
		t.Fatal(err)
	}

	none := deck.Line{Color: deck.NoColor{}}
	want := []*deck.Shape{
		{ID: 2, Name: "Title 1", Placeholder: true, PlaceholderType: "title", Type: deck.ShapePlaceholder, Fill: deck.NoFill{}, Line: none},
		{
			ID: 3, Name: "Box", Type: deck.ShapeAutoShape, Geometry: "ellipse",
			Fill:  deck.SolidFill{Color: deck.SchemeColor{Slot: deck.ThemeAccent1, Bright: -0.25}},
			Line:  deck.Line{Dash: deck.DashDash, Color: deck.RGBColor{Value: 0x00FF00}, Width: deck.Pt(1)},
			Left:  deck.Pt(10),
			Top:   deck.Pt(20),
			Width: deck.Pt(100), Height: deck.Pt(50),
		},
		{ID: 4, Name: "TextBox 3", Type: deck.ShapeTextBox, Geometry: "rect", Fill: deck.BackgroundFill{}, Line: none},
		{
			ID: 5, Name: "Freeform 4", Type: deck.ShapeFreeform,
			Fill: deck.GradientFill{Angle: 270, Linear: true, Stops: []deck.GradientStop{
				{Position: 0, Color: deck.RGBColor{Value: 0xFF0000}},
				{Position: 1, Color: deck.SchemeColor{Slot: deck.ThemeAccent2, Bright: 0.4}},
			}},
			Line: none,
		},
		{
			ID: 6, Name: "Pattern", Type: deck.ShapeAutoShape, Geometry: "roundRect",
			Fill: deck.PatternFill{
				Pattern: deck.PatternCross,
				Fore:    deck.PresetColor{Name: "red"},
				Back:    deck.SystemColor{Name: "window", Last: 0xFFFFFF, HasLast: true},
			},
			Line: none,
		},
		{ID: 7, Name: "Picture 6", Type: deck.ShapePicture, Geometry: "rect", Fill: deck.NoFill{}, Line: none, Width: deck.EMU(100), Height: deck.EMU(100)},
		{ID: 8, Name: "Group 7", Type: deck.ShapeGroup, Fill: deck.NoFill{}, Left: deck.Pt(1), Top: deck.Pt(1), Width: deck.Pt(2), Height: deck.Pt(2)},
		{ID: 10, Name: "Table 9", Type: deck.ShapeTable, Fill: deck.NoFill{}, Left: deck.Pt(3), Width: deck.EMU(100), Height: deck.EMU(100)},
		{ID: 11, Name: "Connector 10", Type: deck.ShapeConnector, Geometry: "line", Fill: deck.NoFill{}, Line: deck.Line{Color: deck.HSLColor{Hue: 120, Sat: 1, Lum: 0.5}}},
		{ID: 13, Name: "Ink fallback", Type: deck.ShapePicture, Fill: deck.NoFill{}, Line: none},
	}

	if diff := cmp.Diff(want, s.Shapes); diff != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_ShapeTypes(t *testing.T) {
	sp := func(cNvSpPr, spPr string) string {
		return `<p:sp><p:nvSpPr><p:cNvPr id="2" name="S"/>` + cNvSpPr + `<p:nvPr/></p:nvSpPr><p:spPr>` + spPr + `</p:spPr></p:sp>`
	}
	tests := []struct {
		name  string
		shape string
		want  deck.ShapeType
	}{
		{"preset geometry", sp(`<p:cNvSpPr/>`, `<a:prstGeom prst="rect"/>`), deck.ShapeAutoShape},
		{"no geometry", sp(`<p:cNvSpPr/>`, ``), deck.ShapeUnknown},
		{"no geometry with fill", sp(`<p:cNvSpPr/>`, pptxtest.Solid("FF0000")), deck.ShapeUnknown},
		{"custom geometry", sp(`<p:cNvSpPr/>`, `<a:custGeom/>`), deck.ShapeFreeform},
		{"text box", sp(`<p:cNvSpPr txBox="1"/>`, `<a:prstGeom prst="rect"/>`), deck.ShapeTextBox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := openDeck(t, pptxtest.Deck{Slides: []string{tt.shape}})
			s, _ := r.Slide(0)
			if got := s.Shapes[0].Type; got != tt.want {
				t.Errorf("Type = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReader_GradientVariants(t *testing.T) {
	tests := []struct {
		name string
		fill string
		want deck.GradientFill
	}{
		{"no angle", `<a:gradFill><a:gsLst><a:gs pos="50%"><a:srgbClr val="000000"/></a:gs></a:gsLst></a:gradFill>`,
			deck.GradientFill{Linear: true, Stops: []deck.GradientStop{{Position: 0.5, Color: deck.RGBColor{}}}}},
		{"zero angle", `<a:gradFill><a:lin ang="0"/></a:gradFill>`, deck.GradientFill{Linear: true}},
		{"path", `<a:gradFill><a:path path="circle"/></a:gradFill>`, deck.GradientFill{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := openDeck(t, pptxtest.Deck{Slides: []string{pptxtest.Rect(2, 0, 0, tt.fill)}})
			s, _ := r.Slide(0)
			if diff := cmp.Diff(deck.Fill(tt.want), s.Shapes[0].Fill); diff != "" {
				t.Errorf("fill mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReader_Metadata(t *testing.T) {
	r := openDeck(t, pptxtest.Deck{Slides: []string{""}, Title: "Quarterly", Creator: "Ana", App: "Microsoft Office PowerPoint"})

	want := deck.Metadata{Title: "Quarterly", Author: "Ana", Creator: "Microsoft Office PowerPoint"}
	if diff := cmp.Diff(want, r.Metadata()); diff != "" {
		t.Errorf("Metadata() mismatch (-want +got):\n%s", diff)
	}
	if got := r.Presentation().Metadata; got != want {
		t.Errorf("Presentation().Metadata = %+v, want %+v", got, want)
	}
}

func TestReader_Latin1Metadata(t *testing.T) {
	core := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?>`+
		`<cp:coreProperties xmlns:cp="c" xmlns:dc="d"><dc:title>Caf`), 0xE9)
	core = append(core, []byte(`</dc:title></cp:coreProperties>`)...)

	p := writeZip(t, map[string]string{
		"ppt/presentation.xml": "<presentation/>",
		"docProps/core.xml":    string(core),
	})
	r, err := Open(p)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	if got := r.Metadata().Title; got != "Café" {
		t.Errorf("Title = %q, want %q", got, "Café")
	}
}

func TestBrightness(t *testing.T) {
	pct := func(s string) *valXML { return &valXML{Val: s} }
	tests := []struct {
		name string
		mods colorModsXML
		want float64
	}{
		{"none", colorModsXML{}, 0},
		{"shade", colorModsXML{LumMod: pct("50000")}, -0.5},
		{"tint", colorModsXML{LumMod: pct("80000"), LumOff: pct("20000")}, 0.2},
		{"offset only", colorModsXML{LumOff: pct("25%")}, 0.25},
		{"garbage", colorModsXML{LumMod: pct("x")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := brightness(tt.mods); got != tt.want {
				t.Errorf("brightness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAngle(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"5400000", 90},
		{"2700000", 45},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseAngle(tt.in); got != tt.want {
			t.Errorf("parseAngle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := counterClockwise(90); got != 270 {
		t.Errorf("counterClockwise(90) = %v, want 270", got)
	}
	if got := counterClockwise(0); got != 0 {
		t.Errorf("counterClockwise(0) = %v, want 0", got)
	}
}

func TestExtractSlideNumber(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"ppt/slides/slide1.xml", 1},
		{"ppt/slides/slide10.xml", 10},
		{"ppt/slides/slide99.xml", 99},
		{"ppt/slides/slideX.xml", 0},
	}

	for _, tt := range tests {
		if got := extractSlideNumber(tt.path); got != tt.want {
			t.Errorf("extractSlideNumber(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"/ppt/slides/slide2.xml", "ppt/slides/slide2.xml"},
		{"../ppt/slides/slide3.xml", "ppt/slides/slide3.xml"},
	}
	for _, tt := range tests {
		if got := resolveTarget("ppt", tt.target); got != tt.want {
			t.Errorf("resolveTarget(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func BenchmarkOpen(b *testing.B) {
	var slides []string
	for i := 0; i < 20; i++ {
		slides = append(slides, shapeTree)
	}
	data, err := pptxtest.Deck{Slides: slides}.Bytes()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r, err := OpenReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			b.Fatal(err)
		}
		r.Close()
	}
}
