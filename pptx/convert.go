package pptx

import (
	"strconv"
	"strings"

	"github.com/tsawler/slidegrade/deck"
)

const (
	uriTable = "http://schemas.openxmlformats.org/drawingml/2006/table"
	uriChart = "http://schemas.openxmlformats.org/drawingml/2006/chart"
)

// convertTree maps the top-level children of a shape tree to deck shapes.
// Group members are not flattened; a group is a single shape.
func convertTree(tree *shapeTreeXML) []*deck.Shape {
	shapes := make([]*deck.Shape, 0, len(tree.Children))
	for _, n := range tree.Children {
		switch {
		case n.Sp != nil:
			shapes = append(shapes, convertSp(n.Sp))
		case n.Pic != nil:
			shapes = append(shapes, convertPic(n.Pic))
		case n.GrpSp != nil:
			shapes = append(shapes, convertGroup(n.GrpSp))
		case n.GraphicFrame != nil:
			shapes = append(shapes, convertGraphicFrame(n.GraphicFrame))
		case n.CxnSp != nil:
			shapes = append(shapes, convertCxnSp(n.CxnSp))
		}
	}
	return shapes
}

func newShape(nv cNvPrXML, ph *phXML, xfrm *xfrmXML) *deck.Shape {
	s := &deck.Shape{
		ID:   nv.ID,
		Name: nv.Name,
		Fill: deck.NoFill{},
	}
	if ph != nil {
		s.Placeholder = true
		s.PlaceholderType = ph.Type
		if s.PlaceholderType == "" {
			s.PlaceholderType = "obj"
		}
	}
	if xfrm != nil {
		s.Left = deck.EMU(xfrm.Off.X)
		s.Top = deck.EMU(xfrm.Off.Y)
		s.Width = deck.EMU(xfrm.Ext.Cx)
		s.Height = deck.EMU(xfrm.Ext.Cy)
	}
	return s
}

func convertSp(sp *spXML) *deck.Shape {
	s := newShape(sp.NvSpPr.CNvPr, sp.NvSpPr.NvPr.Ph, sp.SpPr.Xfrm)
	switch {
	case s.Placeholder:
		s.Type = deck.ShapePlaceholder
	case sp.SpPr.CustGeom != nil:
		s.Type = deck.ShapeFreeform
	case isTrue(sp.NvSpPr.CNvSpPr.TxBox):
		s.Type = deck.ShapeTextBox
	case sp.SpPr.PrstGeom != nil:
		s.Type = deck.ShapeAutoShape
	default:
		s.Type = deck.ShapeUnknown
	}
	if sp.SpPr.PrstGeom != nil {
		s.Geometry = sp.SpPr.PrstGeom.Prst
	}
	s.Fill = convertFill(&sp.SpPr.fillPropsXML)
	s.Line = convertLine(sp.SpPr.Ln)
	return s
}

func convertPic(pic *picXML) *deck.Shape {
	s := newShape(pic.NvPicPr.CNvPr, pic.NvPicPr.NvPr.Ph, pic.SpPr.Xfrm)
	s.Type = deck.ShapePicture
	if s.Placeholder {
		s.Type = deck.ShapePlaceholder
	}
	if pic.SpPr.PrstGeom != nil {
		s.Geometry = pic.SpPr.PrstGeom.Prst
	}
	s.Fill = convertFill(&pic.SpPr.fillPropsXML)
	s.Line = convertLine(pic.SpPr.Ln)
	return s
}

func convertCxnSp(cxn *cxnSpXML) *deck.Shape {
	s := newShape(cxn.NvCxnSpPr.CNvPr, nil, cxn.SpPr.Xfrm)
	s.Type = deck.ShapeConnector
	if cxn.SpPr.PrstGeom != nil {
		s.Geometry = cxn.SpPr.PrstGeom.Prst
	}
	s.Fill = convertFill(&cxn.SpPr.fillPropsXML)
	s.Line = convertLine(cxn.SpPr.Ln)
	return s
}

func convertGroup(grp *shapeTreeXML) *deck.Shape {
	s := newShape(grp.NvGrpSpPr.CNvPr, nil, grp.GrpSpPr.Xfrm)
	s.Type = deck.ShapeGroup
	s.Fill = convertFill(&grp.GrpSpPr.fillPropsXML)
	return s
}

func convertGraphicFrame(gf *graphicFrameXML) *deck.Shape {
	s := newShape(gf.NvGraphicFramePr.CNvPr, gf.NvGraphicFramePr.NvPr.Ph, gf.Xfrm)
	switch {
	case s.Placeholder:
		s.Type = deck.ShapePlaceholder
	case gf.Graphic.GraphicData.URI == uriTable:
		s.Type = deck.ShapeTable
	case gf.Graphic.GraphicData.URI == uriChart:
		s.Type = deck.ShapeChart
	default:
		s.Type = deck.ShapeGraphicFrame
	}
	return s
}

// convertFill maps the fill choice. An explicit a:noFill is reported as a
// background fill; no fill element at all is NoFill.
func convertFill(fp *fillPropsXML) deck.Fill {
	switch {
	case fp.NoFill != nil:
		return deck.BackgroundFill{}
	case fp.SolidFill != nil:
		return deck.SolidFill{Color: convertColor(fp.SolidFill)}
	case fp.GradFill != nil:
		return convertGradient(fp.GradFill)
	case fp.PattFill != nil:
		return deck.PatternFill{
			Pattern: deck.Pattern(fp.PattFill.Prst),
			Fore:    convertColor(fp.PattFill.FgClr),
			Back:    convertColor(fp.PattFill.BgClr),
		}
	case fp.BlipFill != nil:
		return deck.PictureFill{Embed: fp.BlipFill.Blip.Embed}
	case fp.GrpFill != nil:
		return deck.GroupFill{}
	default:
		return deck.NoFill{}
	}
}

// convertGradient reads the stops and the angle. The file stores a clockwise
// angle in 60000ths of a degree; the model reports it counter-clockwise.
func convertGradient(g *gradFillXML) deck.GradientFill {
	fill := deck.GradientFill{Linear: g.Path == nil}
	if g.GsLst != nil {
		fill.Stops = make([]deck.GradientStop, 0, len(g.GsLst.Gs))
		for i := range g.GsLst.Gs {
			gs := &g.GsLst.Gs[i]
			pos, _ := parsePercent(gs.Pos)
			fill.Stops = append(fill.Stops, deck.GradientStop{
				Position: pos,
				Color:    convertColor(&gs.colorChoiceXML),
			})
		}
	}
	if fill.Linear && g.Lin != nil {
		fill.Angle = counterClockwise(parseAngle(g.Lin.Ang))
	}
	return fill
}

func counterClockwise(deg float64) float64 {
	if deg == 0 {
		return 0
	}
	return 360 - deg
}

// convertLine maps a:ln. Only a solid outline carries a color.
func convertLine(ln *lnXML) deck.Line {
	line := deck.Line{Color: deck.NoColor{}}
	if ln == nil {
		return line
	}
	if w, err := strconv.ParseInt(ln.W, 10, 64); err == nil {
		line.Width = deck.EMU(w)
	}
	if ln.PrstDash != nil {
		line.Dash = deck.DashStyle(ln.PrstDash.Val)
	}
	if ln.SolidFill != nil {
		line.Color = convertColor(ln.SolidFill)
	}
	return line
}

func convertColor(cc *colorChoiceXML) deck.Color {
	if cc == nil {
		return deck.NoColor{}
	}
	switch {
	case cc.SrgbClr != nil:
		rgb, err := deck.ParseRGB(cc.SrgbClr.Val)
		if err != nil {
			return deck.NoColor{}
		}
		return deck.RGBColor{Value: rgb, Bright: brightness(cc.SrgbClr.colorModsXML)}
	case cc.SchemeClr != nil:
		return deck.SchemeColor{
			Slot:   deck.ThemeColor(cc.SchemeClr.Val),
			Bright: brightness(cc.SchemeClr.colorModsXML),
		}
	case cc.PrstClr != nil:
		return deck.PresetColor{Name: cc.PrstClr.Val, Bright: brightness(cc.PrstClr.colorModsXML)}
	case cc.HslClr != nil:
		sat, _ := parsePercent(cc.HslClr.Sat)
		lum, _ := parsePercent(cc.HslClr.Lum)
		return deck.HSLColor{
			Hue:    parseAngle(cc.HslClr.Hue),
			Sat:    sat,
			Lum:    lum,
			Bright: brightness(cc.HslClr.colorModsXML),
		}
	case cc.ScrgbClr != nil:
		r, _ := parsePercent(cc.ScrgbClr.R)
		g, _ := parsePercent(cc.ScrgbClr.G)
		b, _ := parsePercent(cc.ScrgbClr.B)
		return deck.ScRGBColor{R: r, G: g, B: b, Bright: brightness(cc.ScrgbClr.colorModsXML)}
	case cc.SysClr != nil:
		c := deck.SystemColor{Name: cc.SysClr.Val, Bright: brightness(cc.SysClr.colorModsXML)}
		if last, err := deck.ParseRGB(cc.SysClr.LastClr); err == nil {
			c.Last, c.HasLast = last, true
		}
		return c
	default:
		return deck.NoColor{}
	}
}

// brightness is lumOff when present (a tint), otherwise lumMod minus one
// (a shade), otherwise zero.
func brightness(m colorModsXML) float64 {
	if m.LumOff != nil {
		if v, ok := parsePercent(m.LumOff.Val); ok {
			return v
		}
	}
	if m.LumMod != nil {
		if v, ok := parsePercent(m.LumMod.Val); ok {
			return v - 1
		}
	}
	return 0
}

// parsePercent reads an ST_Percentage value as a fraction. Transitional
// files write 1000ths of a percent ("40000"); strict files write "40%".
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v / 100, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v / 100000, true
}

// parseAngle reads an ST_Angle value (60000ths of a degree) in degrees.
func parseAngle(s string) float64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return float64(v) / 60000
}

func isTrue(s string) bool {
	return s == "1" || s == "true"
}
