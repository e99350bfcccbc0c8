package deck

import "fmt"

// FillKind identifies the variant of a Fill.
type FillKind int

const (
	// FillNone means the shape does not specify a fill and inherits one.
	FillNone FillKind = iota
	// FillBackground is an explicit "no fill" (a:noFill); the slide shows through.
	FillBackground
	// FillSolid is a single color fill.
	FillSolid
	// FillGradient is a linear or path gradient.
	FillGradient
	// FillPatterned is a two color preset pattern.
	FillPatterned
	// FillPicture is an image fill.
	FillPicture
	// FillGroup inherits the fill of the enclosing group.
	FillGroup
)

// String returns the string representation of the fill kind.
func (k FillKind) String() string {
	switch k {
	case FillBackground:
		return "Background"
	case FillSolid:
		return "Solid"
	case FillGradient:
		return "Gradient"
	case FillPatterned:
		return "Patterned"
	case FillPicture:
		return "Picture"
	case FillGroup:
		return "Group"
	default:
		return "None"
	}
}

// Fill is one of NoFill, BackgroundFill, SolidFill, GradientFill,
// PatternFill, PictureFill or GroupFill.
type Fill interface {
	Kind() FillKind
	isFill()
}

// NoFill is an unspecified fill.
type NoFill struct{}

// BackgroundFill is an explicit empty fill.
type BackgroundFill struct{}

// SolidFill paints the shape with one color.
type SolidFill struct {
	Color Color
}

// GradientStop is one point on a gradient ramp. Position is 0 at the start
// of the ramp and 1 at the end.
type GradientStop struct {
	Position float64
	Color    Color
}

// GradientFill is a gradient ramp. Angle is in degrees, measured
// counter-clockwise, and is only meaningful when Linear is true; path
// (radial, rectangular, shape) gradients have no angle.
type GradientFill struct {
	Angle  float64
	Linear bool
	Stops  []GradientStop
}

// PatternFill is a preset hatch or dot pattern drawn in Fore over Back.
type PatternFill struct {
	Pattern Pattern
	Fore    Color
	Back    Color
}

// PictureFill fills the shape with an image.
type PictureFill struct {
	// Embed is the relationship id of the image part.
	Embed string
}

// GroupFill uses the fill of the parent group.
type GroupFill struct{}

func (NoFill) Kind() FillKind         { return FillNone }
func (BackgroundFill) Kind() FillKind { return FillBackground }
func (SolidFill) Kind() FillKind      { return FillSolid }
func (GradientFill) Kind() FillKind   { return FillGradient }
func (PatternFill) Kind() FillKind    { return FillPatterned }
func (PictureFill) Kind() FillKind    { return FillPicture }
func (GroupFill) Kind() FillKind      { return FillGroup }

func (NoFill) isFill()         {}
func (BackgroundFill) isFill() {}
func (SolidFill) isFill()      {}
func (GradientFill) isFill()   {}
func (PatternFill) isFill()    {}
func (PictureFill) isFill()    {}
func (GroupFill) isFill()      {}

// ForeColor returns the color of the first stop, or NoColor for an empty ramp.
func (g GradientFill) ForeColor() Color {
	if len(g.Stops) == 0 {
		return NoColor{}
	}
	return g.Stops[0].Color
}

// BackColor returns the color of the last stop, or NoColor for an empty ramp.
func (g GradientFill) BackColor() Color {
	if len(g.Stops) == 0 {
		return NoColor{}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// StopsEqual reports whether two stop sequences have the same length and
// identical positions and colors at every index.
func StopsEqual(a, b []GradientStop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Position != b[i].Position {
			return false
		}
		if colorOrNone(a[i].Color) != colorOrNone(b[i].Color) {
			return false
		}
	}
	return true
}

// FormatFill renders a fill with its colors for reports, e.g.
// "Solid Preset red FF0000" or "Gradient 90° RGB FF0000 to Scheme accent1".
func FormatFill(f Fill) string {
	switch v := f.(type) {
	case nil:
		return FillNone.String()
	case SolidFill:
		return "Solid " + FormatColor(v.Color)
	case GradientFill:
		if !v.Linear {
			return fmt.Sprintf("Gradient path %s to %s", FormatColor(v.ForeColor()), FormatColor(v.BackColor()))
		}
		return fmt.Sprintf("Gradient %g° %s to %s", v.Angle, FormatColor(v.ForeColor()), FormatColor(v.BackColor()))
	case PatternFill:
		return fmt.Sprintf("Patterned %s %s on %s", v.Pattern, FormatColor(v.Fore), FormatColor(v.Back))
	default:
		return f.Kind().String()
	}
}

func colorOrNone(c Color) Color {
	if c == nil {
		return NoColor{}
	}
	return c
}

// Pattern is a DrawingML preset pattern name (a:pattFill/@prst).
type Pattern string

// A selection of the preset patterns. Any other a:pattFill/@prst value is
// carried through unchanged.
const (
	PatternNone       Pattern = ""
	PatternPct5       Pattern = "pct5"
	PatternPct10      Pattern = "pct10"
	PatternPct20      Pattern = "pct20"
	PatternPct25      Pattern = "pct25"
	PatternPct50      Pattern = "pct50"
	PatternPct75      Pattern = "pct75"
	PatternHorizontal Pattern = "horz"
	PatternVertical   Pattern = "vert"
	PatternCross      Pattern = "cross"
	PatternDiagCross  Pattern = "diagCross"
	PatternDownDiag   Pattern = "dnDiag"
	PatternUpDiag     Pattern = "upDiag"
	PatternSmallGrid  Pattern = "smGrid"
	PatternLargeGrid  Pattern = "lgGrid"
	PatternSmallCheck Pattern = "smCheck"
	PatternLargeCheck Pattern = "lgCheck"
	PatternDiamond    Pattern = "openDmnd"
	PatternSphere     Pattern = "sphere"
	PatternWeave      Pattern = "weave"
)
