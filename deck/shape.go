package deck

// ShapeType is the broad category of a shape.
type ShapeType int

const (
	ShapeUnknown ShapeType = iota
	ShapeAutoShape
	ShapeFreeform
	ShapeTextBox
	ShapePicture
	ShapeGroup
	ShapeConnector
	ShapeTable
	ShapeChart
	ShapeGraphicFrame
	ShapePlaceholder
)

func (t ShapeType) String() string {
	switch t {
	case ShapeAutoShape:
		return "AutoShape"
	case ShapeFreeform:
		return "Freeform"
	case ShapeTextBox:
		return "TextBox"
	case ShapePicture:
		return "Picture"
	case ShapeGroup:
		return "Group"
	case ShapeConnector:
		return "Connector"
	case ShapeTable:
		return "Table"
	case ShapeChart:
		return "Chart"
	case ShapeGraphicFrame:
		return "GraphicFrame"
	case ShapePlaceholder:
		return "Placeholder"
	default:
		return "Unknown"
	}
}

// DashStyle is a DrawingML preset dash (a:prstDash/@val). The empty value
// means the line does not set one.
type DashStyle string

const (
	DashUnset          DashStyle = ""
	DashSolid          DashStyle = "solid"
	DashDot            DashStyle = "dot"
	DashDash           DashStyle = "dash"
	DashLongDash       DashStyle = "lgDash"
	DashDashDot        DashStyle = "dashDot"
	DashLongDashDot    DashStyle = "lgDashDot"
	DashLongDashDotDot DashStyle = "lgDashDotDot"
	DashSysDash        DashStyle = "sysDash"
	DashSysDot         DashStyle = "sysDot"
	DashSysDashDot     DashStyle = "sysDashDot"
	DashSysDashDotDot  DashStyle = "sysDashDotDot"
)

// Line is the outline of a shape.
type Line struct {
	Dash  DashStyle
	Color Color
	Width Length
}

// LineColor returns the outline color, never nil.
func (l Line) LineColor() Color {
	return colorOrNone(l.Color)
}

// FormatLine renders an outline for reports, e.g. "dash RGB 00FF00".
func FormatLine(l Line) string {
	c := FormatColor(l.LineColor())
	if l.Dash == DashUnset {
		return c
	}
	return string(l.Dash) + " " + c
}

// Shape is one entry of a slide's shape tree.
type Shape struct {
	ID              int
	Name            string
	Placeholder     bool   // Inherits its slot from the slide layout
	PlaceholderType string // title, body, ftr, ... when Placeholder is set
	Type            ShapeType
	Geometry        string // Preset geometry such as "rect" or "ellipse"
	Fill            Fill
	Line            Line
	Left, Top       Length
	Width           Length
	Height          Length
}

// ShapeFill returns the shape's fill, never nil.
func (s *Shape) ShapeFill() Fill {
	if s.Fill == nil {
		return NoFill{}
	}
	return s.Fill
}

// Slide is an ordered list of shapes.
type Slide struct {
	Index  int // 0-indexed position in the presentation
	Shapes []*Shape
}

// GeometricShapes returns the shapes that are not layout placeholders, in
// their original order.
func (s *Slide) GeometricShapes() []*Shape {
	if s == nil {
		return nil
	}
	out := make([]*Shape, 0, len(s.Shapes))
	for _, sh := range s.Shapes {
		if !sh.Placeholder {
			out = append(out, sh)
		}
	}
	return out
}

// Metadata holds document properties.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string // Authoring application
}

// Presentation is an ordered list of slides.
type Presentation struct {
	Slides      []*Slide
	SlideWidth  Length
	SlideHeight Length
	Metadata    Metadata
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	if p == nil {
		return 0
	}
	return len(p.Slides)
}

// ShapeCount returns the number of shapes across all slides, and how many
// of them are geometric.
func (p *Presentation) ShapeCount() (total, geometric int) {
	if p == nil {
		return 0, 0
	}
	for _, s := range p.Slides {
		total += len(s.Shapes)
		geometric += len(s.GeometricShapes())
	}
	return total, geometric
}
