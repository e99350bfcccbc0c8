package deck

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ColorKind identifies the variant of a Color.
type ColorKind int

const (
	// ColorNone means no color is specified.
	ColorNone ColorKind = iota
	// ColorRGB is an explicit sRGB value (a:srgbClr).
	ColorRGB
	// ColorScheme is a reference into the theme palette (a:schemeClr).
	ColorScheme
	// ColorPreset is a named preset color (a:prstClr).
	ColorPreset
	// ColorHSL is a hue/saturation/luminance value (a:hslClr).
	ColorHSL
	// ColorScRGB is a linear scRGB value (a:scrgbClr).
	ColorScRGB
	// ColorSystem is an operating system color (a:sysClr).
	ColorSystem
)

// String returns the string representation of the color kind.
func (k ColorKind) String() string {
	switch k {
	case ColorRGB:
		return "RGB"
	case ColorScheme:
		return "Scheme"
	case ColorPreset:
		return "Preset"
	case ColorHSL:
		return "HSL"
	case ColorScRGB:
		return "ScRGB"
	case ColorSystem:
		return "System"
	default:
		return "None"
	}
}

// ThemeColor names a slot of the theme palette.
type ThemeColor string

// Theme palette slots as written in a:schemeClr/@val.
const (
	ThemeNone        ThemeColor = ""
	ThemeBackground1 ThemeColor = "bg1"
	ThemeText1       ThemeColor = "tx1"
	ThemeBackground2 ThemeColor = "bg2"
	ThemeText2       ThemeColor = "tx2"
	ThemeAccent1     ThemeColor = "accent1"
	ThemeAccent2     ThemeColor = "accent2"
	ThemeAccent3     ThemeColor = "accent3"
	ThemeAccent4     ThemeColor = "accent4"
	ThemeAccent5     ThemeColor = "accent5"
	ThemeAccent6     ThemeColor = "accent6"
	ThemeHyperlink   ThemeColor = "hlink"
	ThemeFollowed    ThemeColor = "folHlink"
	ThemeDark1       ThemeColor = "dk1"
	ThemeLight1      ThemeColor = "lt1"
	ThemeDark2       ThemeColor = "dk2"
	ThemeLight2      ThemeColor = "lt2"
	ThemePlaceholder ThemeColor = "phClr"
)

// RGB is a 24-bit color value, 0xRRGGBB.
type RGB uint32

// ParseRGB parses a six digit hex string such as "FF0000" or "#ff0000".
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return 0, fmt.Errorf("invalid RGB value %q: %w", s, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (c RGB) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c RGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c RGB) B() uint8 { return uint8(c) }

// String returns the color as an upper-case hex triplet.
func (c RGB) String() string {
	return fmt.Sprintf("%02X%02X%02X", c.R(), c.G(), c.B())
}

// Color is one of NoColor, RGBColor, SchemeColor, PresetColor, HSLColor,
// ScRGBColor or SystemColor. All implementations are comparable values.
type Color interface {
	// Kind reports which variant the color is.
	Kind() ColorKind
	// Theme returns the theme slot for scheme colors and ThemeNone otherwise.
	Theme() ThemeColor
	// Brightness returns the lighten/darken adjustment in [-1, 1].
	Brightness() float64
	// RGB resolves the color to a display value when that is possible
	// without a theme.
	RGB() (RGB, bool)

	isColor()
}

// NoColor is the absence of a color.
type NoColor struct{}

func (NoColor) Kind() ColorKind     { return ColorNone }
func (NoColor) Theme() ThemeColor   { return ThemeNone }
func (NoColor) Brightness() float64 { return 0 }
func (NoColor) RGB() (RGB, bool)    { return 0, false }
func (NoColor) isColor()            {}

// RGBColor is an explicit sRGB color.
type RGBColor struct {
	Value  RGB
	Bright float64
}

func (RGBColor) Kind() ColorKind       { return ColorRGB }
func (RGBColor) Theme() ThemeColor     { return ThemeNone }
func (c RGBColor) Brightness() float64 { return c.Bright }
func (c RGBColor) RGB() (RGB, bool)    { return c.Value, true }
func (RGBColor) isColor()              {}

// SchemeColor references a slot of the presentation theme.
type SchemeColor struct {
	Slot   ThemeColor
	Bright float64
}

func (SchemeColor) Kind() ColorKind       { return ColorScheme }
func (c SchemeColor) Theme() ThemeColor   { return c.Slot }
func (c SchemeColor) Brightness() float64 { return c.Bright }

// RGB always fails: resolving a scheme color needs the theme part.
func (SchemeColor) RGB() (RGB, bool) { return 0, false }
func (SchemeColor) isColor()         {}

// PresetColor is a named DrawingML preset such as "red" or "dkSlateBlue".
type PresetColor struct {
	Name   string
	Bright float64
}

func (PresetColor) Kind() ColorKind       { return ColorPreset }
func (PresetColor) Theme() ThemeColor     { return ThemeNone }
func (c PresetColor) Brightness() float64 { return c.Bright }
func (PresetColor) isColor()              {}

// RGB looks the preset name up in the SVG color table. DrawingML abbreviates
// the dark, light and medium prefixes.
func (c PresetColor) RGB() (RGB, bool) {
	name := c.Name
	for _, p := range [...]struct{ short, long string }{
		{"dk", "dark"},
		{"lt", "light"},
		{"med", "medium"},
	} {
		if strings.HasPrefix(name, p.short) && len(name) > len(p.short) &&
			name[len(p.short)] >= 'A' && name[len(p.short)] <= 'Z' {
			name = p.long + name[len(p.short):]
			break
		}
	}
	rgba, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return 0, false
	}
	return RGB(uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B)), true
}

// HSLColor is a hue (degrees), saturation and luminance (0..1) color.
type HSLColor struct {
	Hue, Sat, Lum float64
	Bright        float64
}

func (HSLColor) Kind() ColorKind       { return ColorHSL }
func (HSLColor) Theme() ThemeColor     { return ThemeNone }
func (c HSLColor) Brightness() float64 { return c.Bright }
func (c HSLColor) RGB() (RGB, bool)    { return fromColorful(colorful.Hsl(c.Hue, c.Sat, c.Lum)), true }
func (HSLColor) isColor()              {}

// ScRGBColor is a linear-light RGB color with components in 0..1.
type ScRGBColor struct {
	R, G, B float64
	Bright  float64
}

func (ScRGBColor) Kind() ColorKind       { return ColorScRGB }
func (ScRGBColor) Theme() ThemeColor     { return ThemeNone }
func (c ScRGBColor) Brightness() float64 { return c.Bright }
func (c ScRGBColor) RGB() (RGB, bool)    { return fromColorful(colorful.LinearRgb(c.R, c.G, c.B)), true }
func (ScRGBColor) isColor()              {}

// SystemColor is an OS palette entry such as "windowText". Last is the value
// the authoring application saw when it saved the file, if recorded.
type SystemColor struct {
	Name    string
	Last    RGB
	HasLast bool
	Bright  float64
}

func (SystemColor) Kind() ColorKind       { return ColorSystem }
func (SystemColor) Theme() ThemeColor     { return ThemeNone }
func (c SystemColor) Brightness() float64 { return c.Bright }
func (c SystemColor) RGB() (RGB, bool)    { return c.Last, c.HasLast }
func (SystemColor) isColor()              {}

// FormatColor renders a color for reports, e.g. "RGB FF0000" or
// "Scheme accent1 +0.40".
func FormatColor(c Color) string {
	if c == nil {
		c = NoColor{}
	}
	var b strings.Builder
	b.WriteString(c.Kind().String())
	switch v := c.(type) {
	case SchemeColor:
		b.WriteString(" " + string(v.Slot))
	case PresetColor:
		b.WriteString(" " + v.Name)
	case SystemColor:
		b.WriteString(" " + v.Name)
	}
	if rgb, ok := c.RGB(); ok {
		b.WriteString(" " + rgb.String())
	}
	if br := c.Brightness(); br != 0 {
		fmt.Fprintf(&b, " %+.2f", br)
	}
	return b.String()
}
