package score

import (
	"math"

	"github.com/tsawler/slidegrade/deck"
)

// Colors compares two colors. Colors of different kinds score 0. Otherwise
// the score is the sum of:
//
//   - 1 if both are RGB colors with the same value
//   - 1 if the theme slots match (always true for non-scheme kinds)
//   - 1 if the brightness adjustments are exactly equal
//
// A fully matching RGB color scores 3, any other fully matching color 2.
// Two absent colors score 1 for the kind match alone.
func Colors(sample, tested deck.Color) int {
	sample, tested = colorOrNone(sample), colorOrNone(tested)
	if sample.Kind() != tested.Kind() {
		return 0
	}

	scored := 0
	switch s := sample.(type) {
	case deck.NoColor:
		return 1
	case deck.RGBColor:
		if t, ok := tested.(deck.RGBColor); ok && s.Value == t.Value {
			scored++
		}
	case deck.SchemeColor, deck.PresetColor, deck.HSLColor, deck.ScRGBColor, deck.SystemColor:
		// No literal value to score.
	}

	if sample.Theme() == tested.Theme() {
		scored++
	}
	if sample.Brightness() == tested.Brightness() {
		scored++
	}
	return scored
}

// Fills compares two fills using the default options.
func Fills(sample, tested deck.Fill) int {
	return defaultComparer.Fills(sample, tested)
}

// Fills compares two fills. Fills of different kinds score 0. Matching
// kinds score 1, and gradient and pattern fills add:
//
//   - gradient: 1 if the angles are within AngleTolerance, 1 if the stop
//     sequences are identical, plus the fore and back color scores
//   - pattern: 1 if the presets match, plus the fore and back color scores
//
// Every other kind scores the kind point only.
func (c *Comparer) Fills(sample, tested deck.Fill) int {
	sample, tested = fillOrNone(sample), fillOrNone(tested)
	if sample.Kind() != tested.Kind() {
		return 0
	}

	scored := 1
	switch s := sample.(type) {
	case deck.GradientFill:
		t := tested.(deck.GradientFill)
		if c.anglesMatch(s, t) {
			scored++
		}
		if deck.StopsEqual(s.Stops, t.Stops) {
			scored++
		}
		scored += Colors(s.ForeColor(), t.ForeColor())
		scored += c.backColors(s.BackColor(), t.BackColor(), t.ForeColor())
	case deck.PatternFill:
		t := tested.(deck.PatternFill)
		if s.Pattern == t.Pattern {
			scored++
		}
		scored += Colors(s.Fore, t.Fore)
		scored += c.backColors(s.Back, t.Back, t.Fore)
	case deck.NoFill, deck.BackgroundFill, deck.SolidFill, deck.PictureFill, deck.GroupFill:
		// Kind point only.
	}
	return scored
}

// anglesMatch treats two path gradients as matching; a linear gradient never
// matches a path gradient.
func (c *Comparer) anglesMatch(s, t deck.GradientFill) bool {
	if s.Linear != t.Linear {
		return false
	}
	if !s.Linear {
		return true
	}
	return math.Abs(s.Angle-t.Angle) <= c.opts.AngleTolerance
}

func (c *Comparer) backColors(sampleBack, testedBack, testedFore deck.Color) int {
	if c.opts.BackColor == BackColorLegacy {
		return Colors(sampleBack, testedFore)
	}
	return Colors(sampleBack, testedBack)
}

// Lines compares two outlines using the default options.
func Lines(sample, tested deck.Line) int {
	return defaultComparer.Lines(sample, tested)
}

// Lines scores 1 for a matching dash style plus the color score. The two
// parts are independent.
func (c *Comparer) Lines(sample, tested deck.Line) int {
	scored := 0
	if sample.Dash == tested.Dash {
		scored++
	}
	scored += Colors(sample.LineColor(), tested.LineColor())
	return scored
}

// Offsets compares shape positions using the default options.
func Offsets(sample, tested *deck.Shape) int {
	return defaultComparer.Offsets(sample, tested)
}

// Offsets scores 1 for each axis on which the two shapes are no more than
// OffsetTolerance points apart.
func (c *Comparer) Offsets(sample, tested *deck.Shape) int {
	scored := 0
	if math.Abs(sample.Left.Pt()-tested.Left.Pt()) <= c.opts.OffsetTolerance {
		scored++
	}
	if math.Abs(sample.Top.Pt()-tested.Top.Pt()) <= c.opts.OffsetTolerance {
		scored++
	}
	return scored
}

func colorOrNone(c deck.Color) deck.Color {
	if c == nil {
		return deck.NoColor{}
	}
	return c
}

func fillOrNone(f deck.Fill) deck.Fill {
	if f == nil {
		return deck.NoFill{}
	}
	return f
}
