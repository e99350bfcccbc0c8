package deck

import "fmt"

// EMU conversion factors.
const (
	EMUPerInch = 914400
	EMUPerPt   = 12700
	EMUPerCm   = 360000
)

// Length is a distance in English Metric Units.
type Length int64

// EMU returns a Length of n English Metric Units.
func EMU(n int64) Length {
	return Length(n)
}

// Pt returns the Length closest to the given number of points.
func Pt(points float64) Length {
	if points < 0 {
		return Length(points*EMUPerPt - 0.5)
	}
	return Length(points*EMUPerPt + 0.5)
}

// Inches returns the Length closest to the given number of inches.
func Inches(in float64) Length {
	return Pt(in * 72)
}

// Pt converts the length to points.
func (l Length) Pt() float64 {
	return float64(l) / EMUPerPt
}

// Inches converts the length to inches.
func (l Length) Inches() float64 {
	return float64(l) / EMUPerInch
}

// Cm converts the length to centimetres.
func (l Length) Cm() float64 {
	return float64(l) / EMUPerCm
}

// String formats the length in points.
func (l Length) String() string {
	return fmt.Sprintf("%.2fpt", l.Pt())
}
