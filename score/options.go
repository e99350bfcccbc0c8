package score

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Default tolerances.
const (
	// DefaultAngleTolerance is the largest gradient angle difference, in
	// degrees, that still counts as a match.
	DefaultAngleTolerance = 2.0
	// DefaultOffsetTolerance is the largest per-axis position difference, in
	// points, that still counts as a match.
	DefaultOffsetTolerance = 15.0
)

// BackColorMode selects which colors the back-color term of gradient and
// pattern fills compares.
type BackColorMode int

const (
	// BackColorSymmetric compares the sample back color with the tested back
	// color.
	BackColorSymmetric BackColorMode = iota
	// BackColorLegacy compares the sample back color with the tested fore
	// color, matching scores recorded by earlier grading runs.
	BackColorLegacy
)

// String returns the configuration name of the mode.
func (m BackColorMode) String() string {
	switch m {
	case BackColorLegacy:
		return "legacy"
	default:
		return "symmetric"
	}
}

// ParseBackColorMode parses "symmetric" or "legacy".
func ParseBackColorMode(s string) (BackColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "symmetric":
		return BackColorSymmetric, nil
	case "legacy":
		return BackColorLegacy, nil
	default:
		return BackColorSymmetric, fmt.Errorf("unknown back color mode %q (want symmetric or legacy)", s)
	}
}

// Options holds comparison settings.
type Options struct {
	AngleTolerance  float64       // Degrees
	OffsetTolerance float64       // Points, applied to each axis
	BackColor       BackColorMode // Back-color rule for gradient and pattern fills
	Workers         int           // Slide pairs scored concurrently by Explain; <= 1 is sequential
}

// DefaultOptions returns the default comparison options.
func DefaultOptions() Options {
	return Options{
		AngleTolerance:  DefaultAngleTolerance,
		OffsetTolerance: DefaultOffsetTolerance,
		BackColor:       BackColorSymmetric,
		Workers:         1,
	}
}

// Comparer scores presentations with a fixed set of options. It holds no
// mutable state and is safe for concurrent use.
type Comparer struct {
	opts   Options
	logger *zap.Logger
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithLogger sets the logger used for per-slide debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Comparer) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Comparer. Negative tolerances are treated as zero.
func New(opts Options, options ...Option) *Comparer {
	if opts.AngleTolerance < 0 {
		opts.AngleTolerance = 0
	}
	if opts.OffsetTolerance < 0 {
		opts.OffsetTolerance = 0
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	c := &Comparer{
		opts:   opts,
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// Options returns the options the Comparer was built with.
func (c *Comparer) Options() Options {
	return c.opts
}

var defaultComparer = New(DefaultOptions())
