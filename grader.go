package slidegrade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/slidegrade/config"
	"github.com/tsawler/slidegrade/deck"
	"github.com/tsawler/slidegrade/format"
	"github.com/tsawler/slidegrade/internal/deckcache"
	"github.com/tsawler/slidegrade/pptx"
	"github.com/tsawler/slidegrade/score"
)

// ErrUnsupportedFormat is returned for inputs that are not PPTX packages.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Grader provides a fluent interface for comparing submissions with a
// sample presentation. Each configuration method returns a new Grader
// instance, so a configured Grader can be shared and reused.
type Grader struct {
	// Source
	filename string
	sample   *deck.Presentation
	parsed   *parsedSample // Shared by every Grader derived from one Open

	// Configuration
	options gradeOptions

	// Accumulated error (fail-fast)
	err error
}

// parsedSample holds the sample once it has been read from disk.
type parsedSample struct {
	mu sync.Mutex
	p  *deck.Presentation
}

// Submission is the outcome of grading one file.
type Submission struct {
	Path   string        `json:"path"`
	Result *score.Result `json:"result,omitempty"`
	Err    error         `json:"-"`
}

// clone creates a shallow copy of the Grader with a copy of options.
func (g *Grader) clone() *Grader {
	return &Grader{
		filename: g.filename,
		sample:   g.sample,
		parsed:   g.parsed,
		options:  g.options.clone(),
		err:      g.err,
	}
}

// ============================================================================
// Configuration Methods (return new Grader instance)
// ============================================================================

// AngleTolerance sets the largest gradient angle difference, in degrees,
// that still scores. The default is 2.
//
// Example:
//
//	total, err := slidegrade.Open("sample.pptx").AngleTolerance(5).Score("s.pptx")
func (g *Grader) AngleTolerance(degrees float64) *Grader {
	newG := g.clone()
	if degrees < 0 && newG.err == nil {
		newG.err = fmt.Errorf("angle tolerance must not be negative: %v", degrees)
	}
	newG.options.score.AngleTolerance = degrees
	return newG
}

// OffsetTolerance sets the largest per-axis position difference, in points,
// that still scores. The default is 15.
//
// Example:
//
//	total, err := slidegrade.Open("sample.pptx").OffsetTolerance(10).Score("s.pptx")
func (g *Grader) OffsetTolerance(points float64) *Grader {
	newG := g.clone()
	if points < 0 && newG.err == nil {
		newG.err = fmt.Errorf("offset tolerance must not be negative: %v", points)
	}
	newG.options.score.OffsetTolerance = points
	return newG
}

// LegacyBackColor compares the sample back color of gradient and pattern
// fills with the submission's fore color, matching scores recorded by
// earlier grading runs.
func (g *Grader) LegacyBackColor() *Grader {
	newG := g.clone()
	newG.options.score.BackColor = score.BackColorLegacy
	return newG
}

// Workers sets how many slide pairs are scored concurrently.
func (g *Grader) Workers(n int) *Grader {
	newG := g.clone()
	newG.options.score.Workers = n
	return newG
}

// Logger sets the logger used for parse and score diagnostics.
func (g *Grader) Logger(l *zap.Logger) *Grader {
	newG := g.clone()
	if l != nil {
		newG.options.logger = l
	}
	return newG
}

// Cached keeps parsed presentations for ttl so repeated grading of the same
// files skips parsing. A cleanup interval of 0 runs no background janitor.
func (g *Grader) Cached(ttl, cleanup time.Duration) *Grader {
	newG := g.clone()
	newG.options.cache = deckcache.New(ttl, cleanup, deckcache.WithLogger(newG.options.logger))
	return newG
}

// Config applies the scoring section of cfg.
func (g *Grader) Config(cfg *config.Config) *Grader {
	newG := g.clone()
	opts, err := cfg.ScoreOptions()
	if err != nil {
		if newG.err == nil {
			newG.err = fmt.Errorf("invalid configuration: %w", err)
		}
		return newG
	}
	newG.options.score = opts
	return newG
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Sample returns the parsed sample presentation. The file is parsed by the
// first successful call and reused afterwards, also by Graders derived
// from this one; a failed read is retried on the next call.
func (g *Grader) Sample() (*deck.Presentation, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.sample != nil {
		return g.sample, nil
	}
	if g.filename == "" || g.parsed == nil {
		return nil, fmt.Errorf("no sample specified")
	}

	g.parsed.mu.Lock()
	defer g.parsed.mu.Unlock()
	if g.parsed.p != nil {
		return g.parsed.p, nil
	}
	p, err := g.load(g.filename)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	g.parsed.p = p
	return p, nil
}

// Grade compares the presentation in filename with the sample and returns
// the full breakdown.
//
// Example:
//
//	res, err := slidegrade.Open("sample.pptx").Grade("submission.pptx")
func (g *Grader) Grade(filename string) (*score.Result, error) {
	return g.GradeContext(context.Background(), filename)
}

// GradeContext is Grade with a context.
func (g *Grader) GradeContext(ctx context.Context, filename string) (*score.Result, error) {
	sample, err := g.Sample()
	if err != nil {
		return nil, err
	}
	tested, err := g.load(filename)
	if err != nil {
		return nil, err
	}
	return g.compare(ctx, sample, tested, filename)
}

// GradePresentation compares an already parsed submission with the sample.
func (g *Grader) GradePresentation(ctx context.Context, tested *deck.Presentation) (*score.Result, error) {
	sample, err := g.Sample()
	if err != nil {
		return nil, err
	}
	return g.compare(ctx, sample, tested, "")
}

// Score returns only the total score of filename against the sample.
//
// Example:
//
//	total, err := slidegrade.Open("sample.pptx").Score("submission.pptx")
func (g *Grader) Score(filename string) (int, error) {
	res, err := g.Grade(filename)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

// GradeAll grades every file in order. A file that cannot be read is
// reported in its Submission and does not stop the others; a sample that
// cannot be read, or a cancelled context, fails the whole call.
func (g *Grader) GradeAll(ctx context.Context, filenames ...string) ([]Submission, error) {
	sample, err := g.Sample()
	if err != nil {
		return nil, err
	}

	out := make([]Submission, 0, len(filenames))
	for _, name := range filenames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sub := Submission{Path: name}
		tested, err := g.load(name)
		if err == nil {
			sub.Result, err = g.compare(ctx, sample, tested, name)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			g.options.logger.Warn("submission not graded", zap.String("path", name), zap.Error(err))
			sub.Err = err
		}
		out = append(out, sub)
	}
	return out, nil
}

func (g *Grader) compare(ctx context.Context, sample, tested *deck.Presentation, name string) (*score.Result, error) {
	c := score.New(g.options.score, score.WithLogger(g.options.logger))
	res, err := c.Explain(ctx, sample, tested)
	if err != nil {
		return nil, err
	}
	g.options.logger.Debug("submission graded",
		zap.String("path", name),
		zap.Int("score", res.Total),
		zap.Int("max", res.Max))
	return res, nil
}

// load parses a PPTX file, through the cache when one is configured.
func (g *Grader) load(filename string) (*deck.Presentation, error) {
	if f := format.Detect(filename); f != format.Unknown && !f.Gradable() {
		return nil, fmt.Errorf("%s: %w: %s", filename, ErrUnsupportedFormat, f)
	}
	if g.options.cache != nil {
		p, err := g.options.cache.Load(filename)
		return p, wrapLoadError(filename, err)
	}
	p, err := pptx.Load(filename)
	return p, wrapLoadError(filename, err)
}

func wrapLoadError(filename string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pptx.ErrNotPresentation) {
		if f, ferr := format.DetectFile(filename); ferr == nil && f != format.Unknown && !f.Gradable() {
			return fmt.Errorf("%s: %w: %s", filename, ErrUnsupportedFormat, f)
		}
	}
	return fmt.Errorf("failed to open PPTX %s: %w", filename, err)
}
