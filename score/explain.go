package score

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/slidegrade/deck"
)

// ShapeScore is the breakdown for one pair of geometric shapes.
type ShapeScore struct {
	Index      int    `json:"index"`
	SampleID   int    `json:"sample_id"`
	TestedID   int    `json:"tested_id"`
	SampleName string `json:"sample_name,omitempty"`
	TestedName string `json:"tested_name,omitempty"`
	Type       int    `json:"type"`
	Fill       int    `json:"fill"`
	Line       int    `json:"line"`
	Offset     int    `json:"offset"`
	Total      int    `json:"total"`

	// Fill and outline of both shapes as shown in reports
	SampleFill string `json:"sample_fill"`
	TestedFill string `json:"tested_fill"`
	SampleLine string `json:"sample_line"`
	TestedLine string `json:"tested_line"`
}

// SlideScore is the breakdown for one slide pair. IgnoredSample and
// IgnoredTested count the geometric shapes beyond the shorter list.
type SlideScore struct {
	Index         int          `json:"index"`
	Shapes        []ShapeScore `json:"shapes"`
	Total         int          `json:"total"`
	IgnoredSample int          `json:"ignored_sample_shapes"`
	IgnoredTested int          `json:"ignored_tested_shapes"`
}

// Result is the full breakdown of a comparison. Max is the score the sample
// earns against itself.
type Result struct {
	Total         int          `json:"total"`
	Max           int          `json:"max"`
	Slides        []SlideScore `json:"slides"`
	IgnoredSample int          `json:"ignored_sample_slides"`
	IgnoredTested int          `json:"ignored_tested_slides"`
}

// Ratio returns Total divided by Max. A sample that cannot earn any points
// yields 1.
func (r *Result) Ratio() float64 {
	if r.Max == 0 {
		return 1
	}
	return float64(r.Total) / float64(r.Max)
}

// Explain compares two presentations and returns the per-slide and
// per-shape breakdown. Result.Total always equals Presentations(sample,
// tested). With Workers > 1 slide pairs are scored concurrently. The only
// error Explain returns is the context's.
func (c *Comparer) Explain(ctx context.Context, sample, tested *deck.Presentation) (*Result, error) {
	n := min(sample.SlideCount(), tested.SlideCount())
	res := &Result{
		Slides:        make([]SlideScore, n),
		IgnoredSample: sample.SlideCount() - n,
		IgnoredTested: tested.SlideCount() - n,
	}

	if c.opts.Workers > 1 && n > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.opts.Workers)
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res.Slides[i] = c.slideScore(i, sample.Slides[i], tested.Slides[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res.Slides[i] = c.slideScore(i, sample.Slides[i], tested.Slides[i])
		}
	}

	for _, s := range res.Slides {
		res.Total += s.Total
		c.logger.Debug("slide pair scored",
			zap.Int("slide", s.Index+1),
			zap.Int("score", s.Total),
			zap.Int("pairs", len(s.Shapes)),
			zap.Int("ignored_sample_shapes", s.IgnoredSample),
			zap.Int("ignored_tested_shapes", s.IgnoredTested))
	}
	res.Max = c.Presentations(sample, sample)

	if res.IgnoredSample > 0 || res.IgnoredTested > 0 {
		c.logger.Debug("slide counts differ, surplus slides ignored",
			zap.Int("sample_slides", sample.SlideCount()),
			zap.Int("tested_slides", tested.SlideCount()))
	}
	return res, nil
}
