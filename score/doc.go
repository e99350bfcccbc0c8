// Package score compares two presentations shape by shape and returns an
// integer similarity score.
//
// The comparison walks both documents in lockstep. Slides are paired by
// index, then the geometric (non-placeholder) shapes of each slide pair are
// paired by index. Surplus slides or shapes in the longer sequence are
// ignored: they neither add nor remove points.
//
// Each shape pair earns:
//
//   - 1 point when the shape types match
//   - the fill score (see [Comparer.Fills])
//   - the line score (see [Comparer.Lines])
//   - up to 2 points for position (see [Comparer.Offsets])
//
// Fill and line scores recurse into [Colors]. A mismatch of fill kind or
// color kind scores 0 for that attribute with no partial credit.
//
// The package-level functions use [DefaultOptions]. Build a [Comparer] to
// change tolerances, choose the back-color rule, or score slides in
// parallel:
//
//	c := score.New(score.Options{
//	    AngleTolerance:  2,
//	    OffsetTolerance: 10,
//	    Workers:         4,
//	}, score.WithLogger(logger))
//	res, err := c.Explain(ctx, sample, tested)
//	fmt.Println(res.Total, res.Max)
//
// All comparators are pure and never modify the documents they read.
package score
