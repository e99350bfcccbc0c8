package score

import "github.com/tsawler/slidegrade/deck"

// Shapes compares two geometric shapes using the default options.
func Shapes(sample, tested *deck.Shape) int {
	return defaultComparer.Shapes(sample, tested)
}

// Shapes returns the type point plus the fill, line and offset scores. Each
// part is computed regardless of the others.
func (c *Comparer) Shapes(sample, tested *deck.Shape) int {
	return c.shapeScore(0, sample, tested).Total
}

func (c *Comparer) shapeScore(index int, sample, tested *deck.Shape) ShapeScore {
	s := ShapeScore{
		Index:      index,
		SampleID:   sample.ID,
		TestedID:   tested.ID,
		SampleName: sample.Name,
		TestedName: tested.Name,
		SampleFill: deck.FormatFill(sample.ShapeFill()),
		TestedFill: deck.FormatFill(tested.ShapeFill()),
		SampleLine: deck.FormatLine(sample.Line),
		TestedLine: deck.FormatLine(tested.Line),
	}
	if sample.Type == tested.Type {
		s.Type = 1
	}
	s.Fill = c.Fills(sample.ShapeFill(), tested.ShapeFill())
	s.Line = c.Lines(sample.Line, tested.Line)
	s.Offset = c.Offsets(sample, tested)
	s.Total = s.Type + s.Fill + s.Line + s.Offset
	return s
}

// Slides compares two slides using the default options.
func Slides(sample, tested *deck.Slide) int {
	return defaultComparer.Slides(sample, tested)
}

// Slides pairs the geometric shapes of both slides by index, up to the
// shorter list, and sums the pair scores.
func (c *Comparer) Slides(sample, tested *deck.Slide) int {
	return c.slideScore(0, sample, tested).Total
}

func (c *Comparer) slideScore(index int, sample, tested *deck.Slide) SlideScore {
	sampleShapes := sample.GeometricShapes()
	testedShapes := tested.GeometricShapes()
	n := min(len(sampleShapes), len(testedShapes))

	s := SlideScore{
		Index:         index,
		Shapes:        make([]ShapeScore, 0, n),
		IgnoredSample: len(sampleShapes) - n,
		IgnoredTested: len(testedShapes) - n,
	}
	for i := 0; i < n; i++ {
		ss := c.shapeScore(i, sampleShapes[i], testedShapes[i])
		s.Shapes = append(s.Shapes, ss)
		s.Total += ss.Total
	}
	return s
}

// Presentations compares two presentations using the default options.
func Presentations(sample, tested *deck.Presentation) int {
	return defaultComparer.Presentations(sample, tested)
}

// Presentations pairs slides by index, up to the shorter presentation, and
// returns the sum of the slide scores.
func (c *Comparer) Presentations(sample, tested *deck.Presentation) int {
	n := min(sample.SlideCount(), tested.SlideCount())
	total := 0
	for i := 0; i < n; i++ {
		total += c.Slides(sample.Slides[i], tested.Slides[i])
	}
	return total
}
