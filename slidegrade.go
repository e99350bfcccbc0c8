// Package slidegrade scores how closely a submitted PowerPoint presentation
// reproduces a reference one. Shapes are compared attribute by attribute
// (type, fill, outline and position) and the points are summed over slides.
//
// Basic usage:
//
//	res, err := slidegrade.Open("sample.pptx").Grade("submission.pptx")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Printf("%d of %d (%.0f%%)\n", res.Total, res.Max, 100*res.Ratio())
//
// With options:
//
//	total, err := slidegrade.Open("sample.pptx").
//	    OffsetTolerance(10).
//	    LegacyBackColor().
//	    Score("submission.pptx")
//
// The scoring rules live in the score package and the PPTX reader in the
// pptx package; both can be used directly.
package slidegrade

import "github.com/tsawler/slidegrade/deck"

// Open returns a Grader that compares submissions against the sample
// presentation in filename. The file is read on the first terminal call and
// kept for later ones, so one Grader can grade many submissions while
// parsing the sample once.
//
// Example:
//
//	total, err := slidegrade.Open("sample.pptx").Score("submission.pptx")
func Open(filename string) *Grader {
	return &Grader{
		filename: filename,
		parsed:   &parsedSample{},
		options:  defaultOptions(),
	}
}

// FromPresentation returns a Grader for an already parsed sample.
func FromPresentation(sample *deck.Presentation) *Grader {
	return &Grader{
		sample:  sample,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	total := slidegrade.Must(slidegrade.Open("sample.pptx").Score("submission.pptx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
