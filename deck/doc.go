// Package deck provides the read-only document model that slidegrade scores.
//
// A [Presentation] is an ordered list of [Slide] values, each holding its
// [Shape] values in document order. Readers such as the pptx package build
// this model once per file; the score package only ever reads it.
//
// # Shapes
//
// Every shape carries a [Fill], a [Line] and a position expressed as
// [Length] values. Placeholders (title, body, footer slots inherited from
// the layout) are kept in the model but flagged, and
// [Slide.GeometricShapes] returns the author-drawn shapes only:
//
//	for _, sh := range slide.GeometricShapes() {
//	    fmt.Println(sh.Type, sh.Fill.Kind(), sh.Left.Pt(), sh.Top.Pt())
//	}
//
// # Fills and colors
//
// [Fill] and [Color] are closed sum types. The concrete fill types are
// [NoFill], [BackgroundFill], [SolidFill], [GradientFill], [PatternFill],
// [PictureFill] and [GroupFill]; the concrete color types are [NoColor],
// [RGBColor], [SchemeColor], [PresetColor], [HSLColor], [ScRGBColor] and
// [SystemColor]. Consumers switch on the concrete type, so attributes that
// only exist for one variant (a gradient angle, a pattern preset, an RGB
// value) can only be read once the variant is known:
//
//	switch f := shape.Fill.(type) {
//	case deck.GradientFill:
//	    fmt.Println(f.Angle, len(f.Stops))
//	case deck.PatternFill:
//	    fmt.Println(f.Pattern)
//	}
//
// # Units
//
// Positions and sizes are stored in English Metric Units (914400 per inch,
// 12700 per point). Use [Length.Pt] before comparing distances.
package deck
