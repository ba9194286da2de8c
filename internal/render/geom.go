// Package render holds the low-level drawing primitives: text boxes, status
// badges, requirement and coverage tables, and pictures. All routines are
// stateless and operate on one slide at a time; positions are in inches.
package render

import "math"

const emuPerInch = 914400

// EMU converts inches to English Metric Units.
func EMU(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

// Centipoints converts a font size in points to DrawingML hundredths.
func Centipoints(pt float64) int {
	return int(math.Round(pt * 100))
}

// Box is a placement rectangle in inches.
type Box struct {
	Left, Top, Width, Height float64
}

// Align is a DrawingML paragraph alignment value.
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)
