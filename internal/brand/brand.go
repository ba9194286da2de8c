// Package brand holds the fixed palette and font constants used across all
// generated slides.
package brand

import "deckgen/internal/model"

// Color is an RRGGBB hex string as used by DrawingML srgbClr values.
type Color string

const (
	White  Color = "FFFFFF"
	Teal   Color = "00A9E0" // primary accent
	Green  Color = "73BE28" // Now / Available
	Orange Color = "F5821F" // Partial
	Purple Color = "9B59B6"
	Gray   Color = "AAAAAA" // muted text
	LGray  Color = "CCCCCC"
	DGray  Color = "1E2A3A" // table row even
	DDGray Color = "121E2E" // table row odd
	Dark   Color = "0B1726" // table header bg

	BadgeGray Color = "555555" // roadmap badge fill
)

// StatusColor maps a status to its accent color. Total and injective over the
// three statuses.
func StatusColor(s model.Status) Color {
	switch s {
	case model.StatusNow:
		return Green
	case model.StatusPartial:
		return Orange
	case model.StatusRoadmap:
		return Gray
	}
	return White
}
