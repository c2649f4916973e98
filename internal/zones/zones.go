// Package zones classifies workout intensity (power / FTP) into training
// zones and carries the colour and glyph each renderer uses for a zone.
package zones

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Zone thresholds as fractions of FTP
const (
	AnaerobicThreshold = 1.18
	VO2MaxThreshold    = 1.05
	ThresholdThreshold = 0.90
	TempoThreshold     = 0.75
	EnduranceThreshold = 0.60
)

// Zone is one intensity band
type Zone struct {
	Name  string
	Min   float64     // inclusive lower bound, 0 for Recovery
	Color tcell.Color // shared by the chart, console and viewer renderers
	Glyph rune        // console bar character
}

// All lists the zones from hardest to easiest
var All = []Zone{
	{Name: "Anaerobic", Min: AnaerobicThreshold, Color: tcell.NewRGBColor(220, 50, 50), Glyph: '█'},
	{Name: "VO2 Max", Min: VO2MaxThreshold, Color: tcell.NewRGBColor(255, 165, 0), Glyph: '█'},
	{Name: "Threshold", Min: ThresholdThreshold, Color: tcell.NewRGBColor(255, 200, 0), Glyph: '▓'},
	{Name: "Tempo", Min: TempoThreshold, Color: tcell.NewRGBColor(50, 180, 50), Glyph: '▒'},
	{Name: "Endurance", Min: EnduranceThreshold, Color: tcell.NewRGBColor(0, 0, 255), Glyph: '░'},
	{Name: "Recovery", Min: 0, Color: tcell.NewRGBColor(105, 105, 105), Glyph: '·'},
}

// ForIntensity returns the zone an intensity falls into
func ForIntensity(intensity float64) Zone {
	for _, z := range All {
		if intensity >= z.Min {
			return z
		}
	}
	return All[len(All)-1]
}

// Label is the legend text for the zone
func (z Zone) Label() string {
	if z.Min == 0 {
		return fmt.Sprintf("%s (< %.2f)", z.Name, EnduranceThreshold)
	}
	return fmt.Sprintf("%s (>= %.2f)", z.Name, z.Min)
}

// Hex returns the zone colour as #rrggbb
func (z Zone) Hex() string {
	r, g, b := z.Color.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGBA returns the zone colour for image drawing
func (z Zone) RGBA() color.RGBA {
	r, g, b := z.Color.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
