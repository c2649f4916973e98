package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lowaak/ttt-sim/internal/paceline"
	"github.com/lowaak/ttt-sim/internal/zones"
)

const (
	DefaultConsoleMaxRotations = 2
	DefaultConsoleBarHeight    = 20

	consoleBarWidth = 4
	consoleIndent   = "  "
)

// ConsoleBars draws a rider's power profile as coloured vertical bars
type ConsoleBars struct {
	MaxRotations int
	BarHeight    int

	// Renderer decides the colour profile; nil uses the stdout renderer
	Renderer *lipgloss.Renderer
}

func (c ConsoleBars) renderer() *lipgloss.Renderer {
	if c.Renderer != nil {
		return c.Renderer
	}
	return lipgloss.DefaultRenderer()
}

func (c ConsoleBars) limits() (maxRotations, barHeight int) {
	maxRotations, barHeight = c.MaxRotations, c.BarHeight
	if maxRotations <= 0 {
		maxRotations = DefaultConsoleMaxRotations
	}
	if barHeight <= 0 {
		barHeight = DefaultConsoleBarHeight
	}
	return maxRotations, barHeight
}

// Render returns the bars for the first rotations of a workout, or "" when
// there is nothing to draw
func (c ConsoleBars) Render(steps []paceline.WorkoutStep, teamSize, rotations int) string {
	if len(steps) == 0 {
		return ""
	}

	maxRotations, barHeight := c.limits()
	shownRotations := min(rotations, maxRotations)
	visible := min(len(steps), shownRotations*teamSize)
	if visible <= 0 {
		return ""
	}
	steps = steps[:visible]

	maxPower := 0.0
	for _, s := range steps {
		maxPower = math.Max(maxPower, s.Power)
	}

	heights := make([]int, len(steps))
	cells := make([]string, len(steps))
	r := c.renderer()
	for i, s := range steps {
		heights[i] = scaledBarHeight(s.Power, maxPower, barHeight)
		z := zones.ForIntensity(s.Intensity)
		cells[i] = r.NewStyle().
			Foreground(lipgloss.Color(z.Hex())).
			Render(strings.Repeat(string(z.Glyph), consoleBarWidth))
	}

	var sb strings.Builder
	plural := ""
	if shownRotations > 1 {
		plural = "s"
	}
	fmt.Fprintf(&sb, "\n%sPower Profile (First %d Rotation%s):\n", consoleIndent, shownRotations, plural)

	blank := strings.Repeat(" ", consoleBarWidth)
	for row := barHeight; row > 0; row-- {
		sb.WriteString(consoleIndent)
		for i := range steps {
			if row <= heights[i] {
				sb.WriteString(cells[i])
			} else {
				sb.WriteString(blank)
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(consoleIndent)
	sb.WriteString(strings.Repeat("─", len(steps)*consoleBarWidth))
	sb.WriteByte('\n')
	return sb.String()
}

// Legend lists every zone with its glyph and colour
func (c ConsoleBars) Legend() string {
	r := c.renderer()

	var sb strings.Builder
	sb.WriteString("\n" + consoleIndent + "Legend:\n")
	for _, z := range zones.All {
		swatch := r.NewStyle().
			Foreground(lipgloss.Color(z.Hex())).
			Render(strings.Repeat(string(z.Glyph), 3))
		fmt.Fprintf(&sb, "%s%s%s %s\n", consoleIndent, consoleIndent, swatch, z.Label())
	}
	return sb.String()
}

func scaledBarHeight(power, maxPower float64, barHeight int) int {
	if maxPower == 0 {
		return 0
	}
	return max(1, int(math.Round(power/maxPower*float64(barHeight))))
}
