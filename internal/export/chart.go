package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lowaak/ttt-sim/internal/paceline"
	"github.com/lowaak/ttt-sim/internal/zones"
)

// Chart layout
const (
	DefaultChartWidth  = 1200
	DefaultChartHeight = 600

	chartPadding         = 60
	chartAxisPadding     = 40
	powerRangeMultiplier = 1.1
	powerAxisSteps       = 5
	timeAxisSteps        = 10
	axisStroke           = 2
	legendBoxSize        = 15
	legendSpacing        = 25
	legendWidth          = 160
	tickLength           = 5
)

// ErrNoSteps is returned when asked to chart an empty workout
var ErrNoSteps = errors.New("steps list cannot be empty")

// Chart renders a rider's workout as a power-vs-time bar chart
type Chart struct {
	Width  int
	Height int
}

var (
	chartBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	chartInk        = color.RGBA{A: 0xff}
)

// Render draws the chart and encodes it as PNG
func (c Chart) Render(riderName string, steps []paceline.WorkoutStep) ([]byte, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	width, height := c.Width, c.Height
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(chartBackground), image.Point{}, draw.Src)

	left := chartPadding + chartAxisPadding
	top := chartPadding
	right := width - chartPadding
	bottom := height - chartPadding - chartAxisPadding
	areaWidth := right - left
	areaHeight := bottom - top

	maxPower := 0.0
	totalSeconds := 0
	for _, s := range steps {
		maxPower = math.Max(maxPower, s.Power)
		totalSeconds += s.DurationSeconds
	}
	powerRange := maxPower * powerRangeMultiplier

	title := "TTT Workout - " + riderName
	drawText(img, (width-textWidth(title))/2, 30, title)

	// Bars first so the axes sit on top of them
	if totalSeconds > 0 && powerRange > 0 {
		x := float64(left)
		for _, s := range steps {
			barWidth := float64(areaWidth) * float64(s.DurationSeconds) / float64(totalSeconds)
			barHeight := float64(areaHeight) * s.Power / powerRange

			bar := image.Rect(
				int(math.Round(x)),
				bottom-int(math.Round(barHeight)),
				int(math.Round(x+barWidth)),
				bottom,
			)
			fillRect(img, bar, zones.ForIntensity(s.Intensity).RGBA())
			strokeRect(img, bar, chartInk)
			x += barWidth
		}
	}

	fillRect(img, image.Rect(left-axisStroke, top, left, bottom+axisStroke), chartInk)
	fillRect(img, image.Rect(left-axisStroke, bottom, right, bottom+axisStroke), chartInk)

	drawText(img, chartPadding/2, top-12, "Power (W)")
	drawText(img, width/2-30, height-10, "Time (s)")

	for i := 0; i <= powerAxisSteps; i++ {
		power := powerRange / powerAxisSteps * float64(i)
		y := bottom - areaHeight*i/powerAxisSteps
		fillRect(img, image.Rect(left-tickLength-axisStroke, y-1, left, y+1), chartInk)

		label := strconv.Itoa(int(power))
		drawText(img, left-tickLength-axisStroke-textWidth(label)-4, y+4, label)
	}

	for i := 0; i <= timeAxisSteps; i++ {
		seconds := totalSeconds / timeAxisSteps * i
		x := left + areaWidth*i/timeAxisSteps
		fillRect(img, image.Rect(x-1, bottom, x+1, bottom+axisStroke+tickLength), chartInk)

		label := fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
		drawText(img, x-textWidth(label)/2, bottom+axisStroke+tickLength+15, label)
	}

	legendX := right - legendWidth
	legendY := top + 20
	for i, z := range zones.All {
		y := legendY + i*legendSpacing
		box := image.Rect(legendX, y, legendX+legendBoxSize, y+legendBoxSize)
		fillRect(img, box, z.RGBA())
		strokeRect(img, box, chartInk)
		drawText(img, legendX+legendBoxSize+5, y+legendBoxSize-3, z.Label())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding chart for %q: %w", riderName, err)
	}
	return buf.Bytes(), nil
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func drawText(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(chartInk),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func textWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Round()
}
