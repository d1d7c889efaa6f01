package barchart

import (
	"fmt"
	"image/color"
	"math"

	drawille "github.com/exrook/drawille-go"
	"github.com/lucasb-eyer/go-colorful"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/tui/theme"
)

const (
	// plot area in rows; each braille row is 4 dots tall
	PlotRows = 15
	BarCells = 7
	GapCells = 2
	// "100% ┤"
	AxisCells = 6

	plotDots = PlotRows * 4
	gridStep = 20

	baseOpacity = 0.8
	opacityStep = 0.1
)

// row offsets within the rendered block
const (
	headerRows  = 1
	axisRow     = headerRows + PlotRows
	labelRow    = axisRow + 1
	tooltipRow  = labelRow + 1
	totalHeight = tooltipRow + 1
)

// Chart is a seven-bar chart of emotion percentages on a 0-100 axis.
type Chart struct {
	Series  emotion.Series
	HasData bool
	// Selected is the bar whose tooltip is shown, or -1.
	Selected   int
	Background color.Color
	TextColor  color.Color
	GridColor  color.Color
}

type Option func(*Chart)

func WithSelected(i int) Option {
	return func(c *Chart) {
		c.Selected = i
	}
}

func WithBackground(bg color.Color) Option {
	return func(c *Chart) {
		c.Background = bg
	}
}

func New(series emotion.Series, hasData bool, opts ...Option) Chart {
	c := Chart{
		Series:     series,
		HasData:    hasData,
		Selected:   -1,
		Background: theme.ColorBgDark,
		TextColor:  theme.ColorWhite,
		GridColor:  theme.ColorGrid,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func Width() int {
	return AxisCells + GapCells + emotion.Count*(BarCells+GapCells)
}

func Height() int {
	return totalHeight
}

func barStart(i int) int {
	return AxisCells + GapCells + i*(BarCells+GapCells)
}

// BarAt maps a column offset from the chart's left edge to a bar index, or
// -1 when the column is on the axis or in a gap.
func BarAt(x int) int {
	off := x - AxisCells - GapCells
	if off < 0 {
		return -1
	}
	i := off / (BarCells + GapCells)
	if i >= emotion.Count || off%(BarCells+GapCells) >= BarCells {
		return -1
	}
	return i
}

// BarHeight converts a percentage to a bar height in dots. Values outside
// [0, 100] are clamped.
func BarHeight(v float64) int {
	v = math.Max(0, math.Min(100, v))
	return int(math.Round(v / 100 * plotDots))
}

// Opacity is the fill opacity of bar i: 0.8 for the first, falling by 0.1.
func Opacity(i int) float64 {
	return baseOpacity - float64(i)*opacityStep
}

// BarColor is the bar base color at bar i's opacity, composited onto bg.
func BarColor(i int, bg color.Color) colorful.Color {
	base, err := colorful.Hex(theme.BarHex)
	if err != nil {
		panic(err)
	}
	under := colorful.Color{}
	if bg != nil {
		if c, ok := colorful.MakeColor(bg); ok {
			under = c
		}
	}
	return base.BlendRgb(under, 1-Opacity(i)).Clamped()
}

// Tooltip returns the hover text for the selected bar, or "".
func (c Chart) Tooltip() string {
	if !c.HasData || c.Selected < 0 || c.Selected >= emotion.Count {
		return ""
	}
	return fmt.Sprintf("%s: %.1f%%", emotion.All[c.Selected], c.Series[c.Selected])
}

func (c Chart) Render() string {
	g := newGrid(Width(), Height())

	c.drawAxis(g)
	c.drawPlot(g)
	if c.HasData {
		c.drawOverlays(g)
	}
	c.drawCategories(g)
	c.drawTooltip(g)

	return g.String()
}

func (c Chart) drawAxis(g grid) {
	style := lipgloss.NewStyle().Foreground(theme.ColorDim)

	ticks := make(map[int]int) // plot row -> value
	for v := gridStep; v <= 100; v += gridStep {
		ticks[(plotDots-BarHeight(float64(v)))/4] = v
	}

	for r := range PlotRows {
		line := fmt.Sprintf("%*s│", AxisCells-1, "")
		if v, ok := ticks[r]; ok {
			line = fmt.Sprintf("%*s┤", AxisCells-1, fmt.Sprintf("%d%% ", v))
		}
		g.put(headerRows+r, 0, line, &style)
	}

	g.put(axisRow, 0, fmt.Sprintf("%*s└", AxisCells-1, "0% "), &style)
	for col := AxisCells; col < Width(); col++ {
		g.put(axisRow, col, "─", &style)
	}
}

func (c Chart) drawPlot(g grid) {
	plotCols := Width() - AxisCells

	gridCanvas := drawille.NewCanvas()
	for v := gridStep; v <= 100; v += gridStep {
		y := plotDots - BarHeight(float64(v))
		for x := 0; x < plotCols*2; x += 2 {
			gridCanvas.Set(x, y)
		}
	}

	barCanvas := drawille.NewCanvas()
	if c.HasData {
		for i, v := range c.Series {
			h := BarHeight(v)
			x0 := (barStart(i) - AxisCells) * 2
			for x := x0; x < x0+BarCells*2; x++ {
				for y := plotDots - h; y < plotDots; y++ {
					barCanvas.Set(x, y)
				}
			}
		}
	}

	var (
		gridRows = canvasRows(&gridCanvas, plotCols*2, plotDots)
		barRows  = canvasRows(&barCanvas, plotCols*2, plotDots)
		gridFg   = lipgloss.NewStyle().Foreground(c.GridColor)
	)

	for r := range PlotRows {
		for j := range plotCols {
			col := AxisCells + j
			gr, br := gridRows[r][j], barRows[r][j]
			switch {
			case hasDots(br):
				style := lipgloss.NewStyle().Foreground(c.barColor(BarAt(col)))
				g.put(headerRows+r, col, string(combineBraille(gr, br)), &style)
			case hasDots(gr):
				g.put(headerRows+r, col, string(gr), &gridFg)
			}
		}
	}
}

// drawOverlays places each bar's emoji just above its top and its value
// centered vertically inside it.
func (c Chart) drawOverlays(g grid) {
	for i, e := range emotion.All {
		v := c.Series[i]
		h := BarHeight(v)

		top := PlotRows - (h+3)/4
		valueRow := PlotRows - 1
		if h > 0 {
			valueRow = (top + PlotRows - 1) / 2
		}

		label := fmt.Sprintf("%.1f%%", v)
		valueStyle := lipgloss.NewStyle().Foreground(c.TextColor).Bold(true)
		if h > 0 {
			valueStyle = valueStyle.Background(c.barColor(i))
		}
		g.put(headerRows+valueRow, barStart(i)+(BarCells-lipgloss.Width(label))/2, label, &valueStyle)

		emojiRow := headerRows + min(top, valueRow) - 1
		g.put(emojiRow, barStart(i)+(BarCells-2)/2, e.Emoji(), nil)
	}
}

func (c Chart) drawCategories(g grid) {
	span := BarCells + GapCells
	for i, e := range emotion.All {
		style := lipgloss.NewStyle().Foreground(theme.ColorDim)
		if i == c.Selected {
			style = lipgloss.NewStyle().Foreground(c.TextColor).Bold(true)
		}
		name := e.String()
		g.put(labelRow, barStart(i)-GapCells/2+(span-len(name))/2, name, &style)
	}
}

func (c Chart) drawTooltip(g grid) {
	tip := c.Tooltip()
	if tip == "" {
		return
	}
	style := lipgloss.NewStyle().Foreground(c.TextColor).Bold(true)
	g.put(tooltipRow, (Width()-lipgloss.Width(tip))/2, tip, &style)
}

func (c Chart) barColor(i int) color.Color {
	if i < 0 {
		return c.GridColor
	}
	if i == c.Selected {
		return theme.ColorBar
	}
	return BarColor(i, c.Background)
}
