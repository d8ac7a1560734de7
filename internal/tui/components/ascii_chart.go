package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws one or more series as a line chart
type ASCIIChart struct {
	Title       string
	Series      []*DataSeries
	Labels      []string // X-axis labels, one per point
	Width       int
	Height      int
	ShowLegend  bool
	XAxisLabel  string
	ValueFormat func(float64) string
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:       title,
		Width:       60,
		Height:      12,
		ShowLegend:  true,
		ValueFormat: func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithValueFormat sets the Y-axis formatter
func (c *ASCIIChart) WithValueFormat(f func(float64) string) *ASCIIChart {
	c.ValueFormat = f
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.bounds()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
	}
	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}
	return content.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds finds the min and max across all series with 10% padding
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	padding := (hi - lo) * 0.1
	return lo - padding, hi + padding
}

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	yAxisWidth := 10
	chartWidth := c.Width - yAxisWidth
	if chartWidth < 2 {
		chartWidth = 2
	}
	height := c.Height
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	toX := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(float64(i) / float64(n-1) * float64(chartWidth-1))
	}
	toY := func(v float64) int {
		return height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
	}

	for idx, s := range c.Series {
		char := seriesChar(idx)
		for i, p := range s.Points {
			x, y := toX(i, len(s.Points)), toY(p)
			if i > 0 {
				drawLine(grid, toX(i-1, len(s.Points)), toY(s.Points[i-1]), x, y, char)
			}
			if x >= 0 && x < chartWidth && y >= 0 && y < height {
				grid[y][x] = char
			}
		}
	}

	var out strings.Builder
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for i, row := range grid {
		v := maxVal - float64(i)/float64(height-1)*(maxVal-minVal)
		out.WriteString(axis.Render(c.ValueFormat(v)))
		out.WriteString(" │ ")
		for _, r := range row {
			out.WriteString(c.colorize(r))
		}
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth))

	if len(c.Labels) > 0 {
		out.WriteString("\n")
		out.WriteString(c.renderXAxisLabels(yAxisWidth, chartWidth))
	}
	return out.String()
}

func (c *ASCIIChart) colorize(r rune) string {
	if r == ' ' {
		return " "
	}
	for idx, s := range c.Series {
		if seriesChar(idx) == r {
			return lipgloss.NewStyle().Foreground(s.Color).Render(string(r))
		}
	}
	return string(r)
}

// renderXAxisLabels places up to five labels under their points
func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, chartWidth int) string {
	n := len(c.Labels)
	step := n / 5
	if step == 0 {
		step = 1
	}

	line := []rune(strings.Repeat(" ", chartWidth+8))
	for i := 0; i < n; i += step {
		pos := 0
		if n > 1 {
			pos = int(float64(i) / float64(n-1) * float64(chartWidth-1))
		}
		for j, r := range c.Labels[i] {
			if pos+j < len(line) {
				line[pos+j] = r
			}
		}
	}
	return strings.Repeat(" ", yAxisWidth+3) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points using Bresenham's algorithm without overwriting plotted points
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for x, y := x0, y0; ; {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
