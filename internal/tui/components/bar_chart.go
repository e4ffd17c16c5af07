package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/OrHava/economy-project/internal/tui/tuistyles"
	"github.com/charmbracelet/lipgloss"
)

var barLevels = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// BarChart draws one column per value, scaled to the largest value.
// Negative values are drawn as zero.
type BarChart struct {
	Title  string
	Values []float64
	Height int
	Color  lipgloss.Color
}

// NewBarChart creates a chart of the given rows' height
func NewBarChart(title string, values []float64) *BarChart {
	return &BarChart{
		Title:  title,
		Values: values,
		Height: 6,
		Color:  tuistyles.ColorAccent,
	}
}

// WithHeight sets the number of text rows the bars span
func (c *BarChart) WithHeight(height int) *BarChart {
	if height > 0 {
		c.Height = height
	}
	return c
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Values) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	peak := 0.0
	for _, v := range c.Values {
		peak = math.Max(peak, v)
	}

	const axisWidth = 10
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(axisWidth).Align(lipgloss.Right)
	bar := lipgloss.NewStyle().Foreground(c.Color)

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(tuistyles.TitleStyle.Render(c.Title))
		out.WriteString("\n")
	}

	steps := len(barLevels) - 1
	for row := c.Height - 1; row >= 0; row-- {
		label := ""
		if row == c.Height-1 {
			label = formatChartValue(peak)
		}
		out.WriteString(axis.Render(label))
		out.WriteString(" │")

		var line strings.Builder
		for _, v := range c.Values {
			line.WriteRune(barCell(v, peak, row, c.Height, steps))
		}
		out.WriteString(bar.Render(line.String()))
		out.WriteString("\n")
	}

	out.WriteString(axis.Render(formatChartValue(0)))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", len(c.Values)))
	return out.String()
}

// barCell returns the glyph for one value at one text row.
func barCell(v, peak float64, row, height, steps int) rune {
	if peak <= 0 || v <= 0 {
		return barLevels[0]
	}
	filled := int(math.Round(v / peak * float64(height*steps)))
	level := filled - row*steps
	switch {
	case level <= 0:
		return barLevels[0]
	case level >= steps:
		return barLevels[steps]
	default:
		return barLevels[level]
	}
}

func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1e6:
		return fmt.Sprintf("%.1fM", value/1e6)
	case math.Abs(value) >= 1e3:
		return fmt.Sprintf("%.0fK", value/1e3)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}
