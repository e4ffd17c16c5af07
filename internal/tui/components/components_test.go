package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarCell(t *testing.T) {
	// height 2, 8 steps per row: a value at half the peak fills the first row exactly
	assert.Equal(t, '█', barCell(50, 100, 0, 2, 8))
	assert.Equal(t, ' ', barCell(50, 100, 1, 2, 8))
	assert.Equal(t, '█', barCell(100, 100, 1, 2, 8))
	assert.Equal(t, '▄', barCell(25, 100, 0, 2, 8))
	assert.Equal(t, ' ', barCell(-5, 100, 0, 2, 8))
	assert.Equal(t, ' ', barCell(5, 0, 0, 2, 8))
}

func TestBarChart_Render(t *testing.T) {
	out := NewBarChart("PV", []float64{1000, 3000, 500}).WithHeight(3).Render()

	assert.Contains(t, out, "PV")
	assert.Contains(t, out, "3K")
	assert.Contains(t, out, "└───")
	assert.Contains(t, NewBarChart("", nil).Render(), "No data")
}

func TestMetricGrid(t *testing.T) {
	cards := []*MetricCard{
		NewMetricCard("Employees", "2"),
		NewMetricCard("Invalid", "1").Warn(),
		NewMetricCard("Total", "10.00").WithDescription("as of 1.1.2026"),
	}
	out := MetricGrid(cards, 2)

	assert.Contains(t, out, "Employees")
	assert.Contains(t, out, "as of 1.1.2026")
	assert.True(t, strings.Count(out, "\n") > 4)
	assert.Empty(t, MetricGrid(nil, 3))
	assert.Contains(t, cards[0].RenderCompact(), "Employees:")
}
