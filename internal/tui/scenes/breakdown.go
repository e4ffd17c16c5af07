package scenes

import (
	"fmt"
	"strconv"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/internal/tui/components"
	"github.com/OrHava/economy-project/internal/tui/tuimsg"
	"github.com/OrHava/economy-project/internal/tui/tuistyles"
	"github.com/OrHava/economy-project/pkg/dateutil"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BreakdownModel shows one employee's projection year by year
type BreakdownModel struct {
	record *domain.EmployeeRecord
	result *domain.LiabilityResult
	table  table.Model
	width  int
	height int
}

var stepColumns = []table.Column{
	{Title: "Year", Width: 4},
	{Title: "Age", Width: 4},
	{Title: "Projected Salary", Width: 16},
	{Title: "Survival", Width: 9},
	{Title: "Mortality", Width: 9},
	{Title: "Resignation", Width: 11},
	{Title: "Discount", Width: 9},
	{Title: "Benefit", Width: 14},
	{Title: "Present Value", Width: 14},
}

// NewBreakdownModel creates a new breakdown scene model
func NewBreakdownModel() *BreakdownModel {
	t := table.New(
		table.WithColumns(stepColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(styles)

	return &BreakdownModel{table: t}
}

// SetBreakdown replaces the displayed employee
func (m *BreakdownModel) SetBreakdown(record *domain.EmployeeRecord, result *domain.LiabilityResult) {
	m.record = record
	m.result = result

	rows := make([]table.Row, len(result.Steps))
	for i, s := range result.Steps {
		rows[i] = table.Row{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Age),
			tuistyles.FormatAmount(s.ProjectedSalary),
			s.SurvivalProbability.StringFixed(5),
			s.MortalityRate.String(),
			s.ResignationRate.String(),
			s.DiscountFactor.StringFixed(5),
			tuistyles.FormatAmount(s.Benefit),
			tuistyles.FormatAmount(s.PresentValue),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// SetSize updates the scene dimensions
func (m *BreakdownModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// header lines and the chart take the rest
	m.table.SetHeight(max(3, height-16))
}

// Result returns the displayed result, or nil
func (m *BreakdownModel) Result() *domain.LiabilityResult {
	return m.result
}

// Update handles messages for the breakdown scene
func (m *BreakdownModel) Update(msg tea.Msg) (*BreakdownModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, key.NewBinding(key.WithKeys("backspace", "left"))) {
		return m, func() tea.Msg { return tuimsg.BackMsg{} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the employee header, the steps table and the present value chart
func (m *BreakdownModel) View() string {
	if m.record == nil || m.result == nil {
		return tuistyles.BorderStyle.Render("No employee selected")
	}
	res := m.result

	title := tuistyles.TitleStyle.Render(fmt.Sprintf("%s (%s)", m.record.FullName(), m.record.ID))
	if !res.IsValid() {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			tuistyles.InvalidStyle.Render(domain.InvalidMarker+": "+res.InvalidReason))
	}

	details := tuistyles.SubtitleStyle.Render(fmt.Sprintf(
		"born %s  hired %s  age %d  horizon %d  status %s",
		dateutil.FormatPtr(m.record.BirthDate), dateutil.FormatPtr(m.record.HireDate),
		res.Age, res.Horizon, res.Status))

	cards := []*components.MetricCard{
		components.NewMetricCard("Projected", tuistyles.FormatAmount(res.ProjectedTotal)),
	}
	for _, amount := range res.PreExisting {
		cards = append(cards, components.NewMetricCard(amount.Name, tuistyles.FormatAmount(amount.Amount)))
	}
	cards = append(cards, components.NewMetricCard("Total liability", tuistyles.FormatAmount(res.Total)).WithWidth(28))

	parts := []string{title, details, components.MetricGrid(cards, 4)}
	if len(res.Steps) > 0 {
		values := make([]float64, len(res.Steps))
		for i, s := range res.Steps {
			values[i] = s.PresentValue.InexactFloat64()
		}
		parts = append(parts, m.table.View(), components.NewBarChart("Present value by year", values).WithHeight(4).Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
