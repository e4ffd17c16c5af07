package scenes

import (
	"fmt"
	"strconv"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/internal/tui/components"
	"github.com/OrHava/economy-project/internal/tui/tuimsg"
	"github.com/OrHava/economy-project/internal/tui/tuistyles"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// EmployeesModel lists every employee of the batch with its liability
type EmployeesModel struct {
	rows   []domain.ResultRow
	table  table.Model
	width  int
	height int
}

var employeeColumns = []table.Column{
	{Title: "ID", Width: 10},
	{Title: "Name", Width: 22},
	{Title: "Age", Width: 4},
	{Title: "Salary", Width: 12},
	{Title: "Status", Width: 12},
	{Title: "Liability", Width: 16},
}

// NewEmployeesModel creates a new employees scene model
func NewEmployeesModel() *EmployeesModel {
	t := table.New(
		table.WithColumns(employeeColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(styles)

	return &EmployeesModel{table: t}
}

// SetRows replaces the listed rows
func (m *EmployeesModel) SetRows(rows []domain.ResultRow) {
	m.rows = rows
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		name := row.FirstName
		if row.LastName != "" {
			name += " " + row.LastName
		}
		liability := row.LiabilityText
		if row.Liability != nil {
			liability = tuistyles.FormatAmount(*row.Liability)
		}
		tableRows[i] = table.Row{row.EmployeeID, name, row.AgeText(), row.Salary, string(row.Status), liability}
	}
	m.table.SetRows(tableRows)
	m.table.SetCursor(0)
}

// SetSize updates the scene dimensions
func (m *EmployeesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// summary cards and chrome take the rest
	m.table.SetHeight(max(3, height-10))
}

// Cursor returns the index of the highlighted employee
func (m *EmployeesModel) Cursor() int {
	return m.table.Cursor()
}

// Update handles messages for the employees scene
func (m *EmployeesModel) Update(msg tea.Msg) (*EmployeesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, key.NewBinding(key.WithKeys("enter"))) {
		if len(m.rows) == 0 {
			return m, nil
		}
		index := m.table.Cursor()
		return m, func() tea.Msg { return tuimsg.BreakdownRequestedMsg{Index: index} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the summary cards above the table
func (m *EmployeesModel) View() string {
	if len(m.rows) == 0 {
		return tuistyles.BorderStyle.Render("No employees loaded")
	}

	total := decimal.Zero
	invalid := 0
	for _, row := range m.rows {
		if row.Status == domain.StatusInvalid {
			invalid++
			continue
		}
		if row.Liability != nil {
			total = total.Add(*row.Liability)
		}
	}

	invalidCard := components.NewMetricCard("Invalid", strconv.Itoa(invalid))
	if invalid > 0 {
		invalidCard.Warn()
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Employees", strconv.Itoa(len(m.rows))),
		invalidCard,
		components.NewMetricCard("Total liability", tuistyles.FormatAmount(total)).WithWidth(28),
	}

	hint := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d/%d  enter: breakdown", m.table.Cursor()+1, len(m.rows)))
	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, len(cards)),
		m.table.View(),
		hint,
	)
}
