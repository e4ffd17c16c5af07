package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/OrHava/economy-project/internal/calculation"
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/internal/tui/tuimsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testLoader(t *testing.T) Loader {
	t.Helper()
	var entries []actuarial.MortalityEntry
	for age := 40; age <= 80; age++ {
		entries = append(entries, actuarial.MortalityEntry{
			Age: age,
			QX:  decimal.NewFromFloat(0.001).Mul(decimal.NewFromInt(int64(age - 39))),
		})
	}
	mortality, err := actuarial.NewMortalityTable(entries)
	require.NoError(t, err)

	opts := calculation.DefaultOptions(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	opts.Discount = calculation.DiscountFlat
	opts.FlatRate = decimal.NewFromFloat(0.04)
	engine, err := calculation.NewEngine(actuarial.Tables{
		Mortality:   mortality,
		Resignation: actuarial.DefaultResignationTable(),
	}, opts)
	require.NoError(t, err)

	salary := decimal.NewFromInt(10000)
	records := []domain.EmployeeRecord{
		{ID: "1001", FirstName: "Dana", LastName: "Levi", Gender: domain.GenderMale,
			BirthDate: date(1985, time.June, 1), HireDate: date(2015, time.January, 1), Salary: &salary},
		{ID: "1002", FirstName: "Avi", RawSalary: "abc", BirthDate: date(1980, time.March, 3)},
	}

	return func() (*Data, error) {
		return &Data{Source: "staff.xlsx", Engine: engine, Records: records}, nil
	}
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// send applies msg and returns the updated model and the message its command produced.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next := updated.(Model)
	if cmd == nil {
		return next, nil
	}
	return next, cmd()
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel(testLoader(t))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	msg := m.Init()()
	require.IsType(t, DataLoadedMsg{}, msg)
	m, _ = send(t, m, msg)
	return m
}

func TestModel_LoadsAndCalculates(t *testing.T) {
	m := loaded(t)

	assert.False(t, m.loading)
	require.Len(t, m.rows, 2)
	require.NotNil(t, m.rows[0].Liability)
	assert.InDelta(t, 474551.88, m.rows[0].Liability.InexactFloat64(), 0.01)
	assert.Equal(t, domain.StatusInvalid, m.rows[1].Status)
	assert.Nil(t, m.rows[1].Liability)

	view := m.View()
	assert.Contains(t, view, "staff.xlsx")
	assert.Contains(t, view, "474,551.88")
	assert.Contains(t, view, domain.InvalidMarker)
}

func TestModel_EnterOpensBreakdownAndEscReturns(t *testing.T) {
	m := loaded(t)

	m, msg := send(t, m, key("enter"))
	require.Equal(t, tuimsg.BreakdownRequestedMsg{Index: 0}, msg)

	m, msg = send(t, m, msg)
	assert.True(t, m.loading)
	ready, ok := msg.(BreakdownReadyMsg)
	require.True(t, ok)
	assert.Len(t, ready.Result.Steps, 27)

	m, _ = send(t, m, ready)
	assert.Equal(t, SceneBreakdown, m.currentScene)
	assert.Contains(t, m.View(), "Dana Levi (1001)")
	assert.Contains(t, m.View(), "Present value by year")

	m, _ = send(t, m, key("esc"))
	assert.Equal(t, SceneEmployees, m.currentScene)
}

func TestModel_BreakdownOfInvalidEmployee(t *testing.T) {
	m := loaded(t)

	m, _ = send(t, m, key("down"))
	m, msg := send(t, m, key("enter"))
	require.Equal(t, tuimsg.BreakdownRequestedMsg{Index: 1}, msg)

	m, msg = send(t, m, msg)
	m, _ = send(t, m, msg)
	assert.Equal(t, SceneBreakdown, m.currentScene)
	assert.Contains(t, m.View(), domain.InvalidMarker)
}

func TestModel_Help(t *testing.T) {
	m := loaded(t)

	m, _ = send(t, m, key("?"))
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	m, _ = send(t, m, key("esc"))
	assert.Equal(t, SceneEmployees, m.currentScene)
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(func() (*Data, error) { return nil, errors.New("sheet not found") })

	msg := m.Init()()
	require.IsType(t, ErrorMsg{}, msg)

	m, _ = send(t, m, msg)
	assert.Contains(t, m.View(), "sheet not found")

	m, _ = send(t, m, key("x"))
	assert.NoError(t, m.err)
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
