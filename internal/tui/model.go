package tui

import (
	"context"
	"fmt"

	"github.com/OrHava/economy-project/internal/calculation"
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/internal/tui/scenes"
	tea "github.com/charmbracelet/bubbletea"
)

// Data is what the TUI browses: an engine and the employees to run through it
type Data struct {
	Source  string
	Engine  *calculation.Engine
	Records []domain.EmployeeRecord
}

// Loader loads the batch. It runs inside a tea.Cmd, off the update loop.
type Loader func() (*Data, error)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	load Loader
	data *Data
	rows []domain.ResultRow

	employeesModel *scenes.EmployeesModel
	breakdownModel *scenes.BreakdownModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(load Loader) Model {
	return Model{
		currentScene:   SceneEmployees,
		load:           load,
		employeesModel: scenes.NewEmployeesModel(),
		breakdownModel: scenes.NewBreakdownModel(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Calculating liabilities...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadDataCmd(m.load)
}

// loadDataCmd loads the batch and calculates every employee
func loadDataCmd(load Loader) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return ErrorMsg{Err: fmt.Errorf("no data source configured")}
		}
		data, err := load()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		rows, err := data.Engine.CalculateBatch(context.Background(), data.Records)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DataLoadedMsg{Data: data, Rows: rows}
	}
}

// breakdownCmd computes one employee's breakdown on demand
func breakdownCmd(data *Data, index int) tea.Cmd {
	return func() tea.Msg {
		if data == nil || index < 0 || index >= len(data.Records) {
			return ErrorMsg{Err: fmt.Errorf("no employee at row %d", index+1)}
		}
		rec := &data.Records[index]
		return BreakdownReadyMsg{Index: index, Record: rec, Result: data.Engine.Breakdown(rec)}
	}
}
