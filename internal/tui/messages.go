package tui

import (
	"github.com/OrHava/economy-project/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneEmployees Scene = iota
	SceneBreakdown
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneEmployees:
		return "Employees"
	case SceneBreakdown:
		return "Breakdown"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// DataLoadedMsg carries the loaded batch and its calculated rows
type DataLoadedMsg struct {
	Data *Data
	Rows []domain.ResultRow
}

// BreakdownReadyMsg carries one employee's breakdown
type BreakdownReadyMsg struct {
	Index  int
	Record *domain.EmployeeRecord
	Result *domain.LiabilityResult
}
