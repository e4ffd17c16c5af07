package tui

import (
	"github.com/OrHava/economy-project/internal/tui/tuimsg"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.employeesModel.SetSize(msg.Width, msg.Height)
		m.breakdownModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case DataLoadedMsg:
		m.data = msg.Data
		m.rows = msg.Rows
		m.loading = false
		m.employeesModel.SetRows(msg.Rows)
		m.employeesModel.SetSize(m.width, m.height)
		return m, nil

	case tuimsg.BreakdownRequestedMsg:
		m.loading = true
		m.loadingMessage = "Calculating breakdown..."
		return m, breakdownCmd(m.data, msg.Index)

	case BreakdownReadyMsg:
		m.loading = false
		m.breakdownModel.SetBreakdown(msg.Record, msg.Result)
		m.breakdownModel.SetSize(m.width, m.height)
		m.previousScene = m.currentScene
		m.currentScene = SceneBreakdown
		return m, nil

	case tuimsg.BackMsg:
		return m.back(), nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		// any key dismisses the error
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			m.previousScene = m.currentScene
			m.currentScene = SceneHelp
		}
		return m, nil

	case "esc":
		return m.back(), nil
	}

	return m.updateCurrentScene(msg)
}

// back leaves the breakdown or help scene
func (m Model) back() Model {
	switch m.currentScene {
	case SceneBreakdown:
		m.currentScene = SceneEmployees
	case SceneHelp:
		m.currentScene = m.previousScene
		if m.currentScene == SceneHelp {
			m.currentScene = SceneEmployees
		}
	}
	return m
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneEmployees:
		m.employeesModel, cmd = m.employeesModel.Update(msg)
	case SceneBreakdown:
		m.breakdownModel, cmd = m.breakdownModel.Update(msg)
	}
	return m, cmd
}
