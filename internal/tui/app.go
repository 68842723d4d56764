package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"talentflow/internal/config"
	"talentflow/internal/transport"
	"talentflow/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenJobs
	ScreenBoard
	ScreenCandidates
	ScreenAssessments
)

type App struct {
	client        *transport.Client
	cfg           *config.Config
	currentScreen Screen
	width         int
	height        int

	// Screen models
	dashboard   *screens.Dashboard
	jobs        *screens.Jobs
	board       *screens.Board
	candidates  *screens.Candidates
	assessments *screens.Assessments
}

func NewApp(client *transport.Client, cfg *config.Config) *App {
	return &App{
		client:        client,
		cfg:           cfg,
		currentScreen: ScreenDashboard,
	}
}

func (a *App) Init() tea.Cmd {
	a.dashboard = screens.NewDashboard(a.client)
	a.jobs = screens.NewJobs(a.client, a.cfg.JobPageSize)
	a.board = screens.NewBoard(a.client)
	a.candidates = screens.NewCandidates(a.client, a.cfg.CandidatePageSize)
	a.assessments = screens.NewAssessments(a.client)

	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.jobs.SetSize(msg.Width, msg.Height)
		a.board.SetSize(msg.Width, msg.Height)
		a.candidates.SetSize(msg.Width, msg.Height)
		a.assessments.SetSize(msg.Width, msg.Height)

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenDashboard:
		cmd = a.dashboard.Update(msg)
	case ScreenJobs:
		cmd = a.jobs.Update(msg)
	case ScreenBoard:
		cmd = a.board.Update(msg)
	case ScreenCandidates:
		cmd = a.candidates.Update(msg)
	case ScreenAssessments:
		cmd = a.assessments.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case "dashboard":
		a.currentScreen = ScreenDashboard
		return a, a.dashboard.Init()
	case "jobs":
		a.currentScreen = ScreenJobs
		return a, a.jobs.Init()
	case "board":
		a.currentScreen = ScreenBoard
		a.board.SetJob(msg.JobID)
		return a, a.board.Init()
	case "candidates":
		a.currentScreen = ScreenCandidates
		a.candidates.OpenProfile(msg.CandidateID)
		return a, a.candidates.Init()
	case "assessments":
		a.currentScreen = ScreenAssessments
		a.assessments.SetJob(msg.JobID)
		return a, a.assessments.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenJobs:
		content = a.jobs.View()
	case ScreenBoard:
		content = a.board.View()
	case ScreenCandidates:
		content = a.candidates.View()
	case ScreenAssessments:
		content = a.assessments.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(client *transport.Client, cfg *config.Config) error {
	app := NewApp(client, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
