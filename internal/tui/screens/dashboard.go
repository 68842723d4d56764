package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"talentflow/internal/models"
	"talentflow/internal/transport"
)

type Dashboard struct {
	client *transport.Client
	width  int
	height int

	activeJobs   int
	archivedJobs int
	candidates   int
	stageCounts  map[models.Stage]int
	assessments  int
	loading      bool
	err          error
}

func NewDashboard(client *transport.Client) *Dashboard {
	return &Dashboard{
		client:  client,
		loading: true,
	}
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

type dashboardDataMsg struct {
	activeJobs   int
	archivedJobs int
	candidates   int
	stageCounts  map[models.Stage]int
	assessments  int
	err          error
}

func (d *Dashboard) Init() tea.Cmd {
	d.loading = true
	return d.loadData
}

func (d *Dashboard) loadData() tea.Msg {
	ctx := context.Background()
	st := d.client.Store()

	active, err := st.Jobs().CountByStatus(ctx, models.JobActive)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	archived, err := st.Jobs().CountByStatus(ctx, models.JobArchived)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	candidates, err := st.Candidates().Count(ctx)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	stageCounts, err := st.Candidates().CountByStage(ctx)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	assessments, err := st.Assessments().Count(ctx)
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	return dashboardDataMsg{
		activeJobs:   active,
		archivedJobs: archived,
		candidates:   candidates,
		stageCounts:  stageCounts,
		assessments:  assessments,
	}
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		d.err = msg.err
		d.activeJobs = msg.activeJobs
		d.archivedJobs = msg.archivedJobs
		d.candidates = msg.candidates
		d.stageCounts = msg.stageCounts
		d.assessments = msg.assessments
		return nil

	case RefreshMsg:
		return d.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "j":
			return Navigate("jobs")
		case "c":
			return Navigate("candidates")
		}
	}

	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("TALENTFLOW"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Applicant Tracking"))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if d.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", d.err)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Jobs: %d active, %d archived\n", d.activeJobs, d.archivedJobs))
	b.WriteString(fmt.Sprintf("Candidates: %d\n", d.candidates))
	b.WriteString(fmt.Sprintf("Assessments: %d\n\n", d.assessments))

	b.WriteString(SubtitleStyle.Render("Pipeline"))
	b.WriteString("\n")
	for _, stage := range models.Stages() {
		b.WriteString(fmt.Sprintf("  %-10s %d\n", stage.Label(), d.stageCounts[stage]))
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("[j] Jobs  [c] Candidates  [q] Quit"))

	return b.String()
}
