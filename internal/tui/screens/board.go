package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"talentflow/internal/models"
	"talentflow/internal/optimistic"
	"talentflow/internal/query"
	"talentflow/internal/transport"
)

// boardColumns groups a job's candidates by stage, one column per stage in
// pipeline order.
type boardColumns map[models.Stage][]models.Candidate

type Board struct {
	client *transport.Client
	jobID  string
	job    *models.Job
	width  int
	height int

	// columns is the board state; stage moves go through it optimistically.
	columns *optimistic.Controller[boardColumns]

	stageIdx int
	cursor   int
	loading  bool
	err      error
	message  string
}

func NewBoard(client *transport.Client) *Board {
	return &Board{
		client:  client,
		columns: optimistic.New(boardColumns{}, nil),
	}
}

func (b *Board) SetJob(jobID string) {
	b.jobID = jobID
}

func (b *Board) SetSize(width, height int) {
	b.width = width
	b.height = height
}

type boardDataMsg struct {
	job        *models.Job
	candidates []models.Candidate
	err        error
}

type candidateMovedMsg struct {
	err error
}

type boardSnapshotMsg struct {
	snapshot boardColumns
	cause    error
	fetchErr error
}

func (b *Board) Init() tea.Cmd {
	b.loading = true
	b.stageIdx = 0
	b.cursor = 0
	b.message = ""
	return b.loadData()
}

func (b *Board) loadData() tea.Cmd {
	jobID := b.jobID
	return func() tea.Msg {
		ctx := context.Background()
		job, err := b.client.GetJob(ctx, jobID)
		if err != nil {
			return boardDataMsg{err: err}
		}
		candidates, err := b.fetchAll(ctx, jobID)
		return boardDataMsg{job: job, candidates: candidates, err: err}
	}
}

// fetchAll pages through every candidate attached to the job.
func (b *Board) fetchAll(ctx context.Context, jobID string) ([]models.Candidate, error) {
	var all []models.Candidate
	for page := 1; ; page++ {
		result, err := b.client.ListCandidates(ctx, query.CandidateFilter{JobID: jobID}, query.Page{Page: page, PageSize: 200})
		if err != nil {
			return nil, err
		}
		all = append(all, result.Data...)
		if len(all) >= result.Pagination.Total || len(result.Data) == 0 {
			return all, nil
		}
	}
}

func groupByStage(candidates []models.Candidate) boardColumns {
	columns := boardColumns{}
	for _, stage := range models.Stages() {
		columns[stage] = nil
	}
	for _, c := range candidates {
		columns[c.Stage] = append(columns[c.Stage], c)
	}
	return columns
}

func cloneColumns(columns boardColumns) boardColumns {
	out := make(boardColumns, len(columns))
	for stage, list := range columns {
		copied := make([]models.Candidate, len(list))
		copy(copied, list)
		out[stage] = copied
	}
	return out
}

func (b *Board) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case boardDataMsg:
		b.loading = false
		b.err = msg.err
		if msg.err == nil {
			b.job = msg.job
			b.columns.Reset(groupByStage(msg.candidates))
			b.clampCursor()
		}
		return nil

	case candidateMovedMsg:
		if msg.err == nil {
			b.columns.Commit(b.columns.View())
			return nil
		}
		return b.fetchSnapshot(msg.err)

	case boardSnapshotMsg:
		b.columns.Rollback(msg.snapshot, msg.cause)
		b.err = msg.cause
		if msg.fetchErr != nil {
			b.err = msg.fetchErr
		}
		b.clampCursor()
		return nil

	case RefreshMsg:
		return b.Init()

	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return nil
}

func (b *Board) handleKey(msg tea.KeyMsg) tea.Cmd {
	stages := models.Stages()
	switch msg.String() {
	case "left", "h":
		if b.stageIdx > 0 {
			b.stageIdx--
			b.clampCursor()
		}
	case "right", "l":
		if b.stageIdx < len(stages)-1 {
			b.stageIdx++
			b.clampCursor()
		}
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		column := b.columns.View()[stages[b.stageIdx]]
		if b.cursor < len(column)-1 {
			b.cursor++
		}
	case "H", "shift+left":
		return b.moveCandidate(-1)
	case "L", "shift+right":
		return b.moveCandidate(1)
	case "enter":
		column := b.columns.View()[stages[b.stageIdx]]
		if b.cursor < len(column) {
			return NavigateWithCandidate("candidates", column[b.cursor].ID)
		}
	case "R":
		return b.Init()
	case "q", "esc":
		return Navigate("jobs")
	}
	return nil
}

// moveCandidate shifts the selected candidate one stage left or right,
// updating the board immediately and persisting behind it.
func (b *Board) moveCandidate(delta int) tea.Cmd {
	stages := models.Stages()
	fromStage := stages[b.stageIdx]
	toIdx := b.stageIdx + delta
	if toIdx < 0 || toIdx >= len(stages) {
		return nil
	}
	toStage := stages[toIdx]

	columns := b.columns.View()
	column := columns[fromStage]
	if b.cursor >= len(column) {
		return nil
	}
	if b.columns.Busy() {
		b.message = "A move is still in flight"
		return nil
	}

	moving := column[b.cursor]

	tentative := cloneColumns(columns)
	origin := tentative[fromStage]
	tentative[fromStage] = append(origin[:b.cursor:b.cursor], origin[b.cursor+1:]...)
	moved := moving
	moved.Stage = toStage
	tentative[toStage] = append([]models.Candidate{moved}, tentative[toStage]...)

	if err := b.columns.Apply(tentative); err != nil {
		b.message = err.Error()
		return nil
	}
	b.stageIdx = toIdx
	b.cursor = 0
	b.message = ""

	return func() tea.Msg {
		_, err := b.client.UpdateCandidate(context.Background(), moving.ID, transport.UpdateCandidateInput{Stage: &toStage})
		return candidateMovedMsg{err: err}
	}
}

func (b *Board) fetchSnapshot(cause error) tea.Cmd {
	jobID := b.jobID
	return func() tea.Msg {
		candidates, err := b.fetchAll(context.Background(), jobID)
		return boardSnapshotMsg{snapshot: groupByStage(candidates), cause: cause, fetchErr: err}
	}
}

func (b *Board) clampCursor() {
	column := b.columns.View()[models.Stages()[b.stageIdx]]
	if b.cursor >= len(column) {
		b.cursor = max(0, len(column)-1)
	}
}

func (b *Board) View() string {
	var sb strings.Builder

	title := "BOARD"
	if b.job != nil {
		title = fmt.Sprintf("BOARD - %s", b.job.Title)
	}
	sb.WriteString(TitleStyle.Render(title))
	sb.WriteString("\n\n")

	if b.loading {
		sb.WriteString("Loading...\n")
		return sb.String()
	}

	if b.err != nil {
		sb.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", b.err)))
		sb.WriteString("\n\n")
	}
	if b.message != "" {
		sb.WriteString(WarningStyle.Render(b.message))
		sb.WriteString("\n\n")
	}

	columns := b.columns.View()
	rendered := make([]string, 0, len(models.Stages()))
	for i, stage := range models.Stages() {
		var col strings.Builder
		header := fmt.Sprintf("%s (%d)", stage.Label(), len(columns[stage]))
		if i == b.stageIdx {
			col.WriteString(SubtitleStyle.Render(header))
		} else {
			col.WriteString(DimStyle.Render(header))
		}
		col.WriteString("\n")

		shown := columns[stage]
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for ci, c := range shown {
			line := truncate(c.Name, 18)
			if i == b.stageIdx && ci == b.cursor {
				col.WriteString(SelectedStyle.Render("> " + line))
			} else {
				col.WriteString(NormalStyle.Render("  " + line))
			}
			col.WriteString("\n")
		}
		if extra := len(columns[stage]) - len(shown); extra > 0 {
			col.WriteString(DimStyle.Render(fmt.Sprintf("  +%d more", extra)))
			col.WriteString("\n")
		}
		rendered = append(rendered, ColumnStyle.Render(col.String()))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	sb.WriteString("\n")

	if b.columns.Busy() {
		sb.WriteString(PendingStyle.Render("Saving move..."))
		sb.WriteString("\n")
	}

	sb.WriteString(HelpStyle.Render("[h/l] Column  [j/k] Candidate  [H/L] Move stage  [enter] Profile  [R] Reload  [q] Back"))
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
