package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"talentflow/internal/models"
	"talentflow/internal/optimistic"
	"talentflow/internal/query"
	"talentflow/internal/transport"
)

type candidatesMode int

const (
	candidatesModeList candidatesMode = iota
	candidatesModeSearch
	candidatesModeStage
	candidatesModeProfile
	candidatesModeNote
)

type Candidates struct {
	client   *transport.Client
	pageSize int
	width    int
	height   int

	page        int
	search      string
	stageFilter models.Stage
	pagination  query.Pagination

	candidates []models.Candidate
	guard      optimistic.ReadGuard

	cursor  int
	mode    candidatesMode
	input   textinput.Model
	loading bool
	err     error
	message string

	// profile state
	profileID string
	profile   *models.Candidate
	timeline  []models.TimelineEvent
	notes     []models.Note
}

func NewCandidates(client *transport.Client, pageSize int) *Candidates {
	ti := textinput.New()
	ti.CharLimit = 300
	ti.Width = 60

	return &Candidates{
		client:   client,
		pageSize: pageSize,
		page:     1,
		input:    ti,
	}
}

func (c *Candidates) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// OpenProfile makes the next Init land on the given candidate's profile.
func (c *Candidates) OpenProfile(candidateID string) {
	c.profileID = candidateID
}

type candidatesDataMsg struct {
	ticket uint64
	result query.Result[models.Candidate]
	err    error
}

type profileDataMsg struct {
	candidate *models.Candidate
	timeline  []models.TimelineEvent
	notes     []models.Note
	err       error
}

type noteAddedMsg struct {
	err error
}

func (c *Candidates) Init() tea.Cmd {
	c.loading = true
	c.message = ""
	if c.profileID != "" {
		c.mode = candidatesModeProfile
		return c.loadProfile(c.profileID)
	}
	c.mode = candidatesModeList
	return c.loadData()
}

func (c *Candidates) loadData() tea.Cmd {
	ticket := c.guard.Begin()
	filter := query.CandidateFilter{Search: c.search, Stage: c.stageFilter}
	page := query.Page{Page: c.page, PageSize: c.pageSize}
	return func() tea.Msg {
		result, err := c.client.ListCandidates(context.Background(), filter, page)
		return candidatesDataMsg{ticket: ticket, result: result, err: err}
	}
}

func (c *Candidates) loadProfile(candidateID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		candidate, err := c.client.GetCandidate(ctx, candidateID)
		if err != nil {
			return profileDataMsg{err: err}
		}
		timeline, err := c.client.CandidateTimeline(ctx, candidateID)
		if err != nil {
			return profileDataMsg{err: err}
		}
		notes, err := c.client.CandidateNotes(ctx, candidateID)
		return profileDataMsg{candidate: candidate, timeline: timeline, notes: notes, err: err}
	}
}

func (c *Candidates) Update(msg tea.Msg) tea.Cmd {
	if c.mode == candidatesModeSearch || c.mode == candidatesModeNote {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return c.handleInputKey()
			case "esc":
				if c.mode == candidatesModeNote {
					c.mode = candidatesModeProfile
				} else {
					c.mode = candidatesModeList
				}
				c.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		if c.mode == candidatesModeSearch && c.search != c.input.Value() {
			c.search = c.input.Value()
			c.page = 1
			return tea.Batch(cmd, c.loadData())
		}
		return cmd
	}

	switch msg := msg.(type) {
	case candidatesDataMsg:
		// Older searches resolve out of order; only the latest wins.
		if !c.guard.Current(msg.ticket) {
			return nil
		}
		c.loading = false
		c.err = msg.err
		if msg.err == nil {
			c.pagination = msg.result.Pagination
			c.candidates = msg.result.Data
			if c.cursor >= len(c.candidates) {
				c.cursor = max(0, len(c.candidates)-1)
			}
		}
		return nil

	case profileDataMsg:
		c.loading = false
		c.err = msg.err
		if msg.err == nil {
			c.profile = msg.candidate
			c.timeline = msg.timeline
			c.notes = msg.notes
		}
		return nil

	case noteAddedMsg:
		if msg.err != nil {
			c.err = msg.err
			return nil
		}
		c.message = "Note added"
		return c.loadProfile(c.profileID)

	case RefreshMsg:
		return c.Init()

	case tea.KeyMsg:
		return c.handleKey(msg)
	}
	return nil
}

func (c *Candidates) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch c.mode {
	case candidatesModeList:
		return c.handleListKey(msg)
	case candidatesModeStage:
		return c.handleStageKey(msg)
	case candidatesModeProfile:
		return c.handleProfileKey(msg)
	}
	return nil
}

func (c *Candidates) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.candidates)-1 {
			c.cursor++
		}
	case "left", "[":
		if c.page > 1 {
			c.page--
			return c.loadData()
		}
	case "right", "]":
		if c.page*c.pageSize < c.pagination.Total {
			c.page++
			return c.loadData()
		}
	case "/":
		c.mode = candidatesModeSearch
		c.input.Placeholder = "Search name or email"
		c.input.SetValue(c.search)
		c.input.Focus()
	case "f":
		c.mode = candidatesModeStage
	case "enter":
		if c.cursor < len(c.candidates) {
			c.profileID = c.candidates[c.cursor].ID
			c.mode = candidatesModeProfile
			c.loading = true
			return c.loadProfile(c.profileID)
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	return nil
}

func (c *Candidates) handleStageKey(msg tea.KeyMsg) tea.Cmd {
	stages := models.Stages()
	key := msg.String()
	if key == "0" || key == "esc" {
		c.stageFilter = ""
		c.mode = candidatesModeList
		c.page = 1
		return c.loadData()
	}
	for i, stage := range stages {
		if key == fmt.Sprintf("%d", i+1) {
			c.stageFilter = stage
			c.mode = candidatesModeList
			c.page = 1
			return c.loadData()
		}
	}
	return nil
}

func (c *Candidates) handleProfileKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "n":
		c.mode = candidatesModeNote
		c.input.Placeholder = "Note (@mention teammates)"
		c.input.SetValue("")
		c.input.Focus()
	case "b":
		if c.profile != nil && c.profile.JobID != "" {
			return NavigateWithJob("board", c.profile.JobID)
		}
	case "q", "esc":
		c.profileID = ""
		c.profile = nil
		c.mode = candidatesModeList
		c.loading = true
		return c.loadData()
	}
	return nil
}

func (c *Candidates) handleInputKey() tea.Cmd {
	value := strings.TrimSpace(c.input.Value())
	mode := c.mode
	c.input.Blur()

	switch mode {
	case candidatesModeSearch:
		c.mode = candidatesModeList
		return nil
	case candidatesModeNote:
		c.mode = candidatesModeProfile
		if value == "" {
			return nil
		}
		candidateID := c.profileID
		return func() tea.Msg {
			_, err := c.client.AddCandidateNote(context.Background(), candidateID, "you", value)
			return noteAddedMsg{err: err}
		}
	}
	return nil
}

func (c *Candidates) View() string {
	switch c.mode {
	case candidatesModeProfile, candidatesModeNote:
		return c.viewProfile()
	default:
		return c.viewList()
	}
}

func (c *Candidates) viewList() string {
	var b strings.Builder

	title := "CANDIDATES"
	if c.stageFilter != "" {
		title = fmt.Sprintf("CANDIDATES - %s", c.stageFilter.Label())
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if c.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}
	if c.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", c.err)))
		b.WriteString("\n\n")
	}

	if c.mode == candidatesModeSearch {
		b.WriteString("Search candidates:\n")
		b.WriteString(c.input.View())
		b.WriteString("\n\n")
	}

	if c.mode == candidatesModeStage {
		b.WriteString("Filter by stage:\n")
		for i, stage := range models.Stages() {
			b.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, stage.Label()))
		}
		b.WriteString("  [0] All\n")
		return b.String()
	}

	if len(c.candidates) == 0 {
		b.WriteString(DimStyle.Render("No candidates match."))
		b.WriteString("\n")
	} else {
		for i, cand := range c.candidates {
			cursor := "  "
			style := NormalStyle
			if i == c.cursor {
				cursor = "> "
				style = SelectedStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("%s%-24s", cursor, truncate(cand.Name, 24))))
			b.WriteString(DimStyle.Render(fmt.Sprintf("  %-10s  %s", cand.Stage.Label(), cand.Email)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(fmt.Sprintf("Page %d - %d total", c.pagination.Page, c.pagination.Total)))
		b.WriteString("\n")
	}

	if c.mode == candidatesModeSearch {
		b.WriteString(HelpStyle.Render("[enter] Done  [esc] Cancel"))
	} else {
		b.WriteString(HelpStyle.Render("[/] Search  [f] Stage filter  [enter] Profile  [q] Back"))
	}
	return b.String()
}

func (c *Candidates) viewProfile() string {
	var b strings.Builder

	if c.loading || c.profile == nil {
		b.WriteString(TitleStyle.Render("CANDIDATE"))
		b.WriteString("\n\nLoading...\n")
		return b.String()
	}

	b.WriteString(TitleStyle.Render(c.profile.Name))
	b.WriteString("\n\n")

	if c.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", c.err)))
		b.WriteString("\n\n")
	}
	if c.message != "" {
		b.WriteString(SuccessStyle.Render(c.message))
		b.WriteString("\n\n")
	}

	b.WriteString(NormalStyle.Render(fmt.Sprintf("Email: %s", c.profile.Email)))
	b.WriteString("\n")
	if c.profile.Phone != "" {
		b.WriteString(NormalStyle.Render(fmt.Sprintf("Phone: %s", c.profile.Phone)))
		b.WriteString("\n")
	}
	b.WriteString(NormalStyle.Render(fmt.Sprintf("Stage: %s", c.profile.Stage.Label())))
	b.WriteString("\n\n")

	b.WriteString(SubtitleStyle.Render("Timeline"))
	b.WriteString("\n")
	if len(c.timeline) == 0 {
		b.WriteString(DimStyle.Render("  No events."))
		b.WriteString("\n")
	}
	for _, ev := range c.timeline {
		b.WriteString(fmt.Sprintf("  %s  %s\n", DimStyle.Render(ev.ChangedAt.Format("2006-01-02 15:04")), ev.Note))
	}
	b.WriteString("\n")

	b.WriteString(SubtitleStyle.Render("Notes"))
	b.WriteString("\n")
	if len(c.notes) == 0 {
		b.WriteString(DimStyle.Render("  No notes yet."))
		b.WriteString("\n")
	}
	for _, note := range c.notes {
		b.WriteString(fmt.Sprintf("  %s %s\n", SuccessStyle.Render(note.Author+":"), renderMentions(note.Content)))
	}
	b.WriteString("\n")

	if c.mode == candidatesModeNote {
		b.WriteString("New note:\n")
		b.WriteString(c.input.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[enter] Save  [esc] Cancel"))
	} else {
		b.WriteString(HelpStyle.Render("[n] Add note  [b] Board  [q] Back"))
	}
	return b.String()
}

// renderMentions highlights @name tokens inside a note.
func renderMentions(content string) string {
	words := strings.Fields(content)
	for i, w := range words {
		if strings.HasPrefix(w, "@") && len(w) > 1 {
			words[i] = WarningStyle.Render(w)
		}
	}
	return strings.Join(words, " ")
}
