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

type jobsMode int

const (
	jobsModeList jobsMode = iota
	jobsModeSearch
	jobsModeTags
	jobsModeAdd
	jobsModeEdit
	jobsModeArchive
	jobsModeReorder
)

type Jobs struct {
	client   *transport.Client
	pageSize int
	width    int
	height   int

	page         int
	search       string
	statusFilter models.JobStatus
	tagFilter    []string
	pagination   query.Pagination

	// list holds the rendered job page; reorder gestures mutate it
	// optimistically and settle through commit/rollback.
	list  *optimistic.Controller[[]models.Job]
	guard optimistic.ReadGuard

	cursor  int
	mode    jobsMode
	input   textinput.Model
	loading bool
	err     error
	message string
}

func NewJobs(client *transport.Client, pageSize int) *Jobs {
	ti := textinput.New()
	ti.Placeholder = "Job title"
	ti.CharLimit = 120
	ti.Width = 40

	return &Jobs{
		client:   client,
		pageSize: pageSize,
		page:     1,
		list:     optimistic.New([]models.Job(nil), nil),
		input:    ti,
	}
}

func (j *Jobs) SetSize(width, height int) {
	j.width = width
	j.height = height
}

type jobsDataMsg struct {
	ticket uint64
	result query.Result[models.Job]
	err    error
}

type jobSavedMsg struct {
	verb string
	job  *models.Job
	err  error
}

type jobReorderedMsg struct {
	err error
}

// jobsSnapshotMsg carries the authoritative page fetched for a rollback.
type jobsSnapshotMsg struct {
	snapshot []models.Job
	cause    error
	fetchErr error
}

func (j *Jobs) Init() tea.Cmd {
	j.loading = true
	j.mode = jobsModeList
	j.message = ""
	return j.loadData()
}

func (j *Jobs) filter() query.JobFilter {
	return query.JobFilter{Search: j.search, Status: j.statusFilter, Tags: j.tagFilter, Sort: query.SortByOrder}
}

func (j *Jobs) loadData() tea.Cmd {
	ticket := j.guard.Begin()
	filter := j.filter()
	page := query.Page{Page: j.page, PageSize: j.pageSize}
	return func() tea.Msg {
		result, err := j.client.ListJobs(context.Background(), filter, page)
		return jobsDataMsg{ticket: ticket, result: result, err: err}
	}
}

func (j *Jobs) Update(msg tea.Msg) tea.Cmd {
	if j.mode == jobsModeSearch || j.mode == jobsModeTags || j.mode == jobsModeAdd || j.mode == jobsModeEdit {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return j.handleInputKey()
			case "esc":
				j.mode = jobsModeList
				j.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		j.input, cmd = j.input.Update(msg)
		if j.mode == jobsModeSearch && j.search != j.input.Value() {
			j.search = j.input.Value()
			j.page = 1
			return tea.Batch(cmd, j.loadData())
		}
		return cmd
	}

	switch msg := msg.(type) {
	case jobsDataMsg:
		// A newer fetch supersedes this one; drop it.
		if !j.guard.Current(msg.ticket) {
			return nil
		}
		j.loading = false
		j.err = msg.err
		if msg.err == nil {
			j.pagination = msg.result.Pagination
			j.list.Reset(msg.result.Data)
			if j.cursor >= len(msg.result.Data) {
				j.cursor = max(0, len(msg.result.Data)-1)
			}
		}
		return nil

	case jobSavedMsg:
		if msg.err != nil {
			j.err = msg.err
			return nil
		}
		j.err = nil
		j.message = fmt.Sprintf("%s: %s", msg.verb, msg.job.Title)
		return j.loadData()

	case jobReorderedMsg:
		if msg.err == nil {
			j.list.Commit(j.list.View())
			return j.loadData()
		}
		return j.fetchSnapshot(msg.err)

	case jobsSnapshotMsg:
		j.list.Rollback(msg.snapshot, msg.cause)
		j.err = msg.cause
		if msg.fetchErr != nil {
			j.err = msg.fetchErr
		}
		return nil

	case RefreshMsg:
		return j.Init()

	case tea.KeyMsg:
		return j.handleKey(msg)
	}

	return nil
}

func (j *Jobs) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch j.mode {
	case jobsModeList:
		return j.handleListKey(msg)
	case jobsModeArchive:
		return j.handleArchiveKey(msg)
	case jobsModeReorder:
		return j.handleReorderKey(msg)
	}
	return nil
}

func (j *Jobs) handleListKey(msg tea.KeyMsg) tea.Cmd {
	jobs := j.list.View()
	switch msg.String() {
	case "up", "k":
		if j.cursor > 0 {
			j.cursor--
		}
	case "down", "j":
		if j.cursor < len(jobs)-1 {
			j.cursor++
		}
	case "left", "[":
		if j.page > 1 {
			j.page--
			return j.loadData()
		}
	case "right", "]":
		if j.page*j.pageSize < j.pagination.Total {
			j.page++
			return j.loadData()
		}
	case "/":
		j.mode = jobsModeSearch
		j.input.Placeholder = "Search title or slug"
		j.input.SetValue(j.search)
		j.input.Focus()
	case "f":
		switch j.statusFilter {
		case "":
			j.statusFilter = models.JobActive
		case models.JobActive:
			j.statusFilter = models.JobArchived
		default:
			j.statusFilter = ""
		}
		j.page = 1
		return j.loadData()
	case "t":
		j.mode = jobsModeTags
		j.input.Placeholder = "Tags, comma separated"
		j.input.SetValue(strings.Join(j.tagFilter, ", "))
		j.input.Focus()
	case "a":
		j.mode = jobsModeAdd
		j.input.Placeholder = "Job title"
		j.input.SetValue("")
		j.input.Focus()
	case "e":
		if len(jobs) > 0 {
			j.mode = jobsModeEdit
			j.input.Placeholder = "Job title"
			j.input.SetValue(jobs[j.cursor].Title)
			j.input.Focus()
		}
	case "x":
		if len(jobs) > 0 {
			j.mode = jobsModeArchive
		}
	case "r":
		if len(jobs) > 1 {
			j.mode = jobsModeReorder
			j.message = ""
		}
	case "s":
		if len(jobs) > 0 {
			return NavigateWithJob("assessments", jobs[j.cursor].ID)
		}
	case "enter":
		if len(jobs) > 0 {
			return NavigateWithJob("board", jobs[j.cursor].ID)
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	return nil
}

func (j *Jobs) handleInputKey() tea.Cmd {
	value := strings.TrimSpace(j.input.Value())
	mode := j.mode
	j.mode = jobsModeList
	j.input.Blur()

	switch mode {
	case jobsModeSearch:
		return nil
	case jobsModeTags:
		j.tagFilter = nil
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				j.tagFilter = append(j.tagFilter, tag)
			}
		}
		j.page = 1
		return j.loadData()
	case jobsModeAdd:
		if value == "" {
			return nil
		}
		return func() tea.Msg {
			job, err := j.client.CreateJob(context.Background(), transport.CreateJobInput{Title: value})
			return jobSavedMsg{verb: "Created job", job: job, err: err}
		}
	case jobsModeEdit:
		if value == "" {
			return nil
		}
		jobs := j.list.View()
		if len(jobs) == 0 {
			return nil
		}
		jobID := jobs[j.cursor].ID
		return func() tea.Msg {
			job, err := j.client.UpdateJob(context.Background(), jobID, transport.UpdateJobInput{Title: &value})
			return jobSavedMsg{verb: "Updated job", job: job, err: err}
		}
	}
	return nil
}

func (j *Jobs) handleArchiveKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		j.mode = jobsModeList
		jobs := j.list.View()
		if len(jobs) == 0 {
			return nil
		}
		jobID := jobs[j.cursor].ID
		return func() tea.Msg {
			job, err := j.client.ToggleArchiveJob(context.Background(), jobID)
			return jobSavedMsg{verb: "Toggled", job: job, err: err}
		}
	case "n", "N", "esc":
		j.mode = jobsModeList
	}
	return nil
}

// handleReorderKey applies the move to the rendered list immediately and
// issues the durable reorder. The gesture is disabled while a previous
// move is still pending.
func (j *Jobs) handleReorderKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "shift+up", "K":
		return j.moveJob(-1)
	case "shift+down", "J":
		return j.moveJob(1)
	case "up", "k":
		if j.cursor > 0 {
			j.cursor--
		}
	case "down", "j":
		if j.cursor < len(j.list.View())-1 {
			j.cursor++
		}
	case "q", "esc", "r":
		j.mode = jobsModeList
	}
	return nil
}

func (j *Jobs) moveJob(delta int) tea.Cmd {
	jobs := j.list.View()
	from := j.cursor
	to := from + delta
	if from < 0 || from >= len(jobs) || to < 0 || to >= len(jobs) {
		return nil
	}
	if j.list.Busy() {
		j.message = "A move is still in flight"
		return nil
	}

	moving := jobs[from]
	fromOrder := moving.Order
	toOrder := jobs[to].Order

	tentative := make([]models.Job, len(jobs))
	copy(tentative, jobs)
	tentative[from], tentative[to] = tentative[to], tentative[from]

	if err := j.list.Apply(tentative); err != nil {
		j.message = err.Error()
		return nil
	}
	j.cursor = to
	j.message = ""

	return func() tea.Msg {
		err := j.client.ReorderJob(context.Background(), moving.ID, fromOrder, toOrder)
		return jobReorderedMsg{err: err}
	}
}

// fetchSnapshot loads the authoritative page so the rollback replaces the
// tentative list instead of negating it.
func (j *Jobs) fetchSnapshot(cause error) tea.Cmd {
	filter := j.filter()
	page := query.Page{Page: j.page, PageSize: j.pageSize}
	return func() tea.Msg {
		result, err := j.client.ListJobs(context.Background(), filter, page)
		return jobsSnapshotMsg{snapshot: result.Data, cause: cause, fetchErr: err}
	}
}

func (j *Jobs) View() string {
	var b strings.Builder

	title := "JOBS"
	if j.statusFilter != "" {
		title = fmt.Sprintf("JOBS - %s", j.statusFilter)
	}
	if len(j.tagFilter) > 0 {
		title += " [" + strings.Join(j.tagFilter, ", ") + "]"
	}
	if j.mode == jobsModeReorder {
		title += "  (reorder)"
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if j.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if j.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", j.err)))
		b.WriteString("\n\n")
	}

	if j.message != "" {
		b.WriteString(SuccessStyle.Render(j.message))
		b.WriteString("\n\n")
	}

	if j.mode == jobsModeSearch || j.mode == jobsModeTags || j.mode == jobsModeAdd || j.mode == jobsModeEdit {
		switch j.mode {
		case jobsModeSearch:
			b.WriteString("Search jobs:\n")
		case jobsModeTags:
			b.WriteString("Filter by tags (all must match):\n")
		case jobsModeAdd:
			b.WriteString("New job title:\n")
		case jobsModeEdit:
			b.WriteString("Edit job title:\n")
		}
		b.WriteString(j.input.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("[enter] Save  [esc] Cancel"))
		return b.String()
	}

	jobs := j.list.View()
	if j.mode == jobsModeArchive && len(jobs) > 0 {
		verb := "Archive"
		if jobs[j.cursor].Status == models.JobArchived {
			verb = "Unarchive"
		}
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%s job '%s'? (y/n)", verb, jobs[j.cursor].Title)))
		b.WriteString("\n")
		return b.String()
	}

	if len(jobs) == 0 {
		b.WriteString(DimStyle.Render("No jobs match."))
		b.WriteString("\n\n")
	} else {
		for i, job := range jobs {
			cursor := "  "
			style := NormalStyle
			if i == j.cursor {
				cursor = "> "
				style = SelectedStyle
			}

			status := ""
			if job.Status == models.JobArchived {
				status = DimStyle.Render(" [archived]")
			}
			tags := ""
			if len(job.Tags) > 0 {
				tags = DimStyle.Render(" (" + strings.Join(job.Tags, ", ") + ")")
			}
			b.WriteString(style.Render(fmt.Sprintf("%s%2d. %s", cursor, job.Order+1, job.Title)))
			b.WriteString(status)
			b.WriteString(tags)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(fmt.Sprintf("Page %d - %d total", j.pagination.Page, j.pagination.Total)))
		b.WriteString("\n")
	}

	if j.list.Busy() {
		b.WriteString(PendingStyle.Render("Saving move..."))
		b.WriteString("\n")
	}

	help := "[/] Search  [f] Status  [t] Tags  [a] Add  [e] Edit  [x] Archive  [r] Reorder  [s] Assessment  [enter] Board  [q] Back"
	if j.mode == jobsModeReorder {
		help = "[shift+up/down] Move job  [up/down] Cursor  [esc] Done"
	}
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
