package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"talentflow/internal/assess"
	"talentflow/internal/models"
	"talentflow/internal/transport"
)

type assessMode int

const (
	assessModeList assessMode = iota
	assessModeAnswer
	assessModeChoice
	assessModeSubmit
)

// visibleQuestion pairs a question with the section it belongs to, flattened
// in display order.
type visibleQuestion struct {
	sectionIdx int
	question   models.Question
}

type Assessments struct {
	client *transport.Client
	jobID  string
	width  int
	height int

	assessment *models.Assessment
	answers    models.Answers

	cursor     int
	mode       assessMode
	input      textinput.Model
	selections map[string]bool
	loading    bool
	err        error
	message    string
	fieldErrs  map[string]string
}

func NewAssessments(client *transport.Client) *Assessments {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 50

	return &Assessments{
		client:  client,
		input:   ti,
		answers: models.Answers{},
	}
}

func (a *Assessments) SetJob(jobID string) {
	if jobID != a.jobID {
		a.answers = models.Answers{}
		a.fieldErrs = nil
	}
	a.jobID = jobID
}

func (a *Assessments) SetSize(width, height int) {
	a.width = width
	a.height = height
}

type assessmentDataMsg struct {
	assessment *models.Assessment
	err        error
}

type responseSubmittedMsg struct {
	response *models.Response
	err      error
}

func (a *Assessments) Init() tea.Cmd {
	a.loading = true
	a.mode = assessModeList
	a.cursor = 0
	a.message = ""
	return a.loadData()
}

func (a *Assessments) loadData() tea.Cmd {
	jobID := a.jobID
	return func() tea.Msg {
		assessment, err := a.client.GetAssessment(context.Background(), jobID)
		return assessmentDataMsg{assessment: assessment, err: err}
	}
}

// visible flattens the currently visible questions across all sections,
// re-evaluated against the draft answers on every render.
func (a *Assessments) visible() []visibleQuestion {
	if a.assessment == nil {
		return nil
	}
	var out []visibleQuestion
	for si, section := range a.assessment.Sections {
		for _, q := range assess.Visible(section, a.answers) {
			out = append(out, visibleQuestion{sectionIdx: si, question: q})
		}
	}
	return out
}

func (a *Assessments) Update(msg tea.Msg) tea.Cmd {
	if a.mode == assessModeAnswer || a.mode == assessModeSubmit {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return a.handleInputKey()
			case "esc":
				a.mode = assessModeList
				a.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return cmd
	}

	switch msg := msg.(type) {
	case assessmentDataMsg:
		a.loading = false
		a.err = msg.err
		if msg.err == nil {
			a.assessment = msg.assessment
			if a.cursor >= len(a.visible()) {
				a.cursor = max(0, len(a.visible())-1)
			}
		}
		return nil

	case responseSubmittedMsg:
		if msg.err != nil {
			a.err = msg.err
			var terr *transport.Error
			if errors.As(msg.err, &terr) && len(terr.Fields) > 0 {
				a.fieldErrs = terr.Fields
			}
			return nil
		}
		a.err = nil
		a.answers = models.Answers{}
		a.fieldErrs = nil
		a.message = fmt.Sprintf("Response %s submitted", msg.response.ID)
		return nil

	case RefreshMsg:
		return a.Init()

	case tea.KeyMsg:
		switch a.mode {
		case assessModeList:
			return a.handleListKey(msg)
		case assessModeChoice:
			return a.handleChoiceKey(msg)
		}
	}
	return nil
}

func (a *Assessments) handleListKey(msg tea.KeyMsg) tea.Cmd {
	questions := a.visible()
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(questions)-1 {
			a.cursor++
		}
	case "enter":
		if a.cursor < len(questions) {
			return a.openQuestion(questions[a.cursor].question)
		}
	case "c":
		a.answers = models.Answers{}
		a.fieldErrs = nil
		a.message = "Draft cleared"
	case "s":
		a.mode = assessModeSubmit
		a.input.Placeholder = "Candidate id"
		a.input.SetValue("")
		a.input.Focus()
	case "q", "esc":
		return Navigate("jobs")
	}
	return nil
}

func (a *Assessments) openQuestion(q models.Question) tea.Cmd {
	switch q.Type {
	case models.SingleChoice, models.MultiChoice:
		a.mode = assessModeChoice
		a.selections = map[string]bool{}
		current := a.answers[q.ID]
		if text, ok := current.Text(); ok {
			a.selections[text] = true
		}
		if list, ok := current.Selections(); ok {
			for _, s := range list {
				a.selections[s] = true
			}
		}
	default:
		a.mode = assessModeAnswer
		a.input.Placeholder = "Answer"
		if q.Type == models.FileUpload {
			a.input.Placeholder = "File name"
		}
		a.input.SetValue(a.answers[q.ID].String())
		a.input.Focus()
	}
	return nil
}

func (a *Assessments) handleChoiceKey(msg tea.KeyMsg) tea.Cmd {
	questions := a.visible()
	if a.cursor >= len(questions) {
		a.mode = assessModeList
		return nil
	}
	q := questions[a.cursor].question
	if q.Choice == nil {
		a.mode = assessModeList
		return nil
	}

	key := msg.String()
	switch key {
	case "enter", "esc", "q":
		a.commitChoice(q)
		a.mode = assessModeList
		return nil
	}

	idx, err := strconv.Atoi(key)
	if err != nil || idx < 1 || idx > len(q.Choice.Options) {
		return nil
	}
	option := q.Choice.Options[idx-1]
	if q.Type == models.SingleChoice {
		a.selections = map[string]bool{option: true}
		a.commitChoice(q)
		a.mode = assessModeList
		return nil
	}
	a.selections[option] = !a.selections[option]
	return nil
}

func (a *Assessments) commitChoice(q models.Question) {
	var picked []string
	for _, option := range q.Choice.Options {
		if a.selections[option] {
			picked = append(picked, option)
		}
	}
	switch {
	case len(picked) == 0:
		delete(a.answers, q.ID)
	case q.Type == models.SingleChoice:
		a.answers[q.ID] = models.TextAnswer(picked[0])
	default:
		a.answers[q.ID] = models.SelectionAnswer(picked...)
	}
}

func (a *Assessments) handleInputKey() tea.Cmd {
	value := strings.TrimSpace(a.input.Value())
	mode := a.mode
	a.mode = assessModeList
	a.input.Blur()

	switch mode {
	case assessModeAnswer:
		questions := a.visible()
		if a.cursor >= len(questions) {
			return nil
		}
		q := questions[a.cursor].question
		if value == "" {
			delete(a.answers, q.ID)
			return nil
		}
		if q.Type == models.Numeric {
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				a.answers[q.ID] = models.NumberAnswer(n)
				return nil
			}
		}
		a.answers[q.ID] = models.TextAnswer(value)
		return nil

	case assessModeSubmit:
		if value == "" {
			return nil
		}
		jobID := a.jobID
		answers := make(models.Answers, len(a.answers))
		for k, v := range a.answers {
			answers[k] = v
		}
		return func() tea.Msg {
			response, err := a.client.SubmitAssessment(context.Background(), jobID, value, answers)
			return responseSubmittedMsg{response: response, err: err}
		}
	}
	return nil
}

func (a *Assessments) View() string {
	var b strings.Builder

	title := "ASSESSMENT"
	if a.assessment != nil && len(a.assessment.Sections) > 0 {
		title = fmt.Sprintf("ASSESSMENT - %s", a.assessment.Sections[0].Title)
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if a.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}
	if a.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", a.err)))
		b.WriteString("\n\n")
	}
	if a.message != "" {
		b.WriteString(SuccessStyle.Render(a.message))
		b.WriteString("\n\n")
	}

	if a.mode == assessModeSubmit {
		b.WriteString("Submit for candidate:\n")
		b.WriteString(a.input.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("[enter] Submit  [esc] Cancel"))
		return b.String()
	}

	if a.assessment == nil || len(a.assessment.Sections) == 0 {
		b.WriteString(DimStyle.Render("No questions yet."))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[q] Back"))
		return b.String()
	}

	// Live validation preview over the draft.
	preview := assess.Validate(a.assessment.Sections, a.answers)

	questions := a.visible()
	lastSection := -1
	flatIdx := 0
	for _, vq := range questions {
		if vq.sectionIdx != lastSection {
			lastSection = vq.sectionIdx
			b.WriteString(SubtitleStyle.Render(a.assessment.Sections[vq.sectionIdx].Title))
			b.WriteString("\n")
		}

		q := vq.question
		cursor := "  "
		style := NormalStyle
		if flatIdx == a.cursor {
			cursor = "> "
			style = SelectedStyle
		}

		required := ""
		if q.Required {
			required = WarningStyle.Render(" *")
		}
		b.WriteString(style.Render(cursor + q.Prompt))
		b.WriteString(required)
		b.WriteString("\n")

		if answer := a.answers[q.ID]; !answer.Absent() {
			b.WriteString(DimStyle.Render("      " + truncate(answer.String(), 60)))
			b.WriteString("\n")
		}
		if msg, ok := preview[q.ID]; ok {
			b.WriteString(ErrorStyle.Render("      " + msg))
			b.WriteString("\n")
		} else if msg, ok := a.fieldErrs[q.ID]; ok {
			b.WriteString(ErrorStyle.Render("      " + msg))
			b.WriteString("\n")
		}

		if a.mode == assessModeChoice && flatIdx == a.cursor && q.Choice != nil {
			for oi, option := range q.Choice.Options {
				mark := " "
				if a.selections[option] {
					mark = "x"
				}
				b.WriteString(DimStyle.Render(fmt.Sprintf("      [%d] [%s] %s", oi+1, mark, option)))
				b.WriteString("\n")
			}
		}
		flatIdx++
	}
	b.WriteString("\n")

	if a.mode == assessModeAnswer {
		b.WriteString("Answer:\n")
		b.WriteString(a.input.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[enter] Save  [esc] Cancel"))
		return b.String()
	}
	if a.mode == assessModeChoice {
		b.WriteString(HelpStyle.Render("[1-9] Toggle option  [enter] Done"))
		return b.String()
	}

	if len(preview) == 0 {
		b.WriteString(SuccessStyle.Render("Draft is submittable"))
	} else {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d question(s) need attention", len(preview))))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("[j/k] Question  [enter] Answer  [c] Clear draft  [s] Submit  [q] Back"))
	return b.String()
}
