// Package assess evaluates an assessment's question tree against an answer
// set: which questions are visible, and whether the visible answers are
// submittable. It performs no I/O and is deterministic for identical inputs.
package assess

import (
	"fmt"
	"strconv"

	"talentflow/internal/models"
)

// Visible returns the questions of the section that are shown under the
// given answers. A question with no conditional is always visible; one with
// a conditional is visible iff the source question's answer matches the
// expected value (selection answers match by containment).
func Visible(section models.Section, answers models.Answers) []models.Question {
	var visible []models.Question
	for _, q := range section.Questions {
		if q.Conditional == nil {
			visible = append(visible, q)
			continue
		}
		if answers[q.Conditional.SourceQuestionID].Matches(q.Conditional.ExpectedValue) {
			visible = append(visible, q)
		}
	}
	return visible
}

// Validate checks the answers against every visible question and returns one
// error message per failing question id. Hidden questions are skipped even
// when required. The first failing rule wins per question. An empty map
// means the answer set is submittable.
func Validate(sections []models.Section, answers models.Answers) map[string]string {
	errors := make(map[string]string)
	for _, section := range sections {
		for _, q := range Visible(section, answers) {
			if _, seen := errors[q.ID]; seen {
				continue
			}
			if msg := validateQuestion(q, answers[q.ID]); msg != "" {
				errors[q.ID] = msg
			}
		}
	}
	return errors
}

func validateQuestion(q models.Question, answer models.Answer) string {
	if q.Required {
		if q.Type == models.MultiChoice {
			if selections, ok := answer.Selections(); !ok || len(selections) == 0 {
				return "Select at least one option"
			}
		} else if answer.Empty() {
			return "This field is required"
		}
	}

	switch q.Type {
	case models.Numeric:
		if answer.Empty() {
			return ""
		}
		value, ok := answer.Number()
		if !ok {
			text, _ := answer.Text()
			parsed, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return "Enter a number"
			}
			value = parsed
		}
		if q.Numeric != nil {
			if q.Numeric.Min != nil && value < *q.Numeric.Min {
				return fmt.Sprintf("Minimum %g", *q.Numeric.Min)
			}
			if q.Numeric.Max != nil && value > *q.Numeric.Max {
				return fmt.Sprintf("Maximum %g", *q.Numeric.Max)
			}
		}

	case models.ShortText, models.LongText:
		if text, ok := answer.Text(); ok && q.Text != nil && q.Text.MaxLength > 0 {
			if len([]rune(text)) > q.Text.MaxLength {
				return fmt.Sprintf("Max %d characters", q.Text.MaxLength)
			}
		}

	case models.MultiChoice:
		if selections, ok := answer.Selections(); ok && q.Choice != nil && q.Choice.MaxSelections > 0 {
			if len(selections) > q.Choice.MaxSelections {
				return fmt.Sprintf("Select up to %d", q.Choice.MaxSelections)
			}
		}
	}

	return ""
}
