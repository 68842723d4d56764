package models

import "fmt"

type QuestionType string

const (
	SingleChoice QuestionType = "singleChoice"
	MultiChoice  QuestionType = "multiChoice"
	ShortText    QuestionType = "shortText"
	LongText     QuestionType = "longText"
	Numeric      QuestionType = "numeric"
	FileUpload   QuestionType = "file"
)

// Conditional gates a question's visibility on a prior answer.
type Conditional struct {
	SourceQuestionID string `json:"sourceQuestionId"`
	ExpectedValue    string `json:"expectedValue"`
}

type ChoiceSettings struct {
	Options       []string `json:"options"`
	MaxSelections int      `json:"maxSelections,omitempty"`
}

type TextSettings struct {
	MaxLength int `json:"maxLength,omitempty"`
}

type NumericSettings struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Question carries exactly one settings payload, matching its Type. File
// questions carry none. Use the constructors; Validate enforces the pairing.
type Question struct {
	ID          string       `json:"id"`
	Prompt      string       `json:"prompt"`
	Type        QuestionType `json:"type"`
	Required    bool         `json:"required"`
	HelperText  string       `json:"helperText,omitempty"`
	Conditional *Conditional `json:"conditional,omitempty"`

	Choice  *ChoiceSettings  `json:"choice,omitempty"`
	Text    *TextSettings    `json:"text,omitempty"`
	Numeric *NumericSettings `json:"numeric,omitempty"`
}

func NewChoiceQuestion(id, prompt string, qt QuestionType, required bool, settings ChoiceSettings) Question {
	return Question{ID: id, Prompt: prompt, Type: qt, Required: required, Choice: &settings}
}

func NewTextQuestion(id, prompt string, qt QuestionType, required bool, settings TextSettings) Question {
	return Question{ID: id, Prompt: prompt, Type: qt, Required: required, Text: &settings}
}

func NewNumericQuestion(id, prompt string, required bool, settings NumericSettings) Question {
	return Question{ID: id, Prompt: prompt, Type: Numeric, Required: required, Numeric: &settings}
}

func NewFileQuestion(id, prompt string, required bool) Question {
	return Question{ID: id, Prompt: prompt, Type: FileUpload, Required: required}
}

// WithConditional returns a copy gated on the source question's answer.
func (q Question) WithConditional(sourceQuestionID, expectedValue string) Question {
	q.Conditional = &Conditional{SourceQuestionID: sourceQuestionID, ExpectedValue: expectedValue}
	return q
}

// Validate checks that the question carries the settings payload its type
// demands and no other.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has no id")
	}
	var want string
	switch q.Type {
	case SingleChoice, MultiChoice:
		want = "choice"
		if q.Choice == nil {
			return fmt.Errorf("question %s: %s question needs choice settings", q.ID, q.Type)
		}
		if len(q.Choice.Options) == 0 {
			return fmt.Errorf("question %s: choice question needs options", q.ID)
		}
	case ShortText, LongText:
		want = "text"
		if q.Text == nil {
			return fmt.Errorf("question %s: %s question needs text settings", q.ID, q.Type)
		}
	case Numeric:
		want = "numeric"
		if q.Numeric == nil {
			return fmt.Errorf("question %s: numeric question needs numeric settings", q.ID)
		}
	case FileUpload:
		want = ""
	default:
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}
	if q.Choice != nil && want != "choice" {
		return fmt.Errorf("question %s: stray choice settings on %s question", q.ID, q.Type)
	}
	if q.Text != nil && want != "text" {
		return fmt.Errorf("question %s: stray text settings on %s question", q.ID, q.Type)
	}
	if q.Numeric != nil && want != "numeric" {
		return fmt.Errorf("question %s: stray numeric settings on %s question", q.ID, q.Type)
	}
	return nil
}
