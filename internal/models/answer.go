package models

import (
	"encoding/json"
	"fmt"
)

type answerKind int

const (
	answerAbsent answerKind = iota
	answerText
	answerNumber
	answerSelections
)

// Answer is one submitted value: free text, a number, a selection list, or
// absent. The wire shape is the bare JSON value (string, number, array of
// strings, or null).
type Answer struct {
	kind       answerKind
	text       string
	number     float64
	selections []string
}

// Answers maps question ids to submitted values.
type Answers map[string]Answer

func TextAnswer(s string) Answer {
	return Answer{kind: answerText, text: s}
}

func NumberAnswer(n float64) Answer {
	return Answer{kind: answerNumber, number: n}
}

func SelectionAnswer(options ...string) Answer {
	return Answer{kind: answerSelections, selections: options}
}

func (a Answer) Absent() bool {
	return a.kind == answerAbsent
}

func (a Answer) Text() (string, bool) {
	return a.text, a.kind == answerText
}

func (a Answer) Number() (float64, bool) {
	return a.number, a.kind == answerNumber
}

func (a Answer) Selections() ([]string, bool) {
	return a.selections, a.kind == answerSelections
}

// Matches reports whether the answer equals the expected value, or for
// selection answers, whether the list contains it.
func (a Answer) Matches(expected string) bool {
	switch a.kind {
	case answerText:
		return a.text == expected
	case answerSelections:
		for _, s := range a.selections {
			if s == expected {
				return true
			}
		}
	}
	return false
}

// Empty reports whether the answer counts as unanswered: absent, a blank
// string, or an empty selection list.
func (a Answer) Empty() bool {
	switch a.kind {
	case answerAbsent:
		return true
	case answerText:
		return a.text == ""
	case answerSelections:
		return len(a.selections) == 0
	}
	return false
}

// String renders the answer for display.
func (a Answer) String() string {
	switch a.kind {
	case answerText:
		return a.text
	case answerNumber:
		return trimFloat(a.number)
	case answerSelections:
		out := ""
		for i, s := range a.selections {
			if i > 0 {
				out += ", "
			}
			out += s
		}
		return out
	}
	return ""
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case answerText:
		return json.Marshal(a.text)
	case answerNumber:
		return json.Marshal(a.number)
	case answerSelections:
		return json.Marshal(a.selections)
	}
	return []byte("null"), nil
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch v := probe.(type) {
	case nil:
		*a = Answer{}
	case string:
		*a = TextAnswer(v)
	case float64:
		*a = NumberAnswer(v)
	case []any:
		options := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("answer list holds non-string %T", item)
			}
			options = append(options, s)
		}
		*a = SelectionAnswer(options...)
	default:
		return fmt.Errorf("unsupported answer value %T", probe)
	}
	return nil
}
