package models

import (
	"strings"
	"testing"
)

func TestQuestionValidatePairing(t *testing.T) {
	min := 0.0
	cases := []struct {
		name    string
		q       Question
		wantErr string
	}{
		{
			name: "choice question is valid",
			q:    NewChoiceQuestion("q1", "Pick one", SingleChoice, true, ChoiceSettings{Options: []string{"Yes", "No"}}),
		},
		{
			name: "text question is valid",
			q:    NewTextQuestion("q2", "Explain", LongText, false, TextSettings{MaxLength: 500}),
		},
		{
			name: "numeric question is valid",
			q:    NewNumericQuestion("q3", "Years of experience", true, NumericSettings{Min: &min}),
		},
		{
			name: "file question carries no settings",
			q:    NewFileQuestion("q4", "Resume", false),
		},
		{
			name:    "missing id",
			q:       Question{Type: ShortText, Text: &TextSettings{}},
			wantErr: "no id",
		},
		{
			name:    "choice without options",
			q:       NewChoiceQuestion("q5", "Pick", MultiChoice, false, ChoiceSettings{}),
			wantErr: "needs options",
		},
		{
			name:    "numeric without settings",
			q:       Question{ID: "q6", Type: Numeric},
			wantErr: "needs numeric settings",
		},
		{
			name: "stray payload on text question",
			q: Question{
				ID:     "q7",
				Type:   ShortText,
				Text:   &TextSettings{},
				Choice: &ChoiceSettings{Options: []string{"a"}},
			},
			wantErr: "stray choice settings",
		},
		{
			name:    "unknown type",
			q:       Question{ID: "q8", Type: "essay"},
			wantErr: "unknown type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestWithConditionalCopies(t *testing.T) {
	base := NewFileQuestion("q1", "Resume", false)
	gated := base.WithConditional("q0", "Yes")

	if base.Conditional != nil {
		t.Error("WithConditional mutated the receiver")
	}
	if gated.Conditional == nil || gated.Conditional.SourceQuestionID != "q0" || gated.Conditional.ExpectedValue != "Yes" {
		t.Errorf("unexpected conditional %+v", gated.Conditional)
	}
}
