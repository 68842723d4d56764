package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerMatches(t *testing.T) {
	if !TextAnswer("Yes").Matches("Yes") {
		t.Error("text answer should match its own value")
	}
	if TextAnswer("Yes").Matches("No") {
		t.Error("text answer should not match a different value")
	}
	if !SelectionAnswer("Go", "Rust").Matches("Rust") {
		t.Error("selection answer should match by containment")
	}
	if SelectionAnswer("Go").Matches("Rust") {
		t.Error("selection answer should not match an absent option")
	}
	if NumberAnswer(5).Matches("5") {
		t.Error("number answers never match conditionals")
	}
	if (Answer{}).Matches("") {
		t.Error("absent answer matches nothing")
	}
}

func TestAnswerEmpty(t *testing.T) {
	if !(Answer{}).Empty() {
		t.Error("absent answer is empty")
	}
	if !TextAnswer("").Empty() {
		t.Error("blank text is empty")
	}
	if !SelectionAnswer().Empty() {
		t.Error("no selections is empty")
	}
	if TextAnswer("x").Empty() || NumberAnswer(0).Empty() || SelectionAnswer("a").Empty() {
		t.Error("populated answers are not empty")
	}
}

func TestAnswersWireShape(t *testing.T) {
	in := Answers{
		"q1": TextAnswer("Yes"),
		"q2": NumberAnswer(3.5),
		"q3": SelectionAnswer("Go", "SQL"),
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The wire value is the bare JSON scalar or array, no wrapper object.
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		t.Fatalf("unmarshal loose: %v", err)
	}
	if loose["q1"] != "Yes" {
		t.Errorf("q1 wire value = %v", loose["q1"])
	}
	if loose["q2"] != 3.5 {
		t.Errorf("q2 wire value = %v", loose["q2"])
	}

	var out Answers
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestAnswerUnmarshalNullAndBadList(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte("null"), &a); err != nil {
		t.Fatalf("null: %v", err)
	}
	if !a.Absent() {
		t.Error("null should decode as absent")
	}

	if err := json.Unmarshal([]byte(`[1,2]`), &a); err == nil {
		t.Error("numeric list should be rejected")
	}
}
