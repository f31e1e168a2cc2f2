package services

import (
	"context"
	"errors"
	"testing"
)

func TestParseGeneratedQuestions(t *testing.T) {
	reply := "Here you go:\n```json\n" + `[
  {"question": "What was predicted?", "answers": ["Synthesizability", "Colour", "Mass", "Price"]},
  {"question": "Broken", "answers": []},
  {"question": "Which input?", "answers": ["Text descriptions", "Images"]}
]` + "\n```"

	got, err := ParseGeneratedQuestions(reply)
	if err != nil {
		t.Fatalf("ParseGeneratedQuestions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d questions, want 2", len(got))
	}
	if got[0].CorrectAnswer != "Synthesizability" || got[1].CorrectAnswer != "Text descriptions" {
		t.Errorf("correct answers = %q, %q", got[0].CorrectAnswer, got[1].CorrectAnswer)
	}
}

func TestParseGeneratedQuestionsObjectShape(t *testing.T) {
	reply := `{"B question": ["b1", "b2"], "A question": ["a1", "a2", "a3", "a4"]}`
	got, err := ParseGeneratedQuestions(reply)
	if err != nil {
		t.Fatalf("ParseGeneratedQuestions: %v", err)
	}
	if len(got) != 2 || got[0].Question != "A question" || got[0].CorrectAnswer != "a1" {
		t.Errorf("got %+v", got)
	}
}

func TestParseGeneratedQuestionsErrors(t *testing.T) {
	for _, reply := range []string{"no json here", "[]", `[{"question": "x"`} {
		if _, err := ParseGeneratedQuestions(reply); err == nil {
			t.Errorf("ParseGeneratedQuestions(%q) succeeded", reply)
		}
	}
}

func TestNewGeminiGeneratorWithoutKey(t *testing.T) {
	if _, err := NewGeminiGenerator(context.Background(), "", "model"); !errors.Is(err, ErrGeneratorDisabled) {
		t.Errorf("err = %v, want ErrGeneratorDisabled", err)
	}
}
