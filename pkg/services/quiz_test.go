package services

import "testing"

func TestGradeQuiz(t *testing.T) {
	art := sampleArticle()

	tests := []struct {
		name      string
		selected  []string
		wantScore int
		answered  []bool
	}{
		{"all correct", []string{"Synthesizability", "Fine-tuned LLMs"}, 2, []bool{true, true}},
		{"one wrong", []string{"Crystal growth", "Fine-tuned LLMs"}, 1, []bool{true, true}},
		{"short selection", []string{"Synthesizability"}, 1, []bool{true, false}},
		{"blank selection", []string{"", ""}, 0, []bool{false, false}},
		{"nothing", nil, 0, []bool{false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeQuiz(art, tt.selected)
			if got.Score != tt.wantScore || got.Total != 2 {
				t.Errorf("score = %d/%d, want %d/2", got.Score, got.Total, tt.wantScore)
			}
			for i, q := range got.Questions {
				if q.Answered != tt.answered[i] {
					t.Errorf("question %d answered = %v, want %v", i, q.Answered, tt.answered[i])
				}
				if q.CorrectAnswer != art.Questions[i].CorrectAnswer {
					t.Errorf("question %d correct answer = %q", i, q.CorrectAnswer)
				}
			}
		})
	}
}
