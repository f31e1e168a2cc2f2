package services

import (
	"errors"
	"strings"
	"testing"

	"beakers-site/pkg/models"

	"github.com/google/go-cmp/cmp"
)

func ptr(s string) *string { return &s }

func sampleArticle() *models.Article {
	return &models.Article{
		Title:       "Predicting synthesizability",
		Description: "Large language models meet crystals",
		Body:        "<p>Large language models can predict which crystals can be made.</p>",
		Category:    "chemistry",
		Image: models.Image{
			URL:     "https://placehold.co/600x400",
			Alt:     "Crystal",
			Caption: "A crystal lattice",
		},
		Authors: []models.Author{
			{Name: "Ada Lovelace", AuthorBio: "Undergraduate in chemistry", Slug: "ada"},
			{Name: "Ben Franklin", AuthorBio: "Undergraduate in physics", Slug: "ben"},
		},
		Professor: models.Professor{Name: "Marie Curie", ProfessorBio: "Professor of chemistry", Slug: "curie"},
		Questions: []models.Question{
			{Question: "What is the paper about?", Answers: []string{"Synthesizability", "Crystal growth"}, CorrectAnswer: "Synthesizability"},
			{Question: "Which models were used?", Answers: []string{"Decision trees", "Fine-tuned LLMs", "KNN"}, CorrectAnswer: "Fine-tuned LLMs"},
		},
		CreatedAt:   "2024-02-22T16:40:18.000Z",
		PublishedAt: "2024-02-29T16:40:18.000Z",
		ReadingTime: 4,
		UpdatedAt:   ptr("2024-03-01T10:00:00.000Z"),
	}
}

func TestDeserializeArticle(t *testing.T) {
	got, err := DeserializeArticle([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("DeserializeArticle: %v", err)
	}
	if diff := cmp.Diff(sampleArticle(), got); diff != "" {
		t.Errorf("article mismatch (-want +got):\n%s", diff)
	}
	if got.LastUpdatedAt != nil {
		t.Errorf("LastUpdatedAt = %q, want nil", *got.LastUpdatedAt)
	}
}

func TestDeserializeArticleMalformed(t *testing.T) {
	_, err := DeserializeArticle([]byte("title = \"unterminated\nbody = 3"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestDeserializeArticleRejectsBadContent(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		want    string
	}{
		{
			name:    "correct answer not among answers",
			replace: [2]string{`correct_answer = "Synthesizability"`, `correct_answer = "Alchemy"`},
			want:    "not one of the answers",
		},
		{
			name:    "published before created",
			replace: [2]string{`publishedAt = "2024-02-29T16:40:18.000Z"`, `publishedAt = "2024-01-01T00:00:00.000Z"`},
			want:    "publishedAt is before createdAt",
		},
		{
			name:    "bad timestamp",
			replace: [2]string{`createdAt = "2024-02-22T16:40:18.000Z"`, `createdAt = "yesterday"`},
			want:    "not an RFC 3339 timestamp",
		},
		{
			name:    "repeated author slug",
			replace: [2]string{`slug = "ben"`, `slug = "ada"`},
			want:    `author slug "ada" is repeated`,
		},
		{
			name:    "missing title",
			replace: [2]string{`title = "Predicting synthesizability"`, `title = ""`},
			want:    "Title is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(sampleTOML, tt.replace[0], tt.replace[1], 1)
			_, err := DeserializeArticle([]byte(content))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestCorrectAnswerIsMemberOfAnswers(t *testing.T) {
	content := `title = "T"
body = "<p>text</p>"
createdAt = "2024-02-22T16:40:18.000Z"
publishedAt = "2024-02-22T16:40:18.000Z"

[[authors]]
name = "A"
slug = "a"

[professor]
name = "P"
slug = "p"

[[questions]]
question = "Q"
answers = ["A", "B"]
correct_answer = "A"
`
	art, err := DeserializeArticle([]byte(content))
	if err != nil {
		t.Fatalf("DeserializeArticle: %v", err)
	}
	q := art.Questions[0]
	found := false
	for _, a := range q.Answers {
		if a == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		t.Errorf("correct answer %q not in %v", q.CorrectAnswer, q.Answers)
	}
	if art.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want computed 1", art.ReadingTime)
	}
}

func TestSerializeArticleRoundTrip(t *testing.T) {
	want := sampleArticle()
	want.Body = "<p>First paragraph.</p>\n<p>Second \"quoted\" paragraph.</p>"

	content, err := SerializeArticle(want)
	if err != nil {
		t.Fatalf("SerializeArticle: %v", err)
	}
	got, err := DeserializeArticle(content)
	if err != nil {
		t.Fatalf("DeserializeArticle: %v\n%s", err, content)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeserializeArticleSparseContent(t *testing.T) {
	content := `title = "Draft"
body = ""
createdAt = "2024-02-22T16:40:18Z"
publishedAt = "2024-02-22T16:40:18Z"
authors = []
questions = []

[professor]
name = "P"
slug = "p"
`
	art, err := DeserializeArticle([]byte(content))
	if err != nil {
		t.Fatalf("DeserializeArticle: %v", err)
	}
	if art.Authors != nil || art.Questions != nil || art.ReadingTime != 0 {
		t.Errorf("Authors = %#v, Questions = %#v, ReadingTime = %d", art.Authors, art.Questions, art.ReadingTime)
	}

	out, err := SerializeArticle(art)
	if err != nil {
		t.Fatalf("SerializeArticle: %v", err)
	}
	again, err := DeserializeArticle(out)
	if err != nil {
		t.Fatalf("DeserializeArticle(serialized): %v\n%s", err, out)
	}
	if diff := cmp.Diff(art, again); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}

func TestDeserializeArticleSingleAnswerQuestion(t *testing.T) {
	content := strings.Replace(sampleTOML,
		`answers = ["Synthesizability", "Crystal growth"]`,
		`answers = ["Synthesizability"]`, 1)
	art, err := DeserializeArticle([]byte(content))
	if err != nil {
		t.Fatalf("DeserializeArticle: %v", err)
	}
	if got := art.Questions[0].Answers; len(got) != 1 {
		t.Errorf("answers = %q", got)
	}
}

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"", 0},
		{"<p>one two three</p>", 1},
		{"<p>" + strings.Repeat("word ", 200) + "</p>", 1},
		{"<p>" + strings.Repeat("word ", 450) + "</p><script>var x = 1;</script>", 3},
	}
	for _, tt := range tests {
		if got := EstimateReadingTime(tt.body); got != tt.want {
			t.Errorf("EstimateReadingTime(%.20q) = %d, want %d", tt.body, got, tt.want)
		}
	}
}
