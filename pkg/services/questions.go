package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"beakers-site/pkg/config"
	"beakers-site/pkg/models"

	"google.golang.org/genai"
)

var ErrGeneratorDisabled = errors.New("question generation is not configured")

const questionPrompt = `Generate %d multiple choice questions about the article below for an undergraduate student.
Each question must have exactly 4 answers and the correct answer must be the first answer in the list.
Respond with only a JSON array, no other text, in this shape:
[{"question": "...", "answers": ["correct", "wrong", "wrong", "wrong"]}]

Article:
%s`

// QuestionGenerator drafts quiz questions for an article body.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, body string, n int) ([]models.Question, error)
}

// GeminiGenerator asks a Gemini model for questions.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrGeneratorDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) GenerateQuestions(ctx context.Context, body string, n int) ([]models.Question, error) {
	if n <= 0 {
		n = config.QuestionCount
	}
	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(questionPrompt, n, PlainText(body))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("call gemini: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini response is empty")
	}
	questions, err := ParseGeneratedQuestions(text)
	if err != nil {
		slog.Error("could not read generated questions", "error", err, "response", text)
		return nil, err
	}
	return questions, nil
}

type generatedQuestion struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// ParseGeneratedQuestions extracts questions from a model reply. The reply may
// wrap the JSON in prose or code fences. Two shapes are accepted: an array of
// {question, answers} objects, or an object mapping question to answers. The
// first answer is the correct one.
func ParseGeneratedQuestions(reply string) ([]models.Question, error) {
	raw := extractJSON(reply)
	if raw == "" {
		return nil, fmt.Errorf("no JSON found in the response")
	}

	var generated []generatedQuestion
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &generated); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
	} else {
		var byQuestion map[string][]string
		if err := json.Unmarshal([]byte(raw), &byQuestion); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		keys := make([]string, 0, len(byQuestion))
		for q := range byQuestion {
			keys = append(keys, q)
		}
		slices.Sort(keys)
		for _, q := range keys {
			generated = append(generated, generatedQuestion{Question: q, Answers: byQuestion[q]})
		}
	}

	questions := make([]models.Question, 0, len(generated))
	for _, g := range generated {
		if g.Question == "" || len(g.Answers) < 2 {
			continue
		}
		questions = append(questions, models.Question{
			Question:      g.Question,
			Answers:       g.Answers,
			CorrectAnswer: g.Answers[0],
		})
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("response contained no usable questions")
	}
	return questions, nil
}

// extractJSON returns the outermost JSON array or object in s.
func extractJSON(s string) string {
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return ""
	}
	closer := "]"
	if s[start] == '{' {
		closer = "}"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}
