// Package viewmodel projects articles into values a UI layer can bind to
// field by field.
package viewmodel

import (
	"fmt"
	"slices"
	"time"

	"beakers-site/pkg/models"
	"beakers-site/pkg/services"
)

// Layout used when timestamps are written back to an article.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type ArticleView struct {
	Title         *Observable[string]
	Description   *Observable[string]
	Body          *Observable[string]
	Category      *Observable[string]
	Image         *Observable[models.Image]
	Authors       *Observable[[]*AuthorView]
	Professor     *Observable[*ProfessorView]
	Questions     *Observable[[]*QuestionView]
	CreatedAt     *Observable[time.Time]
	PublishedAt   *Observable[time.Time]
	ReadingTime   *Observable[int]
	UpdatedAt     *Observable[*string]
	LastUpdatedAt *Observable[*string]

	createdAt   stamp
	publishedAt stamp
}

// stamp remembers a timestamp as it was written in the file.
type stamp struct {
	raw string
	t   time.Time
}

// format returns raw while t still names the same instant, so unchanged
// timestamps keep their original spelling.
func (s stamp) format(t time.Time) string {
	if s.raw != "" && t.Equal(s.t) {
		return s.raw
	}
	return t.UTC().Format(timestampLayout)
}

type AuthorView struct {
	Name      string
	AuthorBio string
	Slug      string
}

type ProfessorView struct {
	Name         string
	ProfessorBio string
	Slug         string
}

type QuestionView struct {
	Question      string
	Answers       []string
	CorrectAnswer string
}

// IsCorrect reports whether answer is the question's correct answer.
func (q *QuestionView) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// NewArticleView copies art into observable fields. createdAt and
// publishedAt are converted to times in loc.
func NewArticleView(art *models.Article, loc *time.Location) (*ArticleView, error) {
	if loc == nil {
		loc = time.Local
	}
	created, err := services.ParseTimestamp(art.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	published, err := services.ParseTimestamp(art.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("publishedAt: %w", err)
	}

	authors := make([]*AuthorView, len(art.Authors))
	for i, a := range art.Authors {
		authors[i] = &AuthorView{Name: a.Name, AuthorBio: a.AuthorBio, Slug: a.Slug}
	}
	questions := make([]*QuestionView, len(art.Questions))
	for i, q := range art.Questions {
		questions[i] = &QuestionView{
			Question:      q.Question,
			Answers:       slices.Clone(q.Answers),
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	return &ArticleView{
		Title:       NewObservable(art.Title),
		Description: NewObservable(art.Description),
		Body:        NewObservable(art.Body),
		Category:    NewObservable(art.Category),
		Image:       NewObservable(art.Image),
		Authors:     NewObservable(authors),
		Professor: NewObservable(&ProfessorView{
			Name:         art.Professor.Name,
			ProfessorBio: art.Professor.ProfessorBio,
			Slug:         art.Professor.Slug,
		}),
		Questions:     NewObservable(questions),
		CreatedAt:     NewObservable(created.In(loc)),
		PublishedAt:   NewObservable(published.In(loc)),
		ReadingTime:   NewObservable(art.ReadingTime),
		UpdatedAt:     NewObservable(cloneString(art.UpdatedAt)),
		LastUpdatedAt: NewObservable(cloneString(art.LastUpdatedAt)),
		createdAt:     stamp{raw: art.CreatedAt, t: created},
		publishedAt:   stamp{raw: art.PublishedAt, t: published},
	}, nil
}

// Article snapshots the view back into a plain article. Edited times are
// written in UTC with millisecond precision; untouched ones keep their
// original text.
func (v *ArticleView) Article() *models.Article {
	art := &models.Article{
		Title:         v.Title.Get(),
		Description:   v.Description.Get(),
		Body:          v.Body.Get(),
		Category:      v.Category.Get(),
		Image:         v.Image.Get(),
		CreatedAt:     v.createdAt.format(v.CreatedAt.Get()),
		PublishedAt:   v.publishedAt.format(v.PublishedAt.Get()),
		ReadingTime:   v.ReadingTime.Get(),
		UpdatedAt:     cloneString(v.UpdatedAt.Get()),
		LastUpdatedAt: cloneString(v.LastUpdatedAt.Get()),
	}
	for _, a := range v.Authors.Get() {
		art.Authors = append(art.Authors, models.Author{Name: a.Name, AuthorBio: a.AuthorBio, Slug: a.Slug})
	}
	if p := v.Professor.Get(); p != nil {
		art.Professor = models.Professor{Name: p.Name, ProfessorBio: p.ProfessorBio, Slug: p.Slug}
	}
	for _, q := range v.Questions.Get() {
		art.Questions = append(art.Questions, models.Question{
			Question:      q.Question,
			Answers:       slices.Clone(q.Answers),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return art
}

// DefaultArticleView is the placeholder an editor opens with.
func DefaultArticleView(loc *time.Location) *ArticleView {
	art := models.NewDefaultArticle(time.Now())
	v, err := NewArticleView(&art, loc)
	if err != nil {
		panic(err) // the default article always carries valid timestamps
	}
	return v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
