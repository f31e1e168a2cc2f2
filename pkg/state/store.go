// Package state holds the editor's process-wide observable values.
package state

import (
	"slices"

	"beakers-site/pkg/models"
	"beakers-site/pkg/viewmodel"
)

// Store keeps three independent values. Setting or clearing one never
// touches the others.
type Store struct {
	SelectedAnswers *viewmodel.Observable[[]string]
	Article         *viewmodel.Observable[*models.Article]
	GitHubToken     *viewmodel.Observable[*string]
}

func New() *Store {
	return &Store{
		SelectedAnswers: viewmodel.NewObservable([]string{}),
		Article:         viewmodel.NewObservable[*models.Article](nil),
		GitHubToken:     viewmodel.NewObservable[*string](nil),
	}
}

// Default is the store shared by the editor handlers.
var Default = New()

func (s *Store) SetSelectedAnswers(answers []string) {
	s.SelectedAnswers.Set(slices.Clone(answers))
}

// SelectAnswer records answer for question i, growing the list as needed.
func (s *Store) SelectAnswer(i int, answer string) {
	s.SelectedAnswers.Update(func(cur []string) []string {
		next := slices.Clone(cur)
		for len(next) <= i {
			next = append(next, "")
		}
		next[i] = answer
		return next
	})
}

func (s *Store) ClearSelectedAnswers() {
	s.SelectedAnswers.Set([]string{})
}

func (s *Store) SetArticle(art *models.Article) {
	s.Article.Set(art)
}

func (s *Store) ClearArticle() {
	s.Article.Set(nil)
}

func (s *Store) SetToken(token string) {
	s.GitHubToken.Set(&token)
}

func (s *Store) ClearToken() {
	s.GitHubToken.Set(nil)
}

// Token returns the stored token and whether one is set.
func (s *Store) Token() (string, bool) {
	t := s.GitHubToken.Get()
	if t == nil {
		return "", false
	}
	return *t, true
}

// Snapshot is a JSON-friendly copy of the store.
type Snapshot struct {
	SelectedAnswers []string        `json:"selected_answers"`
	Article         *models.Article `json:"article"`
	HasToken        bool            `json:"has_token"`
}

func (s *Store) Snapshot() Snapshot {
	_, ok := s.Token()
	return Snapshot{
		SelectedAnswers: slices.Clone(s.SelectedAnswers.Get()),
		Article:         s.Article.Get(),
		HasToken:        ok,
	}
}
