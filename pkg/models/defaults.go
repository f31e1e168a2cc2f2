package models

import "time"

// NewDefaultArticle returns the placeholder article an editor starts from.
func NewDefaultArticle(now time.Time) Article {
	stamp := now.UTC().Format("2006-01-02T15:04:05.000Z")
	return Article{
		Title:       "Default Title",
		Description: "Default Description",
		Body:        "<p>Default Body</p>",
		Image: Image{
			URL:     "https://placehold.co/600x400",
			Alt:     "Default Image",
			Caption: "Default Caption",
		},
		Authors: []Author{{
			Name:      "Default Author",
			AuthorBio: "Default Author Bio",
			Slug:      "default-author",
		}},
		Professor: Professor{
			Name:         "Default Professor",
			ProfessorBio: "Default Professor Bio",
			Slug:         "default-professor",
		},
		Questions: []Question{{
			Question:      "Default Question",
			Answers:       []string{"Default Answer 1", "Default Answer 2", "Default Answer 3"},
			CorrectAnswer: "Default Answer 1",
		}},
		CreatedAt:   stamp,
		PublishedAt: stamp,
		ReadingTime: 1,
	}
}
