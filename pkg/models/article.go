package models

// Article is a quiz-annotated article as stored in an articles file.
type Article struct {
	Title         string     `toml:"title" yaml:"title" json:"title" validate:"required"`
	Description   string     `toml:"description" yaml:"description" json:"description"`
	Body          string     `toml:"body,multiline" yaml:"body,omitempty" json:"body"`
	Category      string     `toml:"category" yaml:"category" json:"category"`
	Image         Image      `toml:"image" yaml:"image" json:"image"`
	Authors       []Author   `toml:"authors" yaml:"authors" json:"authors" validate:"dive"`
	Professor     Professor  `toml:"professor" yaml:"professor" json:"professor"`
	Questions     []Question `toml:"questions,omitempty" yaml:"questions,omitempty" json:"questions" validate:"dive"`
	CreatedAt     string     `toml:"createdAt" yaml:"createdAt" json:"createdAt" validate:"required,timestamp"`
	PublishedAt   string     `toml:"publishedAt" yaml:"publishedAt" json:"publishedAt" validate:"required,timestamp"`
	ReadingTime   int        `toml:"readingTime,omitempty" yaml:"readingTime,omitempty" json:"readingTime" validate:"gte=0"`
	UpdatedAt     *string    `toml:"updatedAt,omitempty" yaml:"updatedAt,omitempty" json:"updatedAt" validate:"omitnil,timestamp"`
	LastUpdatedAt *string    `toml:"lastUpdatedAt,omitempty" yaml:"lastUpdatedAt,omitempty" json:"lastUpdatedAt" validate:"omitnil,timestamp"`
}

type Image struct {
	URL     string `toml:"url" yaml:"url" json:"url"`
	Alt     string `toml:"alt" yaml:"alt" json:"alt"`
	Caption string `toml:"caption" yaml:"caption" json:"caption"`
}

type Author struct {
	Name      string `toml:"name" yaml:"name" json:"name" validate:"required"`
	AuthorBio string `toml:"authorBio" yaml:"authorBio" json:"authorBio"`
	Slug      string `toml:"slug" yaml:"slug" json:"slug" validate:"required,slug"`
}

type Professor struct {
	Name         string `toml:"name" yaml:"name" json:"name" validate:"required"`
	ProfessorBio string `toml:"professorBio" yaml:"professorBio" json:"professorBio"`
	Slug         string `toml:"slug" yaml:"slug" json:"slug" validate:"required,slug"`
}

// Question is a multiple-choice question. CorrectAnswer must equal one of
// Answers.
type Question struct {
	Question      string   `toml:"question" yaml:"question" json:"question" validate:"required"`
	Answers       []string `toml:"answers" yaml:"answers" json:"answers" validate:"dive,required"`
	CorrectAnswer string   `toml:"correct_answer" yaml:"correct_answer" json:"correct_answer" validate:"required"`
}

// ArticleSummary is a listing entry for an articles file.
type ArticleSummary struct {
	Slug        string `json:"slug"`
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PublishedAt string `json:"publishedAt"`
	ReadingTime int    `json:"readingTime"`
	IsDirty     bool   `json:"is_dirty"`
}

// Person is an author or professor together with the articles that name them.
type Person struct {
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	Slug     string   `json:"slug"`
	Role     string   `json:"role"`
	Articles []string `json:"articles"`
}
