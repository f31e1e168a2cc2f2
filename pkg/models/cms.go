package models

// SiteConfig is the site.yml file at the root of the content repository.
type SiteConfig struct {
	MediaFolder  string     `yaml:"media_folder"`
	PublicFolder string     `yaml:"public_folder"`
	Categories   []Category `yaml:"categories"`
}

type Category struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label" json:"label"`
}

// HasCategory reports whether name is allowed. An empty category list allows
// everything.
func (c *SiteConfig) HasCategory(name string) bool {
	if c == nil || len(c.Categories) == 0 {
		return true
	}
	for _, cat := range c.Categories {
		if cat.Name == name {
			return true
		}
	}
	return false
}

// QuizResult is the outcome of grading a visitor's selected answers.
type QuizResult struct {
	Score     int             `json:"score"`
	Total     int             `json:"total"`
	Questions []QuestionGrade `json:"questions"`
}

type QuestionGrade struct {
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
	Answered      bool   `json:"answered"`
}
