package services

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"beakers-site/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

var (
	ErrNotFound = errors.New("article not found")
	ErrParse    = errors.New("parse article")
	ErrInvalid  = errors.New("invalid article")
	ErrExist    = errors.New("article already exists")
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})
	v.RegisterStructValidation(articleStructLevel, models.Article{})
	v.RegisterStructValidation(questionStructLevel, models.Question{})
	return v
}

// ParseTimestamp parses the RFC 3339 timestamps used by article files.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// IsValidSlug reports whether s can name an article, author or professor.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func articleStructLevel(sl validator.StructLevel) {
	art := sl.Current().Interface().(models.Article)

	created, errC := ParseTimestamp(art.CreatedAt)
	published, errP := ParseTimestamp(art.PublishedAt)
	if errC == nil && errP == nil && published.Before(created) {
		sl.ReportError(art.PublishedAt, "PublishedAt", "publishedAt", "gtecreated", "")
	}

	seen := make(map[string]bool, len(art.Authors))
	for _, a := range art.Authors {
		if seen[a.Slug] {
			sl.ReportError(a.Slug, "Authors", "authors", "uniqueslug", a.Slug)
		}
		seen[a.Slug] = true
	}
}

func questionStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(models.Question)
	if q.CorrectAnswer == "" {
		return
	}
	for _, a := range q.Answers {
		if a == q.CorrectAnswer {
			return
		}
	}
	sl.ReportError(q.CorrectAnswer, "CorrectAnswer", "correct_answer", "oneofanswers", "")
}

// ValidateArticle checks the invariants the file format cannot express.
func ValidateArticle(art *models.Article) error {
	if art == nil {
		return fmt.Errorf("%w: empty article", ErrInvalid)
	}
	err := validate.Struct(art)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Article.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "timestamp":
		return fmt.Sprintf("%s %q is not an RFC 3339 timestamp", field, fe.Value())
	case "slug":
		return fmt.Sprintf("%s %q is not a valid slug", field, fe.Value())
	case "gtecreated":
		return "publishedAt is before createdAt"
	case "uniqueslug":
		return fmt.Sprintf("author slug %q is repeated", fe.Param())
	case "oneofanswers":
		return fmt.Sprintf("%s %q is not one of the answers", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// DeserializeArticle parses a TOML articles file. Parse errors are logged and
// returned wrapped in ErrParse; invariant violations in ErrInvalid.
func DeserializeArticle(content []byte) (*models.Article, error) {
	var art models.Article
	if err := toml.Unmarshal(content, &art); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			slog.Error("error deserializing TOML", "row", row, "column", col, "error", err)
		} else {
			slog.Error("error deserializing TOML", "error", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := finishArticle(&art); err != nil {
		return nil, err
	}
	return &art, nil
}

func finishArticle(art *models.Article) error {
	if len(art.Authors) == 0 {
		art.Authors = nil
	}
	if len(art.Questions) == 0 {
		art.Questions = nil
	}
	if art.ReadingTime == 0 && art.Body != "" {
		art.ReadingTime = EstimateReadingTime(art.Body)
	}
	if err := ValidateArticle(art); err != nil {
		slog.Error("article failed validation", "title", art.Title, "error", err)
		return err
	}
	return nil
}

// SerializeArticle encodes art in the TOML layout read by DeserializeArticle.
func SerializeArticle(art *models.Article) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	enc.SetArraysMultiline(true)
	if err := enc.Encode(art); err != nil {
		return nil, fmt.Errorf("encode article: %w", err)
	}
	return buf.Bytes(), nil
}
