package services

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"beakers-site/pkg/config"
	"beakers-site/pkg/models"

	"gopkg.in/yaml.v3"
)

// SafeJoin joins target below root/sub, returning "" when target would escape.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if filepath.IsAbs(cleanTarget) || cleanTarget == ".." ||
		strings.HasPrefix(cleanTarget, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

func repoRelative(path string) (string, error) {
	rel, err := filepath.Rel(config.RepoPath, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the repository", path)
	}
	return filepath.ToSlash(rel), nil
}

// FindArticleFile returns the article file whose base name equals slug.
// TOML files win over Markdown ones with the same name.
func FindArticleFile(slug string) (string, error) {
	if !IsValidSlug(slug) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	files, err := listArticleFiles()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	for _, ext := range articleExtensions {
		for _, f := range files {
			base := filepath.Base(f)
			if strings.EqualFold(filepath.Ext(base), ext) && strings.TrimSuffix(base, filepath.Ext(base)) == slug {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, slug)
}

// LoadArticle finds and decodes the article named by slug. Missing or
// unreadable files yield ErrNotFound; bad content yields ErrParse or
// ErrInvalid.
func LoadArticle(slug string) (*models.Article, error) {
	path, err := FindArticleFile(slug)
	if err != nil {
		return nil, err
	}
	return LoadArticleFile(path)
}

// LoadArticleFile reads and decodes the article at path.
func LoadArticleFile(path string) (*models.Article, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to read the file %s: %w", ErrNotFound, path, err)
	}
	return DecodeArticleFile(path, content)
}

// ArticlePath returns the TOML path an article with this slug is saved to.
func ArticlePath(slug string) (string, error) {
	if !IsValidSlug(slug) {
		return "", fmt.Errorf("%w: bad slug %q", ErrInvalid, slug)
	}
	return filepath.Join(config.ArticlesDir, slug+".toml"), nil
}

// CreateArticle writes the default article under slug.
func CreateArticle(slug string) (*models.Article, error) {
	if _, err := FindArticleFile(slug); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrExist, slug)
	}
	art := models.NewDefaultArticle(time.Now())
	if err := SaveArticle(slug, &art); err != nil {
		return nil, err
	}
	slog.Info("created article", "slug", slug)
	return &art, nil
}

// SaveArticle validates art and writes it as TOML under slug.
func SaveArticle(slug string, art *models.Article) error {
	path, err := ArticlePath(slug)
	if err != nil {
		return err
	}
	if existing, err := FindArticleFile(slug); err == nil && existing != path {
		return fmt.Errorf("%w: %s is a markdown article, edit it in the repository", ErrInvalid, filepath.Base(existing))
	}
	if art.ReadingTime == 0 {
		art.ReadingTime = EstimateReadingTime(art.Body)
	}
	if err := ValidateArticle(art); err != nil {
		return err
	}
	site, err := LoadSiteConfig()
	if err != nil {
		return err
	}
	if !site.HasCategory(art.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, art.Category)
	}

	content, err := SerializeArticle(art)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	InvalidateCache()
	return nil
}

// FindPerson looks up an author ("author") or professor ("professor") by slug
// across all articles.
func FindPerson(role, slug string) (*models.Person, error) {
	cached, err := loadCache()
	if err != nil {
		return nil, err
	}
	var person *models.Person
	for _, c := range cached {
		name, bio, ok := matchPerson(c.article, role, slug)
		if !ok {
			continue
		}
		if person == nil {
			person = &models.Person{Name: name, Bio: bio, Slug: slug, Role: role}
		}
		person.Articles = append(person.Articles, c.summary.Slug)
	}
	if person == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, role, slug)
	}
	return person, nil
}

func matchPerson(art *models.Article, role, slug string) (name, bio string, ok bool) {
	switch role {
	case "author":
		for _, a := range art.Authors {
			if a.Slug == slug {
				return a.Name, a.AuthorBio, true
			}
		}
	case "professor":
		if art.Professor.Slug == slug {
			return art.Professor.Name, art.Professor.ProfessorBio, true
		}
	}
	return "", "", false
}

// LoadSiteConfig reads site.yml. A missing file is an empty configuration.
func LoadSiteConfig() (*models.SiteConfig, error) {
	content, err := os.ReadFile(config.SiteConfig)
	if errors.Is(err, fs.ErrNotExist) {
		return &models.SiteConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg models.SiteConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", config.SiteConfig, err)
	}
	return &cfg, nil
}
