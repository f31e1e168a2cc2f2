package services

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"beakers-site/pkg/config"
	"beakers-site/pkg/models"

	"golang.org/x/sync/errgroup"
)

type cachedArticle struct {
	summary models.ArticleSummary
	article *models.Article
}

var (
	articleCache []cachedArticle
	cacheMutex   sync.Mutex
	cacheLoaded  bool
)

func loadCache() ([]cachedArticle, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if cacheLoaded {
		return articleCache, nil
	}

	files, err := listArticleFiles()
	if err != nil {
		return nil, err
	}

	dirtyFiles, err := getGitDirtyFiles(config.RepoPath)
	if err != nil {
		slog.Debug("could not read git status", "repo", config.RepoPath, "error", err)
	}

	loaded := make([]*cachedArticle, len(files))
	var g errgroup.Group
	g.SetLimit(config.CacheConcurrency)
	for i, path := range files {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("skipping unreadable article", "path", path, "error", err)
				return nil
			}
			art, err := DecodeArticleFile(path, content)
			if err != nil {
				slog.Warn("skipping unparseable article", "path", path, "error", err)
				return nil
			}

			repoRelPath, _ := filepath.Rel(config.RepoPath, path)
			repoRelPath = filepath.ToSlash(repoRelPath)
			base := filepath.Base(path)

			loaded[i] = &cachedArticle{
				summary: models.ArticleSummary{
					Slug:        strings.TrimSuffix(base, filepath.Ext(base)),
					Path:        base,
					Title:       art.Title,
					Description: art.Description,
					Category:    art.Category,
					PublishedAt: art.PublishedAt,
					ReadingTime: art.ReadingTime,
					IsDirty:     dirtyFiles[repoRelPath],
				},
				article: art,
			}
			return nil
		})
	}
	g.Wait()

	articles := make([]cachedArticle, 0, len(loaded))
	for _, c := range loaded {
		if c != nil {
			articles = append(articles, *c)
		}
	}
	slices.SortStableFunc(articles, func(a, b cachedArticle) int {
		// newest first; RFC 3339 strings in one zone sort lexically, but
		// mixed offsets do not, so compare parsed times.
		ta, _ := ParseTimestamp(a.summary.PublishedAt)
		tb, _ := ParseTimestamp(b.summary.PublishedAt)
		return tb.Compare(ta)
	})

	articleCache = articles
	cacheLoaded = true
	return articleCache, nil
}

// ListArticles returns a summary of every readable article, newest first.
func ListArticles() ([]models.ArticleSummary, error) {
	cached, err := loadCache()
	if err != nil {
		return nil, err
	}
	out := make([]models.ArticleSummary, len(cached))
	for i, c := range cached {
		out[i] = c.summary
	}
	return out, nil
}

// listArticleFiles returns the article files directly inside the articles
// directory.
func listArticleFiles() ([]string, error) {
	entries, err := os.ReadDir(config.ArticlesDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(articleExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(config.ArticlesDir, e.Name()))
		}
	}
	return files, nil
}

func getGitDirtyFiles(dir string) (map[string]bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return parsePorcelain(string(out)), nil
}

func parsePorcelain(out string) map[string]bool {
	dirty := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		path = strings.Trim(path, "\"")
		dirty[path] = true
	}
	return dirty
}

func InvalidateCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	cacheLoaded = false
	articleCache = nil
}
