package services

import (
	"os"
	"path/filepath"
	"testing"

	"beakers-site/pkg/config"
)

const sampleTOML = `title = "Predicting synthesizability"
description = "Large language models meet crystals"
body = "<p>Large language models can predict which crystals can be made.</p>"
category = "chemistry"
createdAt = "2024-02-22T16:40:18.000Z"
publishedAt = "2024-02-29T16:40:18.000Z"
readingTime = 4
updatedAt = "2024-03-01T10:00:00.000Z"

[image]
url = "https://placehold.co/600x400"
alt = "Crystal"
caption = "A crystal lattice"

[[authors]]
name = "Ada Lovelace"
authorBio = "Undergraduate in chemistry"
slug = "ada"

[[authors]]
name = "Ben Franklin"
authorBio = "Undergraduate in physics"
slug = "ben"

[professor]
name = "Marie Curie"
professorBio = "Professor of chemistry"
slug = "curie"

[[questions]]
question = "What is the paper about?"
answers = ["Synthesizability", "Crystal growth"]
correct_answer = "Synthesizability"

[[questions]]
question = "Which models were used?"
answers = ["Decision trees", "Fine-tuned LLMs", "KNN"]
correct_answer = "Fine-tuned LLMs"
`

// setupRepo points the content settings at a fresh temporary repository.
func setupRepo(t *testing.T) string {
	t.Helper()
	oldRepo, oldArticles, oldSite := config.RepoPath, config.ArticlesDir, config.SiteConfig
	oldMedia, oldMediaURL := config.MediaDir, config.MediaURL

	dir := t.TempDir()
	config.RepoPath = dir
	config.ArticlesDir = filepath.Join(dir, "articles")
	config.SiteConfig = filepath.Join(dir, "site.yml")
	config.MediaDir = filepath.Join(dir, "static", "images")
	config.MediaURL = "/images/"
	if err := os.MkdirAll(config.ArticlesDir, 0755); err != nil {
		t.Fatal(err)
	}
	InvalidateCache()

	t.Cleanup(func() {
		config.RepoPath, config.ArticlesDir, config.SiteConfig = oldRepo, oldArticles, oldSite
		config.MediaDir, config.MediaURL = oldMedia, oldMediaURL
		InvalidateCache()
	})
	return dir
}

func writeArticle(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(config.ArticlesDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
