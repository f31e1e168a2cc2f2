package services

import (
	"errors"
	"strings"
	"testing"
)

const markdownTOML = `+++
title = "Markdown article"
description = "Written in markdown"
category = "physics"
createdAt = "2024-05-01T08:00:00Z"
publishedAt = "2024-05-02T08:00:00Z"

[[authors]]
name = "Ada Lovelace"
slug = "ada"

[professor]
name = "Marie Curie"
slug = "curie"
+++

# Heading

Some *emphasis* here.

---

After the rule.
`

const markdownYAML = `---
title: YAML article
createdAt: "2024-05-01T08:00:00Z"
publishedAt: "2024-05-02T08:00:00Z"
authors:
  - name: Ada Lovelace
    slug: ada
professor:
  name: Marie Curie
  slug: curie
questions:
  - question: Is this YAML?
    answers: ["Yes", "No"]
    correct_answer: "Yes"
---
Plain paragraph.
`

func TestDeserializeMarkdownArticleTOML(t *testing.T) {
	art, err := DeserializeMarkdownArticle([]byte(markdownTOML))
	if err != nil {
		t.Fatalf("DeserializeMarkdownArticle: %v", err)
	}
	if art.Title != "Markdown article" || art.Category != "physics" {
		t.Errorf("front matter not decoded: %+v", art)
	}
	for _, want := range []string{`<h1 id="heading">Heading</h1>`, "<em>emphasis</em>", "<hr>", "After the rule."} {
		if !strings.Contains(art.Body, want) {
			t.Errorf("body %q missing %q", art.Body, want)
		}
	}
	if art.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", art.ReadingTime)
	}
}

func TestDeserializeMarkdownArticleYAML(t *testing.T) {
	art, err := DeserializeMarkdownArticle([]byte(markdownYAML))
	if err != nil {
		t.Fatalf("DeserializeMarkdownArticle: %v", err)
	}
	if art.Title != "YAML article" {
		t.Errorf("Title = %q", art.Title)
	}
	if len(art.Questions) != 1 || art.Questions[0].CorrectAnswer != "Yes" {
		t.Errorf("Questions = %+v", art.Questions)
	}
	if !strings.Contains(art.Body, "<p>Plain paragraph.</p>") {
		t.Errorf("Body = %q", art.Body)
	}
}

func TestDeserializeMarkdownArticleErrors(t *testing.T) {
	tests := map[string]string{
		"no front matter": "# Just markdown\n",
		"unterminated":    "+++\ntitle = \"x\"\n",
		"bad toml":        "+++\ntitle = \n+++\nbody\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DeserializeMarkdownArticle([]byte(content)); !errors.Is(err, ErrParse) {
				t.Errorf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestDecodeArticleFileByExtension(t *testing.T) {
	if _, err := DecodeArticleFile("a.toml", []byte(sampleTOML)); err != nil {
		t.Errorf("toml: %v", err)
	}
	if _, err := DecodeArticleFile("b.md", []byte(markdownTOML)); err != nil {
		t.Errorf("md: %v", err)
	}
	if _, err := DecodeArticleFile("c.json", []byte("{}")); !errors.Is(err, ErrParse) {
		t.Errorf("json: err = %v, want ErrParse", err)
	}
}
