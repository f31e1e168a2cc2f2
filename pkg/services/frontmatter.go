package services

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"beakers-site/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Article file extensions, in lookup order.
var articleExtensions = []string{".toml", ".md"}

// DecodeArticleFile picks the decoder from the file name's extension.
func DecodeArticleFile(name string, content []byte) (*models.Article, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return DeserializeArticle(content)
	case ".md":
		return DeserializeMarkdownArticle(content)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrParse, filepath.Ext(name))
	}
}

// splitFrontMatter separates a "+++" (TOML) or "---" (YAML) block from the
// document body. The closing fence must sit on its own line.
func splitFrontMatter(content []byte) (fm []byte, body []byte, format string, err error) {
	str := strings.ReplaceAll(string(content), "\r\n", "\n")
	var fence string
	switch {
	case strings.HasPrefix(str, "+++\n"):
		fence, format = "+++", "toml"
	case strings.HasPrefix(str, "---\n"):
		fence, format = "---", "yaml"
	default:
		return nil, nil, "", fmt.Errorf("%w: missing front matter", ErrParse)
	}

	rest := str[len(fence)+1:]
	end := strings.Index(rest, "\n"+fence+"\n")
	if end < 0 {
		if strings.HasSuffix(rest, "\n"+fence) {
			end = len(rest) - len(fence) - 1
		} else {
			return nil, nil, "", fmt.Errorf("%w: unterminated %s front matter", ErrParse, format)
		}
	}
	fm = []byte(rest[:end])
	if after := end + len(fence) + 2; after < len(rest) {
		body = []byte(rest[after:])
	}
	return fm, bytes.TrimSpace(body), format, nil
}

// DeserializeMarkdownArticle reads an article whose metadata lives in front
// matter and whose body is Markdown. The body is rendered to HTML.
func DeserializeMarkdownArticle(content []byte) (*models.Article, error) {
	fm, body, format, err := splitFrontMatter(content)
	if err != nil {
		slog.Error("error reading front matter", "error", err)
		return nil, err
	}

	var art models.Article
	switch format {
	case "toml":
		err = toml.Unmarshal(fm, &art)
	case "yaml":
		err = yaml.Unmarshal(fm, &art)
	}
	if err != nil {
		slog.Error("error deserializing front matter", "format", format, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	rendered, err := RenderMarkdown(body)
	if err != nil {
		return nil, fmt.Errorf("%w: render markdown: %w", ErrParse, err)
	}
	art.Body = rendered

	if err := finishArticle(&art); err != nil {
		return nil, err
	}
	return &art, nil
}

// RenderMarkdown converts Markdown to HTML.
func RenderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
