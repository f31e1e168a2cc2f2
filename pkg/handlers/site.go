package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"beakers-site/pkg/config"
	"beakers-site/pkg/models"
	"beakers-site/pkg/services"
	"beakers-site/pkg/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	g "github.com/maragudk/gomponents"
)

func render(c *gin.Context, status int, node g.Node) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := node.Render(c.Writer); err != nil {
		slog.Error("render failed", "path", c.Request.URL.Path, "error", err)
	}
}

// loadArticle maps every lookup, read or parse failure to not found.
func loadArticle(slug string) (*models.Article, bool) {
	art, err := services.LoadArticle(slug)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			slog.Warn("article could not be loaded", "slug", slug, "error", err)
		}
		return nil, false
	}
	return art, true
}

func answersKey(slug string) string {
	return "answers:" + slug
}

func sessionAnswers(c *gin.Context, slug string) []string {
	raw, ok := sessions.Default(c).Get(answersKey(slug)).(string)
	if !ok {
		return nil
	}
	var answers []string
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil
	}
	return answers
}

func saveSessionAnswers(c *gin.Context, slug string, answers []string) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return
	}
	session := sessions.Default(c)
	session.Set(answersKey(slug), string(raw))
	if err := session.Save(); err != nil {
		slog.Warn("could not save session", "error", err)
	}
}

func IndexPage(c *gin.Context) {
	articles, err := services.ListArticles()
	if err != nil {
		slog.Error("list articles failed", "error", err)
		render(c, http.StatusInternalServerError, views.ErrorPage(http.StatusInternalServerError, "Failed to fetch articles"))
		return
	}
	render(c, http.StatusOK, views.IndexPage(articles, config.Location))
}

func ArticlePage(c *gin.Context) {
	slug := c.Param("slug")
	art, ok := loadArticle(slug)
	if !ok {
		render(c, http.StatusNotFound, views.ErrorPage(http.StatusNotFound, "Article not found"))
		return
	}
	render(c, http.StatusOK, views.ArticlePage(slug, art, sessionAnswers(c, slug), nil, config.Location))
}

// SubmitQuizForm grades the quiz form posted from an article page.
func SubmitQuizForm(c *gin.Context) {
	slug := c.Param("slug")
	art, ok := loadArticle(slug)
	if !ok {
		render(c, http.StatusNotFound, views.ErrorPage(http.StatusNotFound, "Article not found"))
		return
	}

	selected := make([]string, len(art.Questions))
	for i := range art.Questions {
		selected[i] = c.PostForm("q" + strconv.Itoa(i))
	}
	saveSessionAnswers(c, slug, selected)

	result := services.GradeQuiz(art, selected)
	render(c, http.StatusOK, views.ArticlePage(slug, art, selected, &result, config.Location))
}

func personPage(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		person, err := services.FindPerson(role, c.Param("slug"))
		if err != nil {
			render(c, http.StatusNotFound, views.ErrorPage(http.StatusNotFound, fmt.Sprintf("No %s with that name", role)))
			return
		}
		articles, _ := services.ListArticles()
		render(c, http.StatusOK, views.PersonPage(person, articles))
	}
}

var (
	AuthorPage    = personPage("author")
	ProfessorPage = personPage("professor")
)
