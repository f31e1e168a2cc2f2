package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"beakers-site/pkg/services"

	"github.com/gin-gonic/gin"
)

func ListArticles(c *gin.Context) {
	articles, err := services.ListArticles()
	if err != nil {
		slog.Error("list articles failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	art, ok := loadArticle(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, art)
}

// SubmitAnswers grades {"answers": [...]} against the article's questions and
// remembers the selection in the visitor's session.
func SubmitAnswers(c *gin.Context) {
	var req struct {
		Answers []string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	slug := c.Param("slug")
	art, ok := loadArticle(slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	saveSessionAnswers(c, slug, req.Answers)
	c.JSON(http.StatusOK, services.GradeQuiz(art, req.Answers))
}

func GetAnswers(c *gin.Context) {
	answers := sessionAnswers(c, c.Param("slug"))
	if answers == nil {
		answers = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

func getPerson(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		person, err := services.FindPerson(role, c.Param("slug"))
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			slog.Error("person lookup failed", "role", role, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
			return
		}
		c.JSON(http.StatusOK, person)
	}
}

var (
	GetAuthor    = getPerson("author")
	GetProfessor = getPerson("professor")
)
