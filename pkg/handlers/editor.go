package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"beakers-site/pkg/config"
	"beakers-site/pkg/models"
	"beakers-site/pkg/services"
	"beakers-site/pkg/state"
	"beakers-site/pkg/viewmodel"
	"beakers-site/pkg/views"

	"github.com/gin-gonic/gin"
)

// Generator drafts quiz questions; nil disables generation.
var Generator services.QuestionGenerator

func EditorIndex(c *gin.Context) {
	articles, err := services.ListArticles()
	if err != nil {
		render(c, http.StatusInternalServerError, views.ErrorPage(http.StatusInternalServerError, "Failed to fetch articles"))
		return
	}
	render(c, http.StatusOK, views.EditorPage(articles))
}

// BridgeGetArticle answers the editor shell's get_article(filePath) call.
// filePath is relative to the content repository.
func BridgeGetArticle(c *gin.Context) {
	var req struct {
		FilePath string `json:"filePath" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath := services.SafeJoin(config.RepoPath, "", req.FilePath)
	if fullPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
		return
	}
	art, err := services.LoadArticleFile(fullPath)
	if err != nil {
		slog.Error("error invoking get_article", "path", req.FilePath, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse article: " + err.Error()})
		return
	}
	state.Default.SetArticle(art)
	c.JSON(http.StatusOK, art)
}

type articleViewResponse struct {
	Article     *models.Article `json:"article"`
	CreatedAt   string          `json:"createdAtDisplay"`
	PublishedAt string          `json:"publishedAtDisplay"`
	Authors     int             `json:"authorCount"`
	Questions   int             `json:"questionCount"`
}

func newArticleViewResponse(v *viewmodel.ArticleView) articleViewResponse {
	return articleViewResponse{
		Article:     v.Article(),
		CreatedAt:   viewmodel.FormatDate(v.CreatedAt.Get(), config.Location),
		PublishedAt: viewmodel.FormatDate(v.PublishedAt.Get(), config.Location),
		Authors:     len(v.Authors.Get()),
		Questions:   len(v.Questions.Get()),
	}
}

// EditArticle loads an article for editing and makes it the current one.
func EditArticle(c *gin.Context) {
	art, ok := loadArticle(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	view, err := viewmodel.NewArticleView(art, config.Location)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	state.Default.SetArticle(art)
	c.JSON(http.StatusOK, newArticleViewResponse(view))
}

func DefaultArticle(c *gin.Context) {
	c.JSON(http.StatusOK, newArticleViewResponse(viewmodel.DefaultArticleView(config.Location)))
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrExist):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
	default:
		slog.Error("editor request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func SaveArticle(c *gin.Context) {
	var art models.Article
	if err := c.ShouldBindJSON(&art); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := services.SaveArticle(c.Param("slug"), &art); err != nil {
		writeServiceError(c, err)
		return
	}
	state.Default.SetArticle(&art)
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func CreateArticle(c *gin.Context) {
	var req struct {
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	art, err := services.CreateArticle(req.Slug)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	state.Default.SetArticle(art)
	c.JSON(http.StatusOK, gin.H{"status": "created", "article": art})
}

// GenerateQuestions drafts questions for the posted body, or for the stored
// article when the body is empty.
func GenerateQuestions(c *gin.Context) {
	if Generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrGeneratorDisabled.Error()})
		return
	}
	var req struct {
		Body  string `json:"body"`
		Count int    `json:"count" binding:"gte=0,lte=30"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	body := req.Body
	if body == "" {
		if art := state.Default.Article.Get(); art != nil {
			body = art.Body
		}
	}
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No article body to generate questions from"})
		return
	}

	questions, err := Generator.GenerateQuestions(c.Request.Context(), body, req.Count)
	if err != nil {
		slog.Error("question generation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func publishToken(c *gin.Context) string {
	if token := sessionToken(c); token != "" {
		return token
	}
	token, _ := state.Default.Token()
	return token
}

func HandlePublish(c *gin.Context) {
	var req struct {
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	msg, err := services.PublishArticle(c.Request.Context(), publishToken(c), req.Slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "log": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": msg})
}

func HandleSync(c *gin.Context) {
	log, err := services.SyncRepo(publishToken(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

func HandlePush(c *gin.Context) {
	log, err := services.PublishRepo(publishToken(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

func ListChanges(c *gin.Context) {
	changed, err := services.ChangedArticles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read repository status"})
		return
	}
	c.JSON(http.StatusOK, changed)
}

func GetDiff(c *gin.Context) {
	diff, err := services.ArticleDiff(c.Param("slug"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	diffType := "none"
	if diff != "" {
		diffType = "git"
	}
	c.JSON(http.StatusOK, gin.H{"diff": diff, "type": diffType})
}

func GetCategories(c *gin.Context) {
	cfg, err := services.LoadSiteConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse config"})
		return
	}
	categories := cfg.Categories
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func GetState(c *gin.Context) {
	c.JSON(http.StatusOK, state.Default.Snapshot())
}

func SetSelectedAnswers(c *gin.Context) {
	var req struct {
		Answers []string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	state.Default.SetSelectedAnswers(req.Answers)
	c.JSON(http.StatusOK, state.Default.Snapshot())
}

func ClearSelectedAnswers(c *gin.Context) {
	state.Default.ClearSelectedAnswers()
	c.JSON(http.StatusOK, state.Default.Snapshot())
}

func SetCurrentArticle(c *gin.Context) {
	var art models.Article
	if err := c.ShouldBindJSON(&art); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	state.Default.SetArticle(&art)
	c.JSON(http.StatusOK, state.Default.Snapshot())
}

func ClearCurrentArticle(c *gin.Context) {
	state.Default.ClearArticle()
	c.JSON(http.StatusOK, state.Default.Snapshot())
}

func SetToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	state.Default.SetToken(req.Token)
	c.JSON(http.StatusOK, state.Default.Snapshot())
}

func ClearToken(c *gin.Context) {
	state.Default.ClearToken()
	c.JSON(http.StatusOK, state.Default.Snapshot())
}
