package handlers

import (
	"net/http"

	"beakers-site/pkg/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route of the site and the editor.
func NewRouter(store sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(sessions.Sessions("beakers", store))

	r.Static("/static", "./static")
	r.Static(config.MediaURL, config.MediaDir)

	// --- Public site ---
	r.GET("/", IndexPage)
	r.GET("/article/:slug", ArticlePage)
	r.POST("/article/:slug", SubmitQuizForm)
	r.GET("/author/:slug", AuthorPage)
	r.GET("/professor/:slug", ProfessorPage)

	api := r.Group("/api")
	{
		api.GET("/articles", ListArticles)
		api.GET("/articles/:slug", GetArticle)
		api.GET("/articles/:slug/answers", GetAnswers)
		api.POST("/articles/:slug/answers", SubmitAnswers)
		api.GET("/authors/:slug", GetAuthor)
		api.GET("/professors/:slug", GetProfessor)
	}

	// --- Auth Routes ---
	r.GET("/login", LoginPage)
	r.GET("/login/github", GithubLogin)
	r.GET("/auth/callback", AuthCallback)
	r.GET("/logout", Logout)

	// --- Editor (Authorized) ---
	authorized := r.Group("/")
	authorized.Use(AuthRequired)
	{
		authorized.GET("/editor", EditorIndex)

		authorized.POST("/api/bridge/get_article", BridgeGetArticle)

		editor := authorized.Group("/api/editor")
		{
			editor.GET("/new", DefaultArticle)
			editor.GET("/article/:slug", EditArticle)
			editor.POST("/article/:slug", SaveArticle)
			editor.GET("/article/:slug/diff", GetDiff)
			editor.POST("/create", CreateArticle)
			editor.POST("/questions", GenerateQuestions)
			editor.POST("/publish", HandlePublish)
			editor.POST("/sync", HandleSync)
			editor.POST("/push", HandlePush)
			editor.GET("/changes", ListChanges)
			editor.GET("/categories", GetCategories)

			editor.GET("/media", ListMedia)
			editor.POST("/media", UploadMedia)
			editor.DELETE("/media", DeleteMedia)

			editor.GET("/state", GetState)
			editor.PUT("/state/answers", SetSelectedAnswers)
			editor.DELETE("/state/answers", ClearSelectedAnswers)
			editor.PUT("/state/article", SetCurrentArticle)
			editor.DELETE("/state/article", ClearCurrentArticle)
			editor.PUT("/state/token", SetToken)
			editor.DELETE("/state/token", ClearToken)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}
