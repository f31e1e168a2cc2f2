package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"beakers-site/pkg/config"
	"beakers-site/pkg/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	tokenKey = "access_token"
	stateKey = "oauth_state"
)

func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	token := session.Get(tokenKey)
	if token == nil {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
		return
	}
	c.Next()
}

// sessionToken returns the signed-in editor's GitHub token.
func sessionToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(tokenKey).(string)
	return token
}

func LoginPage(c *gin.Context) {
	render(c, http.StatusOK, views.LoginPage())
}

func GithubLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(stateKey, state)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Session error")
		return
	}
	url := config.OauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	expected, _ := session.Get(stateKey).(string)
	if expected == "" || c.Query("state") != expected {
		c.String(http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	session.Delete(stateKey)

	token, err := config.OauthConf.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		slog.Error("oauth exchange failed", "error", err)
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	session.Set(tokenKey, token.AccessToken)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Session error")
		return
	}
	c.Redirect(http.StatusFound, "/editor")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}
