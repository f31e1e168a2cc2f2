package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	ListenAddr  = ":8080"
	RepoPath    = "./repo"
	RepoURL     = ""
	ArticlesDir = "./repo/articles"
	SiteConfig  = "./repo/site.yml"

	CacheConcurrency = 8

	// Media settings
	MediaDir  = "./repo/static/images"
	MediaURL  = "/images/"
	MaxUpload = int64(10 << 20)

	// Git settings
	GitUserEmail = "app@thebeakers.com"
	GitUserName  = "Professor App"
	GitBranch    = "main"
	GitRemote    = "origin"
	SyncSchedule = ""

	// GitHub contents API target
	GitHubOwner = ""
	GitHubRepo  = ""

	// Question generation
	GeminiAPIKey   = ""
	GeminiModel    = "gemini-2.0-flash"
	QuestionCount  = 10
	RequestTimeout = 60 * time.Second

	Location = time.Local
	LogLevel = slog.LevelInfo
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			slog.Warn("ignoring non-numeric setting", "key", key, "value", v)
		}
		return fallback
	}

	appURL := GetAppURL()
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	RepoPath = getEnv("REPO_PATH", "./repo")
	RepoURL = getEnv("REPO_URL", "")
	ArticlesDir = getEnv("ARTICLES_DIR", filepath.Join(RepoPath, "articles"))
	SiteConfig = getEnv("SITE_CONFIG", filepath.Join(RepoPath, "site.yml"))

	MediaDir = getEnv("MEDIA_DIR", filepath.Join(RepoPath, "static", "images"))
	MediaURL = getEnv("MEDIA_URL", "/images/")

	GitUserEmail = getEnv("GIT_USER_EMAIL", "app@thebeakers.com")
	GitUserName = getEnv("GIT_USER_NAME", "Professor App")
	GitBranch = getEnv("GIT_BRANCH", "main")
	GitRemote = getEnv("GIT_REMOTE", "origin")
	SyncSchedule = getEnv("SYNC_SCHEDULE", "")

	GitHubOwner = getEnv("GITHUB_OWNER", "")
	GitHubRepo = getEnv("GITHUB_REPO", "")

	GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
	GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.0-flash")
	QuestionCount = getInt("QUESTION_COUNT", 10)

	CacheConcurrency = getInt("CACHE_CONCURRENCY", 8)
	if CacheConcurrency < 1 {
		CacheConcurrency = 1
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			RequestTimeout = d
		}
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			Location = loc
		} else {
			slog.Warn("unknown timezone, using local", "timezone", tz, "error", err)
		}
	}

	LogLevel = parseLevel(getEnv("LOG_LEVEL", "info"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LogLevel})))

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo", "user"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return strings.TrimSuffix(appURL, "/")
}

func SessionSecret() []byte {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		slog.Warn("SESSION_SECRET not set, using an insecure development secret")
		secret = "beakers-development-secret"
	}
	return []byte(secret)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
