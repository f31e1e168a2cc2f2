package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"beakers-site/pkg/config"

	"golang.org/x/oauth2"
)

var GitHubAPIURL = "https://api.github.com"

type githubPutFileRequest struct {
	Message   string          `json:"message"`
	Content   string          `json:"content"`
	SHA       string          `json:"sha,omitempty"`
	Branch    string          `json:"branch,omitempty"`
	Committer githubCommitter `json:"committer"`
}

type githubCommitter struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type githubPutFileResponse struct {
	Commit struct {
		SHA     string `json:"sha"`
		Message string `json:"message"`
	} `json:"commit"`
}

// GitHubClient writes files through the GitHub contents API.
type GitHubClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewGitHubClient(ctx context.Context, token string) *GitHubClient {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = config.RequestTimeout
	return &GitHubClient{httpClient: hc, baseURL: strings.TrimSuffix(GitHubAPIURL, "/")}
}

func (g *GitHubClient) contentsURL(owner, repo, path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.baseURL, url.PathEscape(owner), url.PathEscape(repo), strings.TrimPrefix(path, "/"))
}

func (g *GitHubClient) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "beakers-site")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// currentSHA returns the blob sha of an existing file, or "" when the file
// does not exist yet.
func (g *GitHubClient) currentSHA(ctx context.Context, owner, repo, path, branch string) (string, error) {
	u := g.contentsURL(owner, repo, path)
	if branch != "" {
		u += "?ref=" + url.QueryEscape(branch)
	}
	req, err := g.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error (GET %s): %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var file struct {
			SHA string `json:"sha"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
			slog.Warn("could not parse file info, assuming new file", "path", path, "error", err)
			return "", nil
		}
		return file.SHA, nil
	case http.StatusNotFound:
		slog.Info("file not found on GitHub, creating it", "path", path)
		return "", nil
	default:
		return "", fmt.Errorf("GitHub API error (GET %s): %s - %s", path, resp.Status, readGitHubError(resp.Body))
	}
}

// UploadFile creates or updates path in owner/repo with content and returns a
// short description of the resulting commit.
func (g *GitHubClient) UploadFile(ctx context.Context, owner, repo, path, message string, content []byte) (string, error) {
	sha, err := g.currentSHA(ctx, owner, repo, path, config.GitBranch)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(githubPutFileRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
		Branch:  config.GitBranch,
		Committer: githubCommitter{
			Name:  config.GitUserName,
			Email: config.GitUserEmail,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := g.newRequest(ctx, http.MethodPut, g.contentsURL(owner, repo, path), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error (PUT %s): %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := readGitHubError(resp.Body)
		slog.Error("failed to upload file", "path", path, "status", resp.Status, "message", msg)
		return "", fmt.Errorf("GitHub API error (PUT %s): %s - %s", path, resp.Status, msg)
	}

	var put githubPutFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&put); err != nil {
		return "", fmt.Errorf("failed to parse GitHub API response (PUT %s): %w", path, err)
	}

	action := "created"
	if sha != "" {
		action = "updated"
	}
	msg := fmt.Sprintf("File %s successfully %s in %s/%s. Commit SHA: %s", path, action, owner, repo, put.Commit.SHA)
	slog.Info(msg)
	return msg, nil
}

func readGitHubError(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return "could not read error response body"
	}
	var ghErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &ghErr) == nil && ghErr.Message != "" {
		return ghErr.Message
	}
	return strings.TrimSpace(string(raw))
}

// PublishArticle uploads the saved file of slug to the configured GitHub
// repository.
func PublishArticle(ctx context.Context, token, slug string) (string, error) {
	if config.GitHubOwner == "" || config.GitHubRepo == "" {
		return "", fmt.Errorf("GITHUB_OWNER and GITHUB_REPO must be set to publish")
	}
	path, err := FindArticleFile(slug)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	repoPath, err := repoRelative(path)
	if err != nil {
		return "", err
	}
	client := NewGitHubClient(ctx, token)
	return client.UploadFile(ctx, config.GitHubOwner, config.GitHubRepo, repoPath, "Update article "+slug, content)
}
