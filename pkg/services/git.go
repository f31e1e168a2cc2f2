package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"beakers-site/pkg/config"

	"github.com/robfig/cron/v3"
)

// ExecuteGitWithToken runs git in dir. Any argument equal to the configured
// remote name is replaced by the remote URL carrying token, and the token is
// scrubbed from the returned output.
func ExecuteGitWithToken(dir, token string, args ...string) (string, error) {
	if token == "" {
		return runGit(dir, args...)
	}

	cmdGetUrl := exec.Command("git", "remote", "get-url", config.GitRemote)
	cmdGetUrl.Dir = dir
	outUrl, err := cmdGetUrl.Output()
	if err != nil {
		return "Failed to get remote url", err
	}
	remoteUrl := strings.TrimSpace(string(outUrl))
	u, err := url.Parse(remoteUrl)
	if err != nil || u.Scheme == "" {
		return "Invalid remote url", fmt.Errorf("remote %q is not an http(s) url", remoteUrl)
	}
	u.User = url.UserPassword("oauth2", token)
	authenticatedUrl := u.String()

	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == config.GitRemote {
			newArgs[i] = authenticatedUrl
		}
	}
	output, err := runGit(dir, newArgs...)
	safeLog := strings.ReplaceAll(output, authenticatedUrl, remoteUrl)
	safeLog = strings.ReplaceAll(safeLog, token, "***")
	return safeLog, err
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// EnsureRepo clones the content repository when it is not on disk yet.
func EnsureRepo() error {
	info, err := os.Stat(config.RepoPath)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("repo path %s is not a directory", config.RepoPath)
	case err == nil:
		if _, err := os.Stat(filepath.Join(config.RepoPath, ".git")); err != nil {
			slog.Warn("content directory is not a git checkout, sync disabled", "path", config.RepoPath)
		}
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	if config.RepoURL == "" {
		slog.Warn("content directory missing and REPO_URL unset", "path", config.RepoPath)
		return os.MkdirAll(config.ArticlesDir, 0755)
	}
	slog.Info("cloning content repository", "url", config.RepoURL, "path", config.RepoPath)
	out, err := runGit(".", "clone", "--branch", config.GitBranch, config.RepoURL, config.RepoPath)
	if err != nil {
		return fmt.Errorf("clone %s: %w: %s", config.RepoURL, err, out)
	}
	return nil
}

// SyncRepo pulls the configured branch and drops the article listing cache.
func SyncRepo(token string) (string, error) {
	log, err := ExecuteGitWithToken(config.RepoPath, token, "pull", "--ff-only", config.GitRemote, config.GitBranch)
	if err == nil {
		InvalidateCache()
	}
	return log, err
}

// PublishRepo commits every pending change and pushes it.
func PublishRepo(token string) (string, error) {
	if out, err := runGit(config.RepoPath, "add", "."); err != nil {
		return out, err
	}
	msg := fmt.Sprintf("Update articles: %s", time.Now().Format("2006-01-02 15:04:05"))
	commitOut, _ := runGit(config.RepoPath,
		"-c", "user.name="+config.GitUserName,
		"-c", "user.email="+config.GitUserEmail,
		"commit", "-m", msg)
	pushOut, err := ExecuteGitWithToken(config.RepoPath, token, "push", config.GitRemote, config.GitBranch)
	InvalidateCache()
	return commitOut + pushOut, err
}

// ChangedArticles lists article files with uncommitted changes, relative to
// the repository root.
func ChangedArticles() ([]string, error) {
	dirty, err := getGitDirtyFiles(config.RepoPath)
	if err != nil {
		return nil, err
	}
	prefix, err := filepath.Rel(config.RepoPath, config.ArticlesDir)
	if err != nil {
		return nil, err
	}
	return filterArticlePaths(dirty, filepath.ToSlash(prefix)), nil
}

// filterArticlePaths returns the sorted paths that lie under dir.
func filterArticlePaths(paths map[string]bool, dir string) []string {
	prefix := dir + "/"
	changed := []string{}
	for path := range paths {
		if strings.HasPrefix(path, prefix) || strings.HasPrefix(path+"/", prefix) {
			changed = append(changed, path)
		}
	}
	slices.Sort(changed)
	return changed
}

// ArticleDiff returns the uncommitted diff of one article file.
func ArticleDiff(slug string) (string, error) {
	path, err := FindArticleFile(slug)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(config.RepoPath, path)
	if err != nil {
		return "", err
	}
	return runGit(config.RepoPath, "diff", "HEAD", "--", filepath.ToSlash(rel))
}

// StartSyncScheduler pulls the content repository on a cron schedule.
func StartSyncScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		out, err := SyncRepo("")
		if err != nil {
			slog.Error("scheduled sync failed", "error", err, "output", out)
			return
		}
		slog.Info("scheduled sync finished", "output", strings.TrimSpace(out))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_SCHEDULE %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
