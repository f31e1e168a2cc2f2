package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeContentsAPI struct {
	mu      sync.Mutex
	files   map[string]string // path -> sha
	puts    []githubPutFileRequest
	authHdr string
}

func (f *fakeContentsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authHdr = r.Header.Get("Authorization")

	path := strings.TrimPrefix(r.URL.Path, "/repos/thebeakers/site/contents/")
	switch r.Method {
	case http.MethodGet:
		sha, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"sha": sha})
	case http.MethodPut:
		var req githubPutFileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Message == "conflict" {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message": "sha does not match"}`))
			return
		}
		f.puts = append(f.puts, req)
		status := http.StatusCreated
		if _, ok := f.files[path]; ok {
			status = http.StatusOK
		}
		f.files[path] = "newsha"
		w.WriteHeader(status)
		w.Write([]byte(`{"commit": {"sha": "c0ffee", "message": "ok"}}`))
	}
}

func newTestGitHub(t *testing.T, api *fakeContentsAPI) *GitHubClient {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	old := GitHubAPIURL
	GitHubAPIURL = srv.URL
	t.Cleanup(func() { GitHubAPIURL = old })
	return NewGitHubClient(context.Background(), "secret-token")
}

func TestUploadFileCreatesThenUpdates(t *testing.T) {
	api := &fakeContentsAPI{files: map[string]string{}}
	client := newTestGitHub(t, api)
	ctx := context.Background()

	msg, err := client.UploadFile(ctx, "thebeakers", "site", "articles/a.toml", "add a", []byte("title = \"A\""))
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if !strings.Contains(msg, "successfully created") || !strings.Contains(msg, "c0ffee") {
		t.Errorf("msg = %q", msg)
	}
	if api.authHdr != "Bearer secret-token" {
		t.Errorf("Authorization = %q", api.authHdr)
	}

	msg, err = client.UploadFile(ctx, "thebeakers", "site", "articles/a.toml", "edit a", []byte("title = \"B\""))
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if !strings.Contains(msg, "successfully updated") {
		t.Errorf("msg = %q", msg)
	}

	if len(api.puts) != 2 {
		t.Fatalf("got %d PUTs, want 2", len(api.puts))
	}
	if api.puts[0].SHA != "" || api.puts[1].SHA != "newsha" {
		t.Errorf("shas = %q, %q", api.puts[0].SHA, api.puts[1].SHA)
	}
	content, _ := base64.StdEncoding.DecodeString(api.puts[1].Content)
	if string(content) != `title = "B"` {
		t.Errorf("content = %q", content)
	}
}

func TestUploadFileReportsAPIError(t *testing.T) {
	api := &fakeContentsAPI{files: map[string]string{}}
	client := newTestGitHub(t, api)

	_, err := client.UploadFile(context.Background(), "thebeakers", "site", "articles/a.toml", "conflict", []byte("x"))
	if err == nil || !strings.Contains(err.Error(), "sha does not match") {
		t.Errorf("err = %v, want GitHub message", err)
	}
}
