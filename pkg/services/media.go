package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"beakers-site/pkg/config"

	"github.com/google/uuid"
)

type MediaFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"` // value for an article's image.url
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true, ".avif": true,
}

// GetMediaConfig returns the directory images are stored in and the URL
// prefix they are served under. site.yml overrides the environment.
func GetMediaConfig() (string, string, error) {
	cfg, err := LoadSiteConfig()
	if err != nil {
		return "", "", err
	}
	dir, public := config.MediaDir, config.MediaURL
	if cfg.MediaFolder != "" {
		dir = SafeJoin(config.RepoPath, "", cfg.MediaFolder)
		if dir == "" {
			return "", "", fmt.Errorf("media_folder %q escapes the repository", cfg.MediaFolder)
		}
	}
	if cfg.PublicFolder != "" {
		public = cfg.PublicFolder
	}
	if !strings.HasPrefix(public, "/") && !strings.HasPrefix(public, "http") {
		public = "/" + public
	}
	return dir, public, nil
}

func mediaURL(public, name string) string {
	if strings.HasPrefix(public, "http") {
		return strings.TrimSuffix(public, "/") + "/" + name
	}
	return path.Join(public, name)
}

func ListMediaFiles() ([]MediaFile, error) {
	mediaDir, public, err := GetMediaConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		return nil, err
	}

	files := []MediaFile{}
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, MediaFile{
			Name: entry.Name(),
			Size: info.Size(),
			URL:  mediaURL(public, entry.Name()),
		})
	}
	return files, nil
}

// SaveMediaFile stores an uploaded article image under a collision-free name.
func SaveMediaFile(header *multipart.FileHeader) (*MediaFile, error) {
	mediaDir, public, err := GetMediaConfig()
	if err != nil {
		return nil, err
	}
	if header.Size > config.MaxUpload {
		return nil, fmt.Errorf("file is larger than %d bytes", config.MaxUpload)
	}

	filename := filepath.Base(header.Filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return nil, fmt.Errorf("unsupported image type %q", ext)
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = fmt.Sprintf("%s_%s%s", name, uuid.NewString()[:8], ext)

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return nil, err
	}
	dst, err := os.Create(filepath.Join(mediaDir, filename))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return &MediaFile{
		Name: filename,
		Size: header.Size,
		URL:  mediaURL(public, filename),
	}, nil
}

func DeleteMediaFile(filename string) error {
	mediaDir, _, err := GetMediaConfig()
	if err != nil {
		return err
	}
	fullPath := SafeJoin(mediaDir, "", filepath.Base(filename))
	if fullPath == "" || filename == "" {
		return fmt.Errorf("invalid media path")
	}
	return os.Remove(fullPath)
}
