package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// UploadDir returns the root directory for uploaded files.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// NormalizeFilename cleans an uploaded filename: spaces become
// underscores and duplicated image extensions like ".jpg.jpg" collapse
// to one. The returned name is prefixed with a timestamp so repeated
// uploads of the same file never collide.
func NormalizeFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)

	for {
		e := strings.ToLower(filepath.Ext(base))
		if e == ".jpg" || e == ".jpeg" || e == ".png" || e == ".gif" || e == ".webp" {
			base = strings.TrimSuffix(base, filepath.Ext(base))
		} else {
			break
		}
	}
	base = strings.ReplaceAll(base, " ", "_")

	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), base, ext)
}

// SaveUpload writes a multipart file under UPLOAD_DIR/<subdir> and
// returns the public URL to store back into the owning record.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	saveDir := filepath.Join(UploadDir(), subdir)
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	filename := NormalizeFilename(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	return fmt.Sprintf("%s/uploads/%s/%s", base, subdir, filename), nil
}
