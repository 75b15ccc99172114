package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// Uploader stores multipart files in the public assets directory.
type Uploader struct {
	dir string
}

func NewUploader(dir string) *Uploader {
	return &Uploader{dir: dir}
}

// Save stores the file sent under field and returns its stored name, or ""
// when the request carries no such file.
func (u *Uploader) Save(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	name := sanitizeFilename(fh.Filename)
	if name == "" {
		name = uuid.Must(uuid.NewV4()).String()
	}
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("create assets dir: %w", err)
	}
	if err := c.SaveUploadedFile(fh, filepath.Join(u.dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// Remove deletes a file stored by Save. Empty names are ignored.
func (u *Uploader) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(u.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// sanitizeFilename keeps only the base name so uploads cannot escape the assets dir.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch name {
	case ".", "..", "/":
		return ""
	}
	return name
}
