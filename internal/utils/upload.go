package utils

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/constants"
)

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".svg":  true,
	".avif": true,
}

// SaveImage validates and stores an uploaded profile image under dir with a
// timestamp-prefixed filename, and returns the stored name.
func SaveImage(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("only image files are allowed (jpeg, jpg, png, gif, webp, bmp, tiff, svg, avif)")
	}
	if file.Size > constants.MaxImageSize {
		return "", fmt.Errorf("image must not exceed %d bytes", constants.MaxImageSize)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return name, nil
}

// DeleteImage removes a stored image by name. Failures are logged, never
// surfaced; a missing file is not an error.
func DeleteImage(dir, name string) {
	if name == "" {
		return
	}
	path := filepath.Join(dir, filepath.Base(name))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("failed to delete image file %s: %v", name, err)
	}
}
