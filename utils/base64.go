package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxImageBytes = 5 * 1024 * 1024

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// SaveBase64Image decodes a plain or data-URL base64 image into folder and
// returns the stored file name.
func SaveBase64Image(b64, folder string) (string, error) {
	if i := strings.Index(b64, ","); strings.HasPrefix(b64, "data:") && i > 0 {
		b64 = b64[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("invalid base64 image: %w", err)
	}
	return SaveImage(data, folder)
}

// SaveImage stores raw image bytes under a random name in folder.
func SaveImage(data []byte, folder string) (string, error) {
	if len(data) > MaxImageBytes {
		return "", errors.New("image size exceeds 5MB limit")
	}
	ext, ok := extByType[http.DetectContentType(data)]
	if !ok {
		return "", errors.New("unsupported image type")
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(folder, name), data, 0644); err != nil {
		return "", err
	}
	return name, nil
}

// RemoveUpload deletes a previously stored file; a missing file is not an error.
func RemoveUpload(folder, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(folder, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
