package utils

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxUploadSize caps profile images at 10 MiB.
const maxUploadSize = 10 << 20

// SaveProfileImage stores the optional "file" multipart field under dir and
// returns the stored path. It returns "" when the request carries no file,
// which callers treat as "leave the profile image unchanged".
func SaveProfileImage(r *http.Request, dir string) (string, error) {
	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || contentType != "multipart/form-data" {
		return "", nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := "file-" + uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
