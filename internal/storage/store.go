// Package storage is the file-storage collaborator: it accepts an uploaded
// binary and returns a stored-file reference. Files land on local disk.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/origen-app/origen-server/internal/common"
)

var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".pdf":  {},
}

type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Save writes the upload under a unique name and returns its reference
// (the stored path). Only JPEG, PNG, and PDF files are accepted.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExts[ext]; !ok {
		return "", common.NewAppError("INVALID_FILE_TYPE",
			"Invalid file type. Only JPEG, PNG, and PDF files are allowed.", common.ErrInvalidInput)
	}

	name := fmt.Sprintf("receipt-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing upload: %w", err)
	}

	s.logger.Info("stored upload", "path", path, "bytes", n)
	return path, nil
}
