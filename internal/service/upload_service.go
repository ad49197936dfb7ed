package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blackbook/internal/config"
	"blackbook/internal/middleware"
	"blackbook/internal/models"

	"github.com/google/uuid"
)

// UploadService stores uploaded images on local disk under a single
// directory and hands back web-servable references.
type UploadService struct {
	dir     string
	maxSize int64
	allowed map[string]struct{}
}

func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{
		dir:     cfg.UploadDir,
		maxSize: cfg.MaxUploadSize,
		allowed: cfg.AllowedExtensionSet(),
	}
}

// Save validates and persists an uploaded file. The extension check and the
// size check both run before any bytes touch disk, so a rejected upload
// leaves no partial file behind. The stored name is a fresh UUID plus the
// original extension; the client-supplied name never reaches the filesystem.
func (s *UploadService) Save(originalName string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := s.allowed[ext]; !ok {
		return "", models.NewUnsupportedTypeError(ext)
	}

	if int64(len(content)) > s.maxSize {
		return "", models.NewTooLargeError(s.maxSize)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", models.NewInternalError(fmt.Errorf("creating upload directory: %w", err))
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", models.NewInternalError(fmt.Errorf("writing upload: %w", err))
	}

	return "/uploads/" + name, nil
}

// Remove deletes the file behind a reference previously returned by Save.
// Best effort: a missing file is not an error, and callers treat any failure
// as non-fatal since the owning row is already gone.
func (s *UploadService) Remove(ref string) {
	name := strings.TrimPrefix(ref, "/uploads/")
	if name == "" || name == ref {
		return
	}
	// Base strips any traversal a stored reference could smuggle in.
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to remove upload", "path", path, "error", err)
	}
}
