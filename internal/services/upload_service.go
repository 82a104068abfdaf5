package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/constants"
)

var (
	ErrNoFileUploaded      = errors.New("no file uploaded")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("only image files are allowed")
)

// UploadService stores uploaded images on local disk.
type UploadService struct {
	dir      string
	maxBytes int64
}

// NewUploadService creates a new UploadService writing into dir.
func NewUploadService(dir string, maxBytes int64) *UploadService {
	if dir == "" {
		dir = "uploads"
	}
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxUploadBytes
	}
	return &UploadService{
		dir:      dir,
		maxBytes: maxBytes,
	}
}

// Dir returns the directory uploads are written to.
func (s *UploadService) Dir() string {
	return s.dir
}

// MaxBytes returns the per-file size limit.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// SaveImage validates an uploaded image and stores it under a random name.
// It returns the public URL of the stored file.
func (s *UploadService) SaveImage(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", ErrNoFileUploaded
	}
	if header.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrUnsupportedFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + mtype.Extension()
	if err := writeFile(filepath.Join(s.dir, name), io.LimitReader(src, s.maxBytes)); err != nil {
		return "", err
	}

	return constants.UploadURLPrefix + "/" + name, nil
}

// writeFile copies r into a new file at path. A partially written file is
// removed.
func writeFile(path string, r io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
