package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileKind selects the upload subdirectory and the allowed extensions.
type FileKind string

const (
	KindCV             FileKind = "cvs"
	KindAudio          FileKind = "audio"
	KindProfilePicture FileKind = "profile_pics"
)

var allowedExtensions = map[FileKind]map[string]bool{
	KindCV:             {".pdf": true},
	KindAudio:          {".mp3": true, ".wav": true, ".ogg": true, ".flac": true, ".webm": true, ".m4a": true},
	KindProfilePicture: {".png": true, ".jpg": true, ".jpeg": true, ".gif": true},
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader, kind FileKind) (string, string, error)
	GetFilePath(kind FileKind, filename string) string
	DeleteFile(path string) error
	EnsureUploadDirs() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{uploadPath: uploadPath}
}

// EnsureUploadDirs implements StorageService.
func (s *storageService) EnsureUploadDirs() error {
	for _, kind := range []FileKind{KindCV, KindAudio, KindProfilePicture} {
		dir := filepath.Join(s.uploadPath, string(kind))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveFile implements StorageService. The stored name is uuid-prefixed so
// concurrent uploads of the same filename never collide.
func (s *storageService) SaveFile(file *multipart.FileHeader, kind FileKind) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[kind][ext] {
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	filePath := filepath.Join(s.uploadPath, string(kind), uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

// GetFilePath implements StorageService.
func (s *storageService) GetFilePath(kind FileKind, filename string) string {
	return filepath.Join(s.uploadPath, string(kind), filename)
}

// DeleteFile implements StorageService. A missing file is not an error; the
// record is what matters.
func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
