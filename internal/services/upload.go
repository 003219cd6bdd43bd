package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"alfredoptarigan/resume-matcher/internal/models"
)

var ErrFileTooLarge = errors.New("file too large")

// UploadReader turns multipart uploads into in-memory documents. Nothing is
// written to disk.
type UploadReader interface {
	Read(file *multipart.FileHeader) (*models.UploadedFile, error)
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{
		maxFileSize: maxFileSize,
	}
}

// Read implements UploadReader.
func (u *uploadReader) Read(file *multipart.FileHeader) (*models.UploadedFile, error) {
	if file.Size > u.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, max size: %d bytes", ErrFileTooLarge, file.Filename, file.Size, u.maxFileSize)
	}

	// Open source file
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(content)) > u.maxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, file.Filename, u.maxFileSize)
	}

	return models.NewUploadedFile(file.Filename, file.Header.Get("Content-Type"), content), nil
}
