package models

import (
	"mime"
	"path/filepath"
	"strings"
)

const (
	MIMEPlainText   = "text/plain"
	MIMEPDF         = "application/pdf"
	mimeOctetStream = "application/octet-stream"
)

// UploadedFile is a document handed to the intake, fully read into memory.
type UploadedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

func NewUploadedFile(name, declaredType string, content []byte) *UploadedFile {
	return &UploadedFile{
		Name:        name,
		ContentType: ResolveContentType(name, declaredType),
		Content:     content,
	}
}

// ResolveContentType strips MIME parameters from the declared type and falls
// back to the file extension when the declared type is missing or generic.
func ResolveContentType(name, declaredType string) string {
	declared := strings.TrimSpace(declaredType)
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			declared = mediaType
		}
		declared = strings.ToLower(declared)
	}

	if declared != "" && declared != mimeOctetStream {
		return declared
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return MIMEPlainText
	case ".pdf":
		return MIMEPDF
	}

	if declared == "" {
		return mimeOctetStream
	}
	return declared
}
