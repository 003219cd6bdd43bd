package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/resume-matcher/internal/models"
)

// ProgressFunc receives the extraction progress as a percentage.
type ProgressFunc func(percent int)

type DocumentExtractor interface {
	Extract(ctx context.Context, file *models.UploadedFile, onProgress ProgressFunc) (string, error)
}

// pageSource yields the text items of a paged document.
type pageSource interface {
	NumPage() int
	PageItems(pageIndex int) ([]string, error)
}

type documentExtractor struct {
	openPDF func(content []byte) (pageSource, error)
}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{openPDF: openPDFSource}
}

// Extract implements DocumentExtractor.
func (d *documentExtractor) Extract(ctx context.Context, file *models.UploadedFile, onProgress ProgressFunc) (string, error) {
	if onProgress == nil {
		onProgress = func(int) {}
	}

	switch file.ContentType {
	case models.MIMEPlainText:
		text := string(file.Content)
		onProgress(100)
		return text, nil

	case models.MIMEPDF:
		src, err := d.openPDF(file.Content)
		if err != nil {
			return "", &ExtractionError{FileName: file.Name, Cause: err}
		}
		text, err := extractPages(ctx, src, onProgress)
		if err != nil {
			if errors.Is(err, ErrEmptyExtraction) {
				return "", err
			}
			return "", &ExtractionError{FileName: file.Name, Cause: err}
		}
		return text, nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, file.ContentType)
	}
}

// extractPages joins the items of each page with a space and the pages with
// a newline. A failing page aborts the whole extraction.
func extractPages(ctx context.Context, src pageSource, onProgress ProgressFunc) (string, error) {
	totalPage := src.NumPage()
	if totalPage <= 0 {
		return "", ErrEmptyExtraction
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		items, err := src.PageItems(pageIndex)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageIndex, err)
		}

		textBuilder.WriteString(strings.Join(items, " "))
		textBuilder.WriteString("\n")

		onProgress(int(math.Round(float64(pageIndex) / float64(totalPage) * 100)))
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", ErrEmptyExtraction
	}

	return text, nil
}

type pdfPageSource struct {
	reader *pdf.Reader
}

func openPDFSource(content []byte) (src pageSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &pdfPageSource{reader: reader}, nil
}

func (p *pdfPageSource) NumPage() int {
	return p.reader.NumPage()
}

// PageItems returns one item per text row of the page.
func (p *pdfPageSource) PageItems(pageIndex int) (items []string, err error) {
	// The pdf package panics on malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("malformed page content: %v", r)
		}
	}()

	page := p.reader.Page(pageIndex)
	if page.V.IsNull() {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}

	for _, row := range rows {
		var rowBuilder strings.Builder
		for _, word := range row.Content {
			rowBuilder.WriteString(word.S)
		}
		if item := strings.TrimSpace(rowBuilder.String()); item != "" {
			items = append(items, item)
		}
	}

	return items, nil
}
