package services

import (
	"errors"
	"fmt"

	"alfredoptarigan/resume-matcher/internal/models"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyExtraction     = errors.New("no readable text found in document")

	ErrSlotBusy           = errors.New("slot is still parsing a file")
	ErrMissingInput       = errors.New("please provide both a resume and a job description")
	ErrAnalysisInProgress = errors.New("an analysis is already running")
	ErrAnalysisStale      = errors.New("analysis discarded because its input was cleared")
)

// ExtractionError wraps a lower-level failure while reading a document.
type ExtractionError struct {
	FileName string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.FileName, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

type AnalysisFailureReason string

const (
	ReasonInvalidFormat AnalysisFailureReason = "invalid-format"
	ReasonTransport     AnalysisFailureReason = "transport-error"
)

const invalidResponseFormat = "invalid response format"

// AnalysisError is returned by the gateway for every failed analysis.
type AnalysisError struct {
	Reason  AnalysisFailureReason
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	return "analysis failed: " + e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

func newInvalidFormatError(cause error) *AnalysisError {
	return &AnalysisError{Reason: ReasonInvalidFormat, Message: invalidResponseFormat, Cause: cause}
}

func newTransportError(cause error) *AnalysisError {
	return &AnalysisError{Reason: ReasonTransport, Message: cause.Error(), Cause: cause}
}

// SlotErrorMessage turns an intake failure into the message shown on a slot.
func SlotErrorMessage(role models.SlotRole, err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFileType):
		if role == models.RoleResume {
			return "Unsupported file type. Please use .txt or .pdf"
		}
		return "Unsupported file type. Please use .txt"
	case errors.Is(err, ErrEmptyExtraction):
		return "No readable text found in PDF"
	default:
		return "Failed to process file."
	}
}
