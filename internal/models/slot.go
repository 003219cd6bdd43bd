package models

import (
	"fmt"
	"strings"
)

// SlotRole names the document an input slot holds.
type SlotRole string

const (
	RoleResume         SlotRole = "resume"
	RoleJobDescription SlotRole = "job_description"
)

func ParseSlotRole(s string) (SlotRole, error) {
	// The constants are returned so the role never aliases the caller's
	// buffer; request params are reused once the handler returns.
	switch SlotRole(s) {
	case RoleResume:
		return RoleResume, nil
	case RoleJobDescription:
		return RoleJobDescription, nil
	}
	return "", fmt.Errorf("unknown slot %q", s)
}

// AcceptedContentTypes lists the MIME types a slot takes uploads for.
func (r SlotRole) AcceptedContentTypes() []string {
	if r == RoleResume {
		return []string{MIMEPlainText, MIMEPDF}
	}
	return []string{MIMEPlainText}
}

func (r SlotRole) Accepts(contentType string) bool {
	for _, t := range r.AcceptedContentTypes() {
		if t == contentType {
			return true
		}
	}
	return false
}

func (r SlotRole) Label() string {
	if r == RoleResume {
		return "resume"
	}
	return "job description"
}

// InputSlot is the intake state of one document.
type InputSlot struct {
	Role                 SlotRole `json:"role"`
	RawText              string   `json:"rawText"`
	SourceFileName       string   `json:"sourceFileName,omitempty"`
	IsParsing            bool     `json:"isParsing"`
	ParseProgressPercent int      `json:"parseProgressPercent"`
	IsDragActive         bool     `json:"isDragActive"`
	ErrorMessage         string   `json:"errorMessage,omitempty"`
	// Sequence is the number of the latest extraction issued for the slot.
	Sequence uint64 `json:"sequence"`
}

func NewInputSlot(role SlotRole) InputSlot {
	return InputSlot{Role: role}
}

// HasText reports whether the slot holds anything besides whitespace.
func (s InputSlot) HasText() bool {
	return strings.TrimSpace(s.RawText) != ""
}

// WorkspaceSnapshot is a point-in-time copy of the whole application state.
type WorkspaceSnapshot struct {
	Resume         InputSlot       `json:"resume"`
	JobDescription InputSlot       `json:"jobDescription"`
	Result         *AnalysisResult `json:"result,omitempty"`
	AnalysisID     string          `json:"analysisId,omitempty"`
	IsAnalyzing    bool            `json:"isAnalyzing"`
	CanAnalyze     bool            `json:"canAnalyze"`
	AnalysisError  string          `json:"analysisError,omitempty"`
}

func (w WorkspaceSnapshot) Slot(role SlotRole) InputSlot {
	if role == RoleResume {
		return w.Resume
	}
	return w.JobDescription
}
