package services

import (
	"alfredoptarigan/resume-matcher/internal/models"
)

// The functions below are the intake state machine of a single slot. Each
// takes a slot value and returns the next one; none of them has side
// effects. Completion-side transitions carry the sequence number of the
// extraction they belong to and report false when it is no longer the
// slot's latest, in which case the slot is returned unchanged.

// BeginExtraction starts parsing a new file, preempting any extraction in
// flight. It returns the sequence number assigned to the new extraction.
func BeginExtraction(slot models.InputSlot, fileName string) (models.InputSlot, uint64) {
	slot.Sequence++
	slot.SourceFileName = fileName
	slot.ErrorMessage = ""
	slot.IsParsing = true
	slot.ParseProgressPercent = 0
	return slot, slot.Sequence
}

// RejectFile records why a file was refused before extraction started.
func RejectFile(slot models.InputSlot, message string) models.InputSlot {
	slot.ErrorMessage = message
	return slot
}

func ApplyProgress(slot models.InputSlot, seq uint64, percent int) (models.InputSlot, bool) {
	if !isCurrent(slot, seq) {
		return slot, false
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent > slot.ParseProgressPercent {
		slot.ParseProgressPercent = percent
	}
	return slot, true
}

// CompleteExtraction stores the extracted text. The slot stays in the
// parsing state until Settle.
func CompleteExtraction(slot models.InputSlot, seq uint64, text string) (models.InputSlot, bool) {
	if !isCurrent(slot, seq) {
		return slot, false
	}
	slot.RawText = text
	slot.ParseProgressPercent = 100
	return slot, true
}

func FailExtraction(slot models.InputSlot, seq uint64, message string) (models.InputSlot, bool) {
	if !isCurrent(slot, seq) {
		return slot, false
	}
	slot.SourceFileName = ""
	slot.ErrorMessage = message
	return slot, true
}

// Settle leaves the parsing state once an extraction has finished.
func Settle(slot models.InputSlot, seq uint64) (models.InputSlot, bool) {
	if !isCurrent(slot, seq) {
		return slot, false
	}
	slot.IsParsing = false
	return slot, true
}

func ManualEdit(slot models.InputSlot, text string) (models.InputSlot, error) {
	if slot.IsParsing {
		return slot, ErrSlotBusy
	}
	slot.RawText = text
	return slot, nil
}

// Clear empties the slot and abandons any extraction in flight.
func Clear(slot models.InputSlot) models.InputSlot {
	if slot.IsParsing {
		slot.Sequence++
	}
	slot.RawText = ""
	slot.SourceFileName = ""
	slot.ErrorMessage = ""
	slot.IsParsing = false
	slot.ParseProgressPercent = 0
	return slot
}

func DragEnter(slot models.InputSlot) models.InputSlot {
	slot.IsDragActive = true
	return slot
}

func DragLeave(slot models.InputSlot) models.InputSlot {
	slot.IsDragActive = false
	return slot
}

// Drop ends the drag. The dropped file then goes through the same intake as
// a selected one.
func Drop(slot models.InputSlot) models.InputSlot {
	slot.IsDragActive = false
	return slot
}

func DismissError(slot models.InputSlot) models.InputSlot {
	slot.ErrorMessage = ""
	return slot
}

func isCurrent(slot models.InputSlot, seq uint64) bool {
	return slot.IsParsing && slot.Sequence == seq
}
