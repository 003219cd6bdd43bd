package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
)

// Workspace owns the two input slots and the current analysis. Every
// operation is applied under one lock, so callers always observe a
// consistent snapshot.
type Workspace interface {
	Snapshot() models.WorkspaceSnapshot

	SelectFile(role models.SlotRole, file *models.UploadedFile) (models.InputSlot, error)
	DropFile(role models.SlotRole, file *models.UploadedFile) (models.InputSlot, error)
	DragEnter(role models.SlotRole) models.InputSlot
	DragLeave(role models.SlotRole) models.InputSlot
	// EndDrag resets the drag state of a drop before its file is read.
	EndDrag(role models.SlotRole) models.InputSlot
	EditText(role models.SlotRole, text string) (models.InputSlot, error)
	Clear(role models.SlotRole) models.InputSlot
	DismissError(role models.SlotRole) models.InputSlot

	// Analyze runs one analysis over the current slot texts. It blocks until
	// the gateway answers.
	Analyze(ctx context.Context) (string, *models.AnalysisResult, error)
	Result() (string, *models.AnalysisResult, bool)
}

type workspace struct {
	mu sync.Mutex

	resume         models.InputSlot
	jobDescription models.InputSlot

	result        *models.AnalysisResult
	analysisID    string
	analyzing     bool
	analysisSeq   uint64
	analysisError string

	worker      Worker
	gateway     AnalysisGateway
	settleDelay time.Duration
}

func NewWorkspace(worker Worker, gateway AnalysisGateway, settleDelay time.Duration) Workspace {
	return &workspace{
		resume:         models.NewInputSlot(models.RoleResume),
		jobDescription: models.NewInputSlot(models.RoleJobDescription),
		worker:         worker,
		gateway:        gateway,
		settleDelay:    settleDelay,
	}
}

func (w *workspace) slot(role models.SlotRole) *models.InputSlot {
	if role == models.RoleResume {
		return &w.resume
	}
	return &w.jobDescription
}

// Snapshot implements Workspace.
func (w *workspace) Snapshot() models.WorkspaceSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *workspace) snapshotLocked() models.WorkspaceSnapshot {
	return models.WorkspaceSnapshot{
		Resume:         w.resume,
		JobDescription: w.jobDescription,
		Result:         w.result,
		AnalysisID:     w.analysisID,
		IsAnalyzing:    w.analyzing,
		CanAnalyze:     w.readyLocked() == nil,
		AnalysisError:  w.analysisError,
	}
}

// readyLocked reports why an analysis cannot start right now, if it cannot.
func (w *workspace) readyLocked() error {
	if w.analyzing {
		return ErrAnalysisInProgress
	}
	if w.resume.IsParsing || w.jobDescription.IsParsing {
		return ErrSlotBusy
	}
	if !w.resume.HasText() || !w.jobDescription.HasText() {
		return ErrMissingInput
	}
	return nil
}

// SelectFile implements Workspace.
func (w *workspace) SelectFile(role models.SlotRole, file *models.UploadedFile) (models.InputSlot, error) {
	w.mu.Lock()
	slot, job, err := w.beginIntakeLocked(role, file)
	w.mu.Unlock()
	if err != nil {
		return slot, err
	}
	return w.dispatch(slot, job)
}

// DropFile implements Workspace.
func (w *workspace) DropFile(role models.SlotRole, file *models.UploadedFile) (models.InputSlot, error) {
	w.mu.Lock()
	s := w.slot(role)
	*s = Drop(*s)
	slot, job, err := w.beginIntakeLocked(role, file)
	w.mu.Unlock()
	if err != nil {
		return slot, err
	}
	return w.dispatch(slot, job)
}

func (w *workspace) beginIntakeLocked(role models.SlotRole, file *models.UploadedFile) (models.InputSlot, ExtractionJob, error) {
	s := w.slot(role)

	if !role.Accepts(file.ContentType) {
		log.Printf("⚠️  Rejected %s for %s slot: content type %q\n", file.Name, role, file.ContentType)
		*s = RejectFile(*s, SlotErrorMessage(role, ErrUnsupportedFileType))
		return *s, ExtractionJob{}, ErrUnsupportedFileType
	}

	var seq uint64
	*s, seq = BeginExtraction(*s, file.Name)

	job := ExtractionJob{
		ID:       uuid.New(),
		Role:     role,
		Sequence: seq,
		File:     file,
		OnProgress: func(percent int) {
			w.update(role, func(slot models.InputSlot) (models.InputSlot, bool) {
				return ApplyProgress(slot, seq, percent)
			})
		},
		OnDone: func(text string, err error) {
			w.finishExtraction(role, seq, text, err)
		},
	}
	return *s, job, nil
}

// dispatch hands the job to the worker pool. It must be called without the
// lock held: a full queue only drains while workers can report back.
func (w *workspace) dispatch(slot models.InputSlot, job ExtractionJob) (models.InputSlot, error) {
	if err := w.worker.EnqueueJob(job); err != nil {
		log.Printf("❌ Failed to enqueue extraction of %s: %v\n", job.File.Name, err)
		w.mu.Lock()
		defer w.mu.Unlock()

		s := w.slot(job.Role)
		*s, _ = FailExtraction(*s, job.Sequence, SlotErrorMessage(job.Role, err))
		*s, _ = Settle(*s, job.Sequence)
		return *s, err
	}
	return slot, nil
}

func (w *workspace) finishExtraction(role models.SlotRole, seq uint64, text string, err error) {
	applied := w.update(role, func(slot models.InputSlot) (models.InputSlot, bool) {
		if err != nil {
			return FailExtraction(slot, seq, SlotErrorMessage(role, err))
		}
		return CompleteExtraction(slot, seq, text)
	})
	if !applied {
		log.Printf("⏭️  Discarded stale extraction #%d for %s slot\n", seq, role)
		return
	}

	settle := func() {
		w.update(role, func(slot models.InputSlot) (models.InputSlot, bool) {
			return Settle(slot, seq)
		})
	}
	if w.settleDelay > 0 {
		time.AfterFunc(w.settleDelay, settle)
		return
	}
	settle()
}

// update applies a completion-side transition under the lock.
func (w *workspace) update(role models.SlotRole, transition func(models.InputSlot) (models.InputSlot, bool)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.slot(role)
	next, ok := transition(*s)
	*s = next
	return ok
}

// DragEnter implements Workspace.
func (w *workspace) DragEnter(role models.SlotRole) models.InputSlot {
	return w.apply(role, DragEnter)
}

// DragLeave implements Workspace.
func (w *workspace) DragLeave(role models.SlotRole) models.InputSlot {
	return w.apply(role, DragLeave)
}

// EndDrag implements Workspace.
func (w *workspace) EndDrag(role models.SlotRole) models.InputSlot {
	return w.apply(role, Drop)
}

// DismissError implements Workspace.
func (w *workspace) DismissError(role models.SlotRole) models.InputSlot {
	return w.apply(role, DismissError)
}

func (w *workspace) apply(role models.SlotRole, transition func(models.InputSlot) models.InputSlot) models.InputSlot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.slot(role)
	*s = transition(*s)
	return *s
}

// EditText implements Workspace.
func (w *workspace) EditText(role models.SlotRole, text string) (models.InputSlot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.slot(role)
	next, err := ManualEdit(*s, text)
	if err != nil {
		return *s, err
	}
	*s = next
	return *s, nil
}

// Clear implements Workspace. The current result is dropped and an analysis
// still in flight will be discarded when it returns.
func (w *workspace) Clear(role models.SlotRole) models.InputSlot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.slot(role)
	*s = Clear(*s)

	w.result = nil
	w.analysisID = ""
	w.analysisError = ""
	if w.analyzing {
		// The request stays in flight until the gateway answers, so the
		// workspace keeps reporting it as analyzing until then.
		w.analysisSeq++
	}
	return *s
}

// Analyze implements Workspace.
func (w *workspace) Analyze(ctx context.Context) (string, *models.AnalysisResult, error) {
	w.mu.Lock()
	if err := w.readyLocked(); err != nil {
		if errors.Is(err, ErrMissingInput) {
			w.analysisError = err.Error()
		}
		w.mu.Unlock()
		return "", nil, err
	}

	w.analyzing = true
	w.analysisSeq++
	seq := w.analysisSeq
	w.result = nil
	w.analysisID = ""
	w.analysisError = ""
	resumeText := w.resume.RawText
	jobDescriptionText := w.jobDescription.RawText
	w.mu.Unlock()

	result, err := w.gateway.Analyze(ctx, resumeText, jobDescriptionText)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.analyzing = false
	if seq != w.analysisSeq {
		log.Printf("⏭️  Discarded analysis #%d, inputs changed while it ran\n", seq)
		return "", nil, ErrAnalysisStale
	}

	if err != nil {
		w.analysisError = err.Error()
		return "", nil, err
	}

	w.result = result
	w.analysisID = uuid.NewString()
	return w.analysisID, result, nil
}

// Result implements Workspace.
func (w *workspace) Result() (string, *models.AnalysisResult, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.result == nil {
		return "", nil, false
	}
	return w.analysisID, w.result, true
}
