package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-matcher/internal/models"
)

// queueWorker records jobs so tests decide when and how they finish.
type queueWorker struct {
	mu   sync.Mutex
	jobs []ExtractionJob
	err  error
}

func (q *queueWorker) Start(ctx context.Context) {}
func (q *queueWorker) Stop() {}

func (q *queueWorker) EnqueueJob(job ExtractionJob) error {
	if q.err != nil {
		return q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *queueWorker) job(t *testing.T, i int) ExtractionJob {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	require.Greater(t, len(q.jobs), i)
	return q.jobs[i]
}

type fakeGateway struct {
	result  *models.AnalysisResult
	err     error
	calls   int
	release chan struct{}
	started chan struct{}
}

func (f *fakeGateway) Analyze(ctx context.Context, resumeText, jobDescriptionText string) (*models.AnalysisResult, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func sampleResult(score float64) *models.AnalysisResult {
	return &models.AnalysisResult{
		MatchScore:     score,
		FitLevel:       models.FitLevelForScore(score),
		SkillAlignment: []models.SkillAlignmentRow{},
		Strengths:      []string{"Python"},
		MissingOrWeak:  []string{},
		Verdict:        "Good fit.",
	}
}

func txtFile(name, body string) *models.UploadedFile {
	return models.NewUploadedFile(name, "text/plain", []byte(body))
}

func TestWorkspace_SelectFileRunsFullIntake(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)

	slot, err := ws.SelectFile(models.RoleResume, models.NewUploadedFile("cv.pdf", "application/pdf", []byte("%PDF")))
	require.NoError(t, err)
	assert.True(t, slot.IsParsing)
	assert.Equal(t, "cv.pdf", slot.SourceFileName)
	assert.Equal(t, 0, slot.ParseProgressPercent)

	job := worker.job(t, 0)
	assert.Equal(t, models.RoleResume, job.Role)

	job.OnProgress(50)
	assert.Equal(t, 50, ws.Snapshot().Resume.ParseProgressPercent)

	job.OnDone("Senior Python engineer", nil)
	resume := ws.Snapshot().Resume
	assert.False(t, resume.IsParsing)
	assert.Equal(t, "Senior Python engineer", resume.RawText)
	assert.Equal(t, 100, resume.ParseProgressPercent)
	assert.Equal(t, "cv.pdf", resume.SourceFileName)
	assert.Empty(t, resume.ErrorMessage)
}

func TestWorkspace_SettleDelayKeepsParsingBriefly(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 20*time.Millisecond)

	_, err := ws.SelectFile(models.RoleJobDescription, txtFile("jd.txt", "Requires Go"))
	require.NoError(t, err)
	worker.job(t, 0).OnDone("Requires Go", nil)

	snap := ws.Snapshot()
	assert.True(t, snap.JobDescription.IsParsing)
	assert.Equal(t, "Requires Go", snap.JobDescription.RawText)
	assert.False(t, snap.CanAnalyze)

	assert.Eventually(t, func() bool {
		return !ws.Snapshot().JobDescription.IsParsing
	}, time.Second, 5*time.Millisecond)
}

func TestWorkspace_RejectsUnsupportedFileType(t *testing.T) {
	tests := []struct {
		name    string
		role    models.SlotRole
		file    *models.UploadedFile
		message string
	}{
		{
			name:    "image for resume",
			role:    models.RoleResume,
			file:    models.NewUploadedFile("photo.png", "image/png", []byte{0x89}),
			message: "Unsupported file type. Please use .txt or .pdf",
		},
		{
			name:    "pdf for job description",
			role:    models.RoleJobDescription,
			file:    models.NewUploadedFile("jd.pdf", "application/pdf", []byte("%PDF")),
			message: "Unsupported file type. Please use .txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := &queueWorker{}
			ws := NewWorkspace(worker, &fakeGateway{}, 0)
			_, err := ws.EditText(tt.role, "existing text")
			require.NoError(t, err)

			slot, err := ws.SelectFile(tt.role, tt.file)

			assert.ErrorIs(t, err, ErrUnsupportedFileType)
			assert.Equal(t, tt.message, slot.ErrorMessage)
			assert.Equal(t, "existing text", slot.RawText)
			assert.False(t, slot.IsParsing)
			assert.Empty(t, worker.jobs)
		})
	}
}

func TestWorkspace_FailedExtractionKeepsPreviousText(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)
	_, err := ws.EditText(models.RoleResume, "typed resume")
	require.NoError(t, err)

	_, err = ws.SelectFile(models.RoleResume, models.NewUploadedFile("scan.pdf", "application/pdf", []byte("%PDF")))
	require.NoError(t, err)
	worker.job(t, 0).OnDone("", ErrEmptyExtraction)

	resume := ws.Snapshot().Resume
	assert.False(t, resume.IsParsing)
	assert.Equal(t, "typed resume", resume.RawText)
	assert.Empty(t, resume.SourceFileName)
	assert.Equal(t, "No readable text found in PDF", resume.ErrorMessage)

	ws.DismissError(models.RoleResume)
	assert.Empty(t, ws.Snapshot().Resume.ErrorMessage)
}

func TestWorkspace_NewerFileWinsOverStaleExtraction(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)

	_, err := ws.SelectFile(models.RoleResume, txtFile("a.txt", "A"))
	require.NoError(t, err)
	_, err = ws.SelectFile(models.RoleResume, txtFile("b.txt", "B"))
	require.NoError(t, err)

	first, second := worker.job(t, 0), worker.job(t, 1)
	assert.Less(t, first.Sequence, second.Sequence)

	second.OnDone("B", nil)
	first.OnProgress(100)
	first.OnDone("A", nil)

	resume := ws.Snapshot().Resume
	assert.Equal(t, "B", resume.RawText)
	assert.Equal(t, "b.txt", resume.SourceFileName)
	assert.False(t, resume.IsParsing)
}

func TestWorkspace_SlotsAreIndependent(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)

	_, err := ws.SelectFile(models.RoleResume, txtFile("cv.txt", "resume"))
	require.NoError(t, err)
	_, err = ws.SelectFile(models.RoleJobDescription, txtFile("jd.txt", "jd"))
	require.NoError(t, err)

	worker.job(t, 1).OnDone("jd", nil)
	snap := ws.Snapshot()
	assert.True(t, snap.Resume.IsParsing)
	assert.False(t, snap.JobDescription.IsParsing)
	assert.Equal(t, "jd", snap.JobDescription.RawText)

	worker.job(t, 0).OnDone("resume", nil)
	assert.Equal(t, "resume", ws.Snapshot().Resume.RawText)
}

func TestWorkspace_EditRejectedWhileParsing(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)
	_, err := ws.SelectFile(models.RoleJobDescription, txtFile("jd.txt", "x"))
	require.NoError(t, err)

	_, err = ws.EditText(models.RoleJobDescription, "typed")
	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.Empty(t, ws.Snapshot().JobDescription.RawText)
}

func TestWorkspace_ClearAbandonsExtraction(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)
	_, err := ws.SelectFile(models.RoleResume, txtFile("cv.txt", "late"))
	require.NoError(t, err)

	slot := ws.Clear(models.RoleResume)
	assert.False(t, slot.IsParsing)
	assert.Empty(t, slot.SourceFileName)

	worker.job(t, 0).OnDone("late", nil)
	assert.Empty(t, ws.Snapshot().Resume.RawText)
}

func TestWorkspace_EnqueueFailureIsReportedOnSlot(t *testing.T) {
	worker := &queueWorker{err: ErrWorkerStopped}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)

	slot, err := ws.SelectFile(models.RoleResume, txtFile("cv.txt", "x"))

	assert.ErrorIs(t, err, ErrWorkerStopped)
	assert.False(t, slot.IsParsing)
	assert.Empty(t, slot.SourceFileName)
	assert.Equal(t, "Failed to process file.", slot.ErrorMessage)
}

func TestWorkspace_DragAndDrop(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)

	assert.True(t, ws.DragEnter(models.RoleResume).IsDragActive)
	assert.False(t, ws.Snapshot().JobDescription.IsDragActive)
	assert.False(t, ws.DragLeave(models.RoleResume).IsDragActive)

	ws.DragEnter(models.RoleResume)
	slot, err := ws.DropFile(models.RoleResume, txtFile("cv.txt", "x"))
	require.NoError(t, err)
	assert.False(t, slot.IsDragActive)
	assert.True(t, slot.IsParsing)

	ws.DragEnter(models.RoleJobDescription)
	slot, err = ws.DropFile(models.RoleJobDescription, models.NewUploadedFile("jd.pdf", "application/pdf", nil))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.False(t, slot.IsDragActive)
}

func TestWorkspace_EndDragWithoutFile(t *testing.T) {
	ws := NewWorkspace(&queueWorker{}, &fakeGateway{}, 0)
	ws.DragEnter(models.RoleJobDescription)

	slot := ws.EndDrag(models.RoleJobDescription)

	assert.False(t, slot.IsDragActive)
	assert.False(t, slot.IsParsing)
}

func readyWorkspace(t *testing.T, gateway AnalysisGateway) Workspace {
	t.Helper()
	ws := NewWorkspace(&queueWorker{}, gateway, 0)
	_, err := ws.EditText(models.RoleResume, "5 years Python, AWS")
	require.NoError(t, err)
	_, err = ws.EditText(models.RoleJobDescription, "Requires Python, AWS, 3+ years")
	require.NoError(t, err)
	return ws
}

func TestWorkspace_AnalyzeStoresResult(t *testing.T) {
	gateway := &fakeGateway{result: sampleResult(88)}
	ws := readyWorkspace(t, gateway)
	assert.True(t, ws.Snapshot().CanAnalyze)

	id, result, err := ws.Analyze(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, models.FitLevelExcellent, result.FitLevel)

	gotID, stored, ok := ws.Result()
	assert.True(t, ok)
	assert.Equal(t, id, gotID)
	assert.Same(t, result, stored)
	assert.False(t, ws.Snapshot().IsAnalyzing)
}

func TestWorkspace_AnalyzeRequiresBothInputs(t *testing.T) {
	gateway := &fakeGateway{result: sampleResult(50)}
	ws := NewWorkspace(&queueWorker{}, gateway, 0)
	_, err := ws.EditText(models.RoleResume, "resume")
	require.NoError(t, err)
	_, err = ws.EditText(models.RoleJobDescription, "   ")
	require.NoError(t, err)

	assert.False(t, ws.Snapshot().CanAnalyze)
	_, _, err = ws.Analyze(context.Background())

	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Zero(t, gateway.calls)
	assert.Equal(t, ErrMissingInput.Error(), ws.Snapshot().AnalysisError)
}

func TestWorkspace_AnalyzeRefusedWhileParsing(t *testing.T) {
	gateway := &fakeGateway{result: sampleResult(50)}
	ws := readyWorkspace(t, gateway)
	_, err := ws.SelectFile(models.RoleResume, txtFile("cv.txt", "x"))
	require.NoError(t, err)

	_, _, err = ws.Analyze(context.Background())

	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.Zero(t, gateway.calls)
}

func TestWorkspace_AnalysisFailureIsRecorded(t *testing.T) {
	gateway := &fakeGateway{err: newInvalidFormatError(errors.New("bad json"))}
	ws := readyWorkspace(t, gateway)

	_, _, err := ws.Analyze(context.Background())

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	snap := ws.Snapshot()
	assert.Equal(t, "analysis failed: invalid response format", snap.AnalysisError)
	assert.Nil(t, snap.Result)
	assert.False(t, snap.IsAnalyzing)
	assert.True(t, snap.CanAnalyze)
}

func TestWorkspace_SingleAnalysisInFlight(t *testing.T) {
	gateway := &fakeGateway{
		result:  sampleResult(75),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	ws := readyWorkspace(t, gateway)

	done := make(chan error, 1)
	go func() {
		_, _, err := ws.Analyze(context.Background())
		done <- err
	}()
	<-gateway.started

	assert.True(t, ws.Snapshot().IsAnalyzing)
	_, _, err := ws.Analyze(context.Background())
	assert.ErrorIs(t, err, ErrAnalysisInProgress)

	close(gateway.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gateway.calls)
}

func TestWorkspace_ClearDiscardsInFlightAnalysis(t *testing.T) {
	gateway := &fakeGateway{
		result:  sampleResult(90),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	ws := readyWorkspace(t, gateway)

	done := make(chan error, 1)
	go func() {
		_, _, err := ws.Analyze(context.Background())
		done <- err
	}()
	<-gateway.started

	ws.Clear(models.RoleJobDescription)

	// The first request is still outstanding, so a new one must wait.
	assert.True(t, ws.Snapshot().IsAnalyzing)
	_, err := ws.EditText(models.RoleJobDescription, "Requires Go")
	require.NoError(t, err)
	_, _, err = ws.Analyze(context.Background())
	assert.ErrorIs(t, err, ErrAnalysisInProgress)

	close(gateway.release)

	assert.ErrorIs(t, <-done, ErrAnalysisStale)
	assert.Equal(t, 1, gateway.calls)
	_, _, ok := ws.Result()
	assert.False(t, ok)

	snap := ws.Snapshot()
	assert.Nil(t, snap.Result)
	assert.False(t, snap.IsAnalyzing)
	assert.True(t, snap.CanAnalyze)
}

func TestWorkspace_ClearInvalidatesResult(t *testing.T) {
	ws := readyWorkspace(t, &fakeGateway{result: sampleResult(60)})
	_, _, err := ws.Analyze(context.Background())
	require.NoError(t, err)

	ws.Clear(models.RoleResume)

	_, _, ok := ws.Result()
	assert.False(t, ok)
	assert.Empty(t, ws.Snapshot().Resume.RawText)
	assert.Equal(t, "Requires Python, AWS, 3+ years", ws.Snapshot().JobDescription.RawText)
}

func TestWorkspace_ConcurrentCompletionsStayConsistent(t *testing.T) {
	worker := &queueWorker{}
	ws := NewWorkspace(worker, &fakeGateway{}, 0)

	const files = 20
	for i := 0; i < files; i++ {
		_, err := ws.SelectFile(models.RoleResume, txtFile("cv.txt", "x"))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < files; i++ {
		job := worker.job(t, i)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			job.OnProgress(50)
			job.OnDone(string(rune('a'+i)), nil)
		}(i)
	}
	wg.Wait()

	resume := ws.Snapshot().Resume
	assert.Equal(t, string(rune('a'+files-1)), resume.RawText)
	assert.False(t, resume.IsParsing)
	assert.Equal(t, uint64(files), resume.Sequence)
}
