package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
)

var ErrWorkerStopped = errors.New("extraction worker stopped")

// ExtractionJob is one extraction attempt for one slot.
type ExtractionJob struct {
	ID         uuid.UUID
	Role       models.SlotRole
	Sequence   uint64
	File       *models.UploadedFile
	OnProgress ProgressFunc
	OnDone     func(text string, err error)
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job ExtractionJob) error
}

type worker struct {
	extractor   DocumentExtractor
	jobQueue    chan ExtractionJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	// enqueueMu lets Stop wait for enqueues already past the stop check.
	enqueueMu sync.RWMutex
}

func NewWorker(extractor DocumentExtractor, concurrency, queueSize int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &worker{
		extractor:   extractor,
		jobQueue:    make(chan ExtractionJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting extraction worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs still queued are finished with
// ErrWorkerStopped.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping extraction worker...")
		close(w.stopChan)

		w.enqueueMu.Lock()
		defer w.enqueueMu.Unlock()

		w.wg.Wait()
		w.drain()
		log.Println("✅ Extraction worker stopped")
	})
}

func (w *worker) drain() {
	for {
		select {
		case job := <-w.jobQueue:
			log.Printf("⚠️  Extraction %s dropped at shutdown (%s)\n", job.ID, job.File.Name)
			if job.OnDone != nil {
				job.OnDone("", ErrWorkerStopped)
			}
		default:
			return
		}
	}
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(job ExtractionJob) error {
	w.enqueueMu.RLock()
	defer w.enqueueMu.RUnlock()

	select {
	case <-w.stopChan:
		return ErrWorkerStopped
	default:
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Extraction %s enqueued (%s, %s)\n", job.ID, job.Role, job.File.Name)
		return nil
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue extraction %s\n", job.ID)
		return ErrWorkerStopped
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d context done\n", workerID)
			return
		case job := <-w.jobQueue:
			w.run(ctx, workerID, job)
		}
	}
}

func (w *worker) run(ctx context.Context, workerID int, job ExtractionJob) {
	log.Printf("👷 Worker #%d extracting %s (%s)\n", workerID, job.File.Name, job.Role)

	text, err := w.extractor.Extract(ctx, job.File, job.OnProgress)
	if err != nil {
		log.Printf("❌ Worker #%d failed to extract %s: %v\n", workerID, job.File.Name, err)
	} else {
		log.Printf("✅ Worker #%d extracted %d characters from %s\n", workerID, len(text), job.File.Name)
	}

	if job.OnDone != nil {
		job.OnDone(text, err)
	}
}
