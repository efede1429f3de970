package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/logger"
	"resumelens/portfolio-analyzer/internal/metrics"
	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/repositories"
)

// AuditRecorder persists outcome metadata off the request path.
type AuditRecorder interface {
	Start(ctx context.Context)
	Stop()
	// Record never blocks. Entries are dropped when the queue is full.
	Record(entry models.AnalysisAudit)
}

type auditWorker struct {
	repo         repositories.AuditRepository
	metrics      *metrics.Registry
	logger       *zap.Logger
	queue        chan models.AnalysisAudit
	concurrency  int
	writeTimeout time.Duration
	wg           sync.WaitGroup
	// mu orders Record against Stop so nothing is enqueued after the drain.
	mu           sync.RWMutex
	stopped      bool
	stopChan     chan struct{}
}

const auditQueueSize = 100

func NewAuditWorker(repo repositories.AuditRepository, registry *metrics.Registry, log *zap.Logger, concurrency int) AuditRecorder {
	if concurrency < 1 {
		concurrency = 1
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}

	return &auditWorker{
		repo:         repo,
		metrics:      registry,
		logger:       logger.OrNop(log).Named("audit"),
		queue:        make(chan models.AnalysisAudit, auditQueueSize),
		concurrency:  concurrency,
		writeTimeout: 5 * time.Second,
		stopChan:     make(chan struct{}),
	}
}

// Start implements AuditRecorder.
func (w *auditWorker) Start(ctx context.Context) {
	w.logger.Info("starting audit workers", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processEntries(ctx, i+1)
	}
}

// Stop implements AuditRecorder. Queued entries are flushed before it
// returns, even when the context given to Start is already cancelled.
func (w *auditWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	w.logger.Info("stopping audit workers")
	w.wg.Wait()
	w.logger.Info("audit workers stopped")
}

// Record implements AuditRecorder.
func (w *auditWorker) Record(entry models.AnalysisAudit) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		w.metrics.AuditDropped.Add(1)
		w.logger.Warn("audit worker stopped, dropping entry", zap.String("request_id", entry.RequestID))
		return
	}

	select {
	case w.queue <- entry:
		w.metrics.AuditEnqueued.Add(1)
	default:
		w.metrics.AuditDropped.Add(1)
		w.logger.Warn("audit queue full, dropping entry", zap.String("request_id", entry.RequestID))
	}
}

func (w *auditWorker) processEntries(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case entry := <-w.queue:
			w.write(ctx, workerID, entry)
		case <-w.stopChan:
			w.drain(ctx, workerID)
			return
		}
	}
}

func (w *auditWorker) drain(ctx context.Context, workerID int) {
	for {
		select {
		case entry := <-w.queue:
			w.write(ctx, workerID, entry)
		default:
			return
		}
	}
}

func (w *auditWorker) write(ctx context.Context, workerID int, entry models.AnalysisAudit) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.writeTimeout)
	defer cancel()

	if err := w.repo.Create(writeCtx, &entry); err != nil {
		w.metrics.AuditFailures.Add(1)
		w.logger.Error("failed to write audit entry",
			zap.Int("worker", workerID),
			zap.String("request_id", entry.RequestID),
			zap.Error(err),
		)
		return
	}

	w.logger.Debug("audit entry written", zap.Int("worker", workerID), zap.String("request_id", entry.RequestID))
}

type noopAuditRecorder struct{}

// NewNoopAuditRecorder returns a recorder that discards every entry.
func NewNoopAuditRecorder() AuditRecorder {
	return noopAuditRecorder{}
}

func (noopAuditRecorder) Start(context.Context) {}
func (noopAuditRecorder) Stop() {}
func (noopAuditRecorder) Record(models.AnalysisAudit) {}
