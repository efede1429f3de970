package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/metrics"
	"resumelens/portfolio-analyzer/internal/models"
)

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []models.AnalysisAudit
	err     error
	delay   time.Duration
}

func (f *fakeAuditRepo) Create(ctx context.Context, audit *models.AnalysisAudit) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *audit)
	return nil
}

func (f *fakeAuditRepo) snapshot() []models.AnalysisAudit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.AnalysisAudit(nil), f.entries...)
}

func TestAuditWorkerFlushesOnStop(t *testing.T) {
	repo := &fakeAuditRepo{}
	registry := metrics.NewRegistry()
	w := NewAuditWorker(repo, registry, zap.NewNop(), 2)

	w.Start(context.Background())
	for i := 0; i < 10; i++ {
		w.Record(models.AnalysisAudit{RequestID: "req", Variant: models.VariantProject, Status: models.AuditDelivered})
	}
	w.Stop()

	assert.Len(t, repo.snapshot(), 10)
	assert.Equal(t, int64(10), registry.AuditEnqueued.Load())
	assert.Zero(t, registry.AuditDropped.Load())

	w.Stop()
}

func TestAuditWorkerFlushesAfterContextCancel(t *testing.T) {
	repo := &fakeAuditRepo{delay: 20 * time.Millisecond}
	registry := metrics.NewRegistry()
	w := NewAuditWorker(repo, registry, zap.NewNop(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	for i := 0; i < 10; i++ {
		w.Record(models.AnalysisAudit{RequestID: "req", Status: models.AuditDelivered})
	}

	// Shutdown order in cmd/api: the signal context is cancelled first.
	cancel()
	w.Stop()

	assert.Len(t, repo.snapshot(), 10)
	assert.Zero(t, registry.AuditFailures.Load())
}

func TestAuditWorkerRecordRacingStop(t *testing.T) {
	repo := &fakeAuditRepo{}
	registry := metrics.NewRegistry()
	w := NewAuditWorker(repo, registry, nil, 2)
	w.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				w.Record(models.AnalysisAudit{RequestID: "req"})
			}
		}()
	}
	w.Stop()
	wg.Wait()

	assert.Equal(t, registry.AuditEnqueued.Load(), int64(len(repo.snapshot())))
	assert.Equal(t, int64(80), registry.AuditEnqueued.Load()+registry.AuditDropped.Load())
}

func TestAuditWorkerDropsWhenQueueFull(t *testing.T) {
	registry := metrics.NewRegistry()
	w := NewAuditWorker(&fakeAuditRepo{}, registry, nil, 1)

	// Not started, so nothing drains the queue.
	for i := 0; i < auditQueueSize+5; i++ {
		w.Record(models.AnalysisAudit{RequestID: "req"})
	}

	assert.Equal(t, int64(auditQueueSize), registry.AuditEnqueued.Load())
	assert.Equal(t, int64(5), registry.AuditDropped.Load())
}

func TestAuditWorkerDropsAfterStop(t *testing.T) {
	registry := metrics.NewRegistry()
	repo := &fakeAuditRepo{}
	w := NewAuditWorker(repo, registry, nil, 1)

	w.Start(context.Background())
	w.Stop()
	w.Record(models.AnalysisAudit{RequestID: "late"})

	assert.Equal(t, int64(1), registry.AuditDropped.Load())
	assert.Empty(t, repo.snapshot())
}

func TestAuditWorkerCountsWriteFailures(t *testing.T) {
	registry := metrics.NewRegistry()
	w := NewAuditWorker(&fakeAuditRepo{err: errors.New("db down")}, registry, nil, 1)

	w.Start(context.Background())
	w.Record(models.AnalysisAudit{RequestID: "req"})
	w.Stop()

	require.Equal(t, int64(1), registry.AuditFailures.Load())
}

func TestNoopAuditRecorder(t *testing.T) {
	r := NewNoopAuditRecorder()
	r.Start(context.Background())
	r.Record(models.AnalysisAudit{})
	r.Stop()
}
