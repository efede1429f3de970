package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryCounts(t *testing.T) {
	r := NewRegistry()

	r.AnalyzeRequests.Add(3)
	r.IncrDelivered("gap-analysis")
	r.IncrError("TooLarge")
	r.IncrError("TooLarge")
	r.ObserveGeneration(120*time.Millisecond, nil)
	r.ObserveGeneration(80*time.Millisecond, errors.New("quota"))

	snap := r.Snapshot()
	assert.Equal(t, int64(3), snap["analyze_requests"])
	assert.Equal(t, int64(1), snap["analyses_delivered"])
	assert.Equal(t, int64(1), snap["analyses_delivered_gap_analysis"])
	assert.Equal(t, int64(2), snap["analyses_rejected"])
	assert.Equal(t, int64(2), snap["analyses_rejected_too_large"])
	assert.Equal(t, int64(2), snap["gemini_calls"])
	assert.Equal(t, int64(1), snap["gemini_errors"])
	assert.Equal(t, int64(200), snap["gemini_latency_ms_total"])
}

func TestRegistryConcurrentIncrements(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.IncrError("QuotaExceeded")
			r.IncrDelivered("portfolio")
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	assert.Equal(t, int64(50), snap["analyses_rejected_quota_exceeded"])
	assert.Equal(t, int64(50), snap["analyses_delivered_portfolio"])
}

func TestFormatIsSorted(t *testing.T) {
	r := NewRegistry()
	r.IncrError("EmptyText")

	out := r.Format()
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Contains(t, lines, "analyses_rejected_empty_text 1")
	for i := 1; i < len(lines); i++ {
		assert.Less(t, lines[i-1], lines[i])
	}
}

func TestMetricName(t *testing.T) {
	assert.Equal(t, "missing_credential", metricName("MissingCredential"))
	assert.Equal(t, "gap_analysis", metricName("gap-analysis"))
	assert.Equal(t, "project", metricName("project"))
}
