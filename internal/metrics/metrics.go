package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Registry tracks operational counters for the analysis pipeline.
// Counters never carry request content.
type Registry struct {
	AnalyzeRequests   atomic.Int64
	AnalysesDelivered atomic.Int64
	AnalysesRejected  atomic.Int64
	GeminiCalls       atomic.Int64
	GeminiErrors      atomic.Int64
	AuditEnqueued     atomic.Int64
	AuditDropped      atomic.Int64
	AuditFailures     atomic.Int64

	generationMillis atomic.Int64

	mu       sync.RWMutex
	byKind   map[string]*atomic.Int64
	byOutput map[string]*atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{
		byKind:   make(map[string]*atomic.Int64),
		byOutput: make(map[string]*atomic.Int64),
	}
}

// IncrError counts one rejected analysis under its error kind.
func (r *Registry) IncrError(kind string) {
	r.AnalysesRejected.Add(1)
	counter(&r.mu, r.byKind, kind).Add(1)
}

// IncrDelivered counts one successful analysis for variant.
func (r *Registry) IncrDelivered(variant string) {
	r.AnalysesDelivered.Add(1)
	counter(&r.mu, r.byOutput, variant).Add(1)
}

// ObserveGeneration records one upstream call and its latency.
func (r *Registry) ObserveGeneration(elapsed time.Duration, err error) {
	r.GeminiCalls.Add(1)
	r.generationMillis.Add(elapsed.Milliseconds())
	if err != nil {
		r.GeminiErrors.Add(1)
	}
}

func counter(mu *sync.RWMutex, m map[string]*atomic.Int64, key string) *atomic.Int64 {
	mu.RLock()
	c, ok := m[key]
	mu.RUnlock()
	if ok {
		return c
	}

	mu.Lock()
	defer mu.Unlock()
	if c, ok = m[key]; !ok {
		c = new(atomic.Int64)
		m[key] = c
	}
	return c
}

// Snapshot returns the current value of every counter.
func (r *Registry) Snapshot() map[string]int64 {
	snap := map[string]int64{
		"analyze_requests":        r.AnalyzeRequests.Load(),
		"analyses_delivered":      r.AnalysesDelivered.Load(),
		"analyses_rejected":       r.AnalysesRejected.Load(),
		"gemini_calls":            r.GeminiCalls.Load(),
		"gemini_errors":           r.GeminiErrors.Load(),
		"gemini_latency_ms_total": r.generationMillis.Load(),
		"audit_enqueued":          r.AuditEnqueued.Load(),
		"audit_dropped":           r.AuditDropped.Load(),
		"audit_failures":          r.AuditFailures.Load(),
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for kind, c := range r.byKind {
		snap["analyses_rejected_"+metricName(kind)] = c.Load()
	}
	for variant, c := range r.byOutput {
		snap["analyses_delivered_"+metricName(variant)] = c.Load()
	}
	return snap
}

// Format returns metrics as "name value" lines sorted by name.
func (r *Registry) Format() string {
	snap := r.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, snap[k])
	}
	return sb.String()
}

// metricName turns labels like "gap-analysis" or "TooLarge" into snake_case.
func metricName(label string) string {
	var sb strings.Builder
	for i, r := range label {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
		case r == '-' || r == ' ' || r == '.':
			sb.WriteByte('_')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
