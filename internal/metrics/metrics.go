// Package metrics collects in-process counters for correction activity.
package metrics

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// Metrics holds all application counters. Fields use atomics so rule
// evaluation under a worker pool can record without locking.
type Metrics struct {
	CorrectionsSuggested atomic.Int64
	CorrectionsExecuted  atomic.Int64
	CorrectionsFailed    atomic.Int64
	RulesEvaluated       atomic.Int64
	RulesPanicked        atomic.Int64

	StartTime time.Time
	Version   string
}

var (
	globalMetrics *Metrics
	once          sync.Once
)

// Initialize initializes the global metrics instance.
func Initialize(version string) *Metrics {
	once.Do(func() {
		globalMetrics = &Metrics{
			StartTime: time.Now(),
			Version:   version,
		}
	})
	return globalMetrics
}

// Get returns the global metrics instance.
func Get() *Metrics {
	if globalMetrics == nil {
		return Initialize("dev")
	}
	return globalMetrics
}

// RecordCorrectionSuggested increments the suggested counter.
func (m *Metrics) RecordCorrectionSuggested() {
	m.CorrectionsSuggested.Add(1)
}

// RecordCorrectionExecuted increments the executed counter.
func (m *Metrics) RecordCorrectionExecuted() {
	m.CorrectionsExecuted.Add(1)
}

// RecordCorrectionFailed increments the failed counter.
func (m *Metrics) RecordCorrectionFailed() {
	m.CorrectionsFailed.Add(1)
}

// RecordRuleEvaluated increments the rule evaluation counter.
func (m *Metrics) RecordRuleEvaluated() {
	m.RulesEvaluated.Add(1)
}

// RecordRulePanicked increments the contained-panic counter.
func (m *Metrics) RecordRulePanicked() {
	m.RulesPanicked.Add(1)
}

// GetUptime returns application uptime.
func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.StartTime)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() map[string]any {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]any{
		"corrections": map[string]int64{
			"suggested": m.CorrectionsSuggested.Load(),
			"executed":  m.CorrectionsExecuted.Load(),
			"failed":    m.CorrectionsFailed.Load(),
		},
		"rules": map[string]int64{
			"evaluated": m.RulesEvaluated.Load(),
			"panicked":  m.RulesPanicked.Load(),
		},
		"system": map[string]any{
			"uptime":     m.GetUptime().String(),
			"version":    m.Version,
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc":  memStats.Alloc,
				"sys":    memStats.Sys,
				"num_gc": memStats.NumGC,
			},
		},
	}
}

// JSON returns metrics as indented JSON.
func (m *Metrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m.Snapshot(), "", "  ")
}

// Convenience functions on the global instance.

// RecordCorrectionSuggested increments the global suggested counter.
func RecordCorrectionSuggested() {
	Get().RecordCorrectionSuggested()
}

// RecordCorrectionExecuted increments the global executed counter.
func RecordCorrectionExecuted() {
	Get().RecordCorrectionExecuted()
}

// RecordCorrectionFailed increments the global failed counter.
func RecordCorrectionFailed() {
	Get().RecordCorrectionFailed()
}

// RecordRuleEvaluated increments the global rule evaluation counter.
func RecordRuleEvaluated() {
	Get().RecordRuleEvaluated()
}

// RecordRulePanicked increments the global contained-panic counter.
func RecordRulePanicked() {
	Get().RecordRulePanicked()
}
