package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks application activity.
type Metrics struct {
	renders   atomic.Uint64
	blinks    atomic.Uint64
	events    atomic.Uint64
	resizes   atomic.Uint64
	reloads   atomic.Uint64
	restarts  atomic.Uint64
	startTime atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.startTime.Store(time.Now().UnixNano())
	return m
}

// RecordRender records one widget repaint.
func (m *Metrics) RecordRender() {
	m.renders.Add(1)
}

// RecordBlink records a caret visibility change.
func (m *Metrics) RecordBlink() {
	m.blinks.Add(1)
}

// RecordEvent records a terminal event.
func (m *Metrics) RecordEvent() {
	m.events.Add(1)
}

// RecordResize records a terminal resize.
func (m *Metrics) RecordResize() {
	m.resizes.Add(1)
}

// RecordReload records an applied configuration.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// RecordRestart records animators being rebuilt.
func (m *Metrics) RecordRestart() {
	m.restarts.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Uptime:   time.Since(time.Unix(0, m.startTime.Load())),
		Renders:  m.renders.Load(),
		Blinks:   m.blinks.Load(),
		Events:   m.events.Load(),
		Resizes:  m.resizes.Load(),
		Reloads:  m.reloads.Load(),
		Restarts: m.restarts.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.renders.Store(0)
	m.blinks.Store(0)
	m.events.Store(0)
	m.resizes.Store(0)
	m.reloads.Store(0)
	m.restarts.Store(0)
	m.startTime.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime   time.Duration
	Renders  uint64
	Blinks   uint64
	Events   uint64
	Resizes  uint64
	Reloads  uint64
	Restarts uint64
}

// RendersPerSecond returns the average repaint rate since start.
func (s MetricsSnapshot) RendersPerSecond() float64 {
	if s.Uptime <= 0 {
		return 0
	}
	return float64(s.Renders) / s.Uptime.Seconds()
}
