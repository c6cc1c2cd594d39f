package perf

import (
	"runtime"
	"sync"
	"time"
)

// Series names recorded by the section loader.
const (
	SeriesSectionLoad  = "section_load"
	SeriesOutlineBuild = "outline_build"
)

// lowCoreThreshold is the CPU count below which clients are told to cut animations.
const lowCoreThreshold = 4

// Metrics is the payload served by the metrics endpoint.
type Metrics struct {
	UptimeMs          int64                    `json:"uptime_ms"`
	LastInteractionMs int64                    `json:"last_interaction_ms"` // Since start; 0 when none yet
	HeapAllocBytes    uint64                   `json:"heap_alloc_bytes"`
	ReducedMotion     bool                     `json:"reduced_motion"`
	Series            map[string]StatsSnapshot `json:"series"`
}

// Monitor collects load and interaction timings for the whole process.
type Monitor struct {
	mu              sync.Mutex
	start           time.Time
	lastInteraction time.Time
	window          time.Duration
	series          map[string]*Series
	cpus            int
}

func NewMonitor(window time.Duration) *Monitor {
	return &Monitor{
		start:  time.Now(),
		window: window,
		series: make(map[string]*Series),
		cpus:   runtime.NumCPU(),
	}
}

// Record adds one latency sample to the named series.
func (m *Monitor) Record(name string, d time.Duration) {
	m.mu.Lock()
	s, ok := m.series[name]
	if !ok {
		s = NewSeries(m.window)
		m.series[name] = s
	}
	m.mu.Unlock()
	s.Record(d)
}

// Time records the time elapsed since start under name.
func (m *Monitor) Time(name string, start time.Time) {
	m.Record(name, time.Since(start))
}

// Interaction notes a user interaction at the current time.
func (m *Monitor) Interaction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastInteraction = time.Now()
}

// ReducedMotion reports whether the host is too small for full animations.
func (m *Monitor) ReducedMotion() bool {
	return m.cpus < lowCoreThreshold
}

func (m *Monitor) Snapshot() Metrics {
	m.mu.Lock()
	out := Metrics{
		UptimeMs:      time.Since(m.start).Milliseconds(),
		ReducedMotion: m.cpus < lowCoreThreshold,
		Series:        make(map[string]StatsSnapshot, len(m.series)),
	}
	if !m.lastInteraction.IsZero() {
		out.LastInteractionMs = m.lastInteraction.Sub(m.start).Milliseconds()
	}
	series := make(map[string]*Series, len(m.series))
	for k, v := range m.series {
		series[k] = v
	}
	m.mu.Unlock()

	for k, s := range series {
		out.Series[k] = s.Snapshot()
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	out.HeapAllocBytes = ms.HeapAlloc
	return out
}
