package definevalidator

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks validation performance metrics using lock-free atomic
// operations. All methods are safe for concurrent use.
type Metrics struct {
	// Run counts
	runsTotal  atomic.Uint64
	runsPassed atomic.Uint64

	// Timing (stored as nanoseconds)
	runTimeTotal atomic.Uint64
	runTimeMin   atomic.Uint64
	runTimeMax   atomic.Uint64

	// Finding counts by severity
	criticalTotal atomic.Uint64
	majorTotal    atomic.Uint64
	minorTotal    atomic.Uint64
	infoTotal     atomic.Uint64

	// Per-layer timing
	layerTiming sync.Map // map[LayerID]*layerMetrics
}

// layerMetrics tracks metrics for a single validation layer.
type layerMetrics struct {
	invocations   atomic.Uint64
	totalTime     atomic.Uint64 // nanoseconds
	findingsFound atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.runTimeMin.Store(^uint64(0))
	return m
}

// RecordRun records a completed validation run.
func (m *Metrics) RecordRun(duration time.Duration, passed bool) {
	m.runsTotal.Add(1)
	if passed {
		m.runsPassed.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.runTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.runTimeMin.Load()
		if ns >= old {
			break
		}
		if m.runTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.runTimeMax.Load()
		if ns <= old {
			break
		}
		if m.runTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordFinding records a finding by severity.
func (m *Metrics) RecordFinding(severity Severity) {
	switch severity {
	case SeverityCritical:
		m.criticalTotal.Add(1)
	case SeverityMajor:
		m.majorTotal.Add(1)
	case SeverityMinor:
		m.minorTotal.Add(1)
	case SeverityInfo:
		m.infoTotal.Add(1)
	}
}

// RecordLayer records metrics for one executed layer.
func (m *Metrics) RecordLayer(layer LayerID, duration time.Duration, findings int) {
	lm := m.getOrCreateLayerMetrics(layer)
	lm.invocations.Add(1)
	lm.totalTime.Add(uint64(duration.Nanoseconds()))
	lm.findingsFound.Add(uint64(findings))
}

func (m *Metrics) getOrCreateLayerMetrics(layer LayerID) *layerMetrics {
	if v, ok := m.layerTiming.Load(layer); ok {
		return v.(*layerMetrics)
	}
	lm := &layerMetrics{}
	actual, _ := m.layerTiming.LoadOrStore(layer, lm)
	return actual.(*layerMetrics)
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	RunsTotal     uint64            `json:"runsTotal"`
	RunsPassed    uint64            `json:"runsPassed"`
	RunTimeTotal  time.Duration     `json:"runTimeTotal"`
	RunTimeMin    time.Duration     `json:"runTimeMin"`
	RunTimeMax    time.Duration     `json:"runTimeMax"`
	CriticalTotal uint64            `json:"criticalTotal"`
	MajorTotal    uint64            `json:"majorTotal"`
	MinorTotal    uint64            `json:"minorTotal"`
	InfoTotal     uint64            `json:"infoTotal"`
	Layers        map[LayerID]LayerSnapshot `json:"layers,omitempty"`
}

// LayerSnapshot is a point-in-time copy of one layer's metrics.
type LayerSnapshot struct {
	Invocations   uint64        `json:"invocations"`
	TotalTime     time.Duration `json:"totalTime"`
	FindingsFound uint64        `json:"findingsFound"`
}

// Snapshot returns a consistent-enough copy of the current metrics.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		RunsTotal:     m.runsTotal.Load(),
		RunsPassed:    m.runsPassed.Load(),
		RunTimeTotal:  time.Duration(m.runTimeTotal.Load()),
		RunTimeMax:    time.Duration(m.runTimeMax.Load()),
		CriticalTotal: m.criticalTotal.Load(),
		MajorTotal:    m.majorTotal.Load(),
		MinorTotal:    m.minorTotal.Load(),
		InfoTotal:     m.infoTotal.Load(),
		Layers:        make(map[LayerID]LayerSnapshot),
	}
	if min := m.runTimeMin.Load(); min != ^uint64(0) {
		s.RunTimeMin = time.Duration(min)
	}
	m.layerTiming.Range(func(key, value any) bool {
		lm := value.(*layerMetrics)
		s.Layers[key.(LayerID)] = LayerSnapshot{
			Invocations:   lm.invocations.Load(),
			TotalTime:     time.Duration(lm.totalTime.Load()),
			FindingsFound: lm.findingsFound.Load(),
		}
		return true
	})
	return s
}
