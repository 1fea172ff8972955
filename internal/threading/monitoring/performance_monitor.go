package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Pass identifies one timed section of a frame
type Pass int

const (
	PassColumns  Pass = iota // Wall and pillar column casting
	PassSurfaces             // Surface processing, sorting and painting
	passCount
)

// PerformanceMonitor tracks per-frame render timings and counts.
// Timers may be started from any goroutine; values are last-frame snapshots
// plus a running average of frame time.
type PerformanceMonitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame
	passTime   [passCount]atomic.Uint64

	columnsDrawn    atomic.Int64
	surfacesQueued  atomic.Int64
	surfacesDropped atomic.Int64

	mutex        sync.RWMutex
	avgFrameTime float64 // nanoseconds, exponential moving average
	startTime    time.Time
}

// frameTimeSmoothing weights the newest frame in the moving average
const frameTimeSmoothing = 0.1

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	elapsed := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(elapsed)
	count := ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	if count == 1 {
		ft.monitor.avgFrameTime = float64(elapsed)
	} else {
		ft.monitor.avgFrameTime += (float64(elapsed) - ft.monitor.avgFrameTime) * frameTimeSmoothing
	}
	ft.monitor.mutex.Unlock()
}

// PassTimer measures one pass of a frame
type PassTimer struct {
	monitor   *PerformanceMonitor
	pass      Pass
	startTime time.Time
}

// StartPass begins timing a pass
func (pm *PerformanceMonitor) StartPass(pass Pass) *PassTimer {
	return &PassTimer{
		monitor:   pm,
		pass:      pass,
		startTime: time.Now(),
	}
}

// End completes pass timing
func (pt *PassTimer) End() {
	if pt.pass < 0 || pt.pass >= passCount {
		return
	}
	pt.monitor.passTime[pt.pass].Store(uint64(time.Since(pt.startTime).Nanoseconds()))
}

// RecordCounts stores the per-frame render counts
func (pm *PerformanceMonitor) RecordCounts(columns, queued, dropped int) {
	pm.columnsDrawn.Store(int64(columns))
	pm.surfacesQueued.Store(int64(queued))
	pm.surfacesDropped.Store(int64(dropped))
}

// RenderMetrics is a snapshot of the monitor
type RenderMetrics struct {
	Frames          uint64
	FrameTime       time.Duration
	AvgFrameTime    time.Duration
	ColumnPassTime  time.Duration
	SurfacePassTime time.Duration
	FramesPerSecond float64
	ColumnsDrawn    int
	SurfacesQueued  int
	SurfacesDropped int
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() RenderMetrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	start := pm.startTime
	pm.mutex.RUnlock()

	fps := 0.0
	if avg > 0 {
		fps = float64(time.Second) / avg
	}

	return RenderMetrics{
		Frames:          pm.frameCount.Load(),
		FrameTime:       time.Duration(pm.frameTime.Load()),
		AvgFrameTime:    time.Duration(avg),
		ColumnPassTime:  time.Duration(pm.passTime[PassColumns].Load()),
		SurfacePassTime: time.Duration(pm.passTime[PassSurfaces].Load()),
		FramesPerSecond: fps,
		ColumnsDrawn:    int(pm.columnsDrawn.Load()),
		SurfacesQueued:  int(pm.surfacesQueued.Load()),
		SurfacesDropped: int(pm.surfacesDropped.Load()),
		Uptime:          time.Since(start),
	}
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	for i := range pm.passTime {
		pm.passTime[i].Store(0)
	}
	pm.columnsDrawn.Store(0)
	pm.surfacesQueued.Store(0)
	pm.surfacesDropped.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
