package threading

import (
	"reddust/internal/threading/core"
	"reddust/internal/threading/monitoring"
	"reddust/internal/threading/rendering"
)

// ThreadingComponents holds the components shared between the render loop and
// background workers
type ThreadingComponents struct {
	WorkerPool         *core.WorkerPool
	TextureCache       *rendering.TextureCache
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates and starts all threading components.
// workers <= 0 sizes the pool to the CPU count.
func NewThreadingComponents(workers int) *ThreadingComponents {
	pool := core.NewWorkerPool(workers)
	pool.Start()
	return &ThreadingComponents{
		WorkerPool:         pool,
		TextureCache:       rendering.NewTextureCache(),
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.WorkerPool != nil {
		tc.WorkerPool.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.RenderMetrics {
	if tc.PerformanceMonitor == nil {
		return monitoring.RenderMetrics{}
	}
	return tc.PerformanceMonitor.GetCurrentMetrics()
}
