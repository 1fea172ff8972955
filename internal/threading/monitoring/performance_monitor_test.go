package monitoring

import (
	"testing"
	"time"
)

func TestPerformanceMonitor_FrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	for i := 0; i < 3; i++ {
		timer := pm.StartFrame()
		time.Sleep(time.Millisecond)
		timer.EndFrame()
	}

	metrics := pm.GetCurrentMetrics()
	if metrics.Frames != 3 {
		t.Errorf("Frames = %d, want 3", metrics.Frames)
	}
	if metrics.FrameTime < time.Millisecond {
		t.Errorf("FrameTime = %v, want at least 1ms", metrics.FrameTime)
	}
	if metrics.AvgFrameTime <= 0 || metrics.FramesPerSecond <= 0 {
		t.Errorf("average %v fps %v should be positive", metrics.AvgFrameTime, metrics.FramesPerSecond)
	}
}

func TestPerformanceMonitor_PassesAndCounts(t *testing.T) {
	pm := NewPerformanceMonitor()

	columns := pm.StartPass(PassColumns)
	time.Sleep(time.Millisecond)
	columns.End()
	pm.StartPass(PassSurfaces).End()
	pm.StartPass(Pass(42)).End() // unknown passes are ignored

	pm.RecordCounts(320, 12, 3)

	metrics := pm.GetCurrentMetrics()
	if metrics.ColumnPassTime < time.Millisecond {
		t.Errorf("ColumnPassTime = %v", metrics.ColumnPassTime)
	}
	if metrics.ColumnsDrawn != 320 || metrics.SurfacesQueued != 12 || metrics.SurfacesDropped != 3 {
		t.Errorf("counts = %d/%d/%d", metrics.ColumnsDrawn, metrics.SurfacesQueued, metrics.SurfacesDropped)
	}
}

func TestPerformanceMonitor_Reset(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.StartFrame().EndFrame()
	pm.RecordCounts(1, 2, 3)
	pm.Reset()

	metrics := pm.GetCurrentMetrics()
	if metrics.Frames != 0 || metrics.ColumnsDrawn != 0 || metrics.AvgFrameTime != 0 {
		t.Errorf("metrics after Reset = %+v", metrics)
	}
	if metrics.FramesPerSecond != 0 {
		t.Errorf("fps after Reset = %v", metrics.FramesPerSecond)
	}
}
