package config

import "sync"

// RenderSettings holds settings read by the frame loop every frame
type RenderSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = uncapped
}

var globalRenderSettings = &RenderSettings{}

// GetFPSLimit returns the current frame cap
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap; values <= 0 disable it
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// Apply publishes the frame-loop settings of c
func Apply(c Config) {
	SetFPSLimit(c.Window.FPSLimit)
}
