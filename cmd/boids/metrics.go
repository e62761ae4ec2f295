package main

import "time"

// Metrics collects frame-rate and phase-timing diagnostics for the overlay.
// It lives entirely on the presentation side; the simulation core never sees
// it. Reset starts a fresh measurement window.
type Metrics struct {
	frames int
	window time.Duration

	FPS       float64
	UpdateAvg float64 // ms, exponential moving average
	DrawAvg   float64 // ms, exponential moving average
}

// CountFrame accounts one frame of elapsed wall-clock time and refreshes the
// FPS figure once a full second has accumulated.
func (m *Metrics) CountFrame(elapsed time.Duration) {
	m.frames++
	m.window += elapsed
	if m.window >= time.Second {
		m.FPS = float64(m.frames) / m.window.Seconds()
		m.frames = 0
		m.window = 0
	}
}

// ObserveUpdate folds one Update duration into the rolling average.
func (m *Metrics) ObserveUpdate(d time.Duration) {
	m.UpdateAvg = m.UpdateAvg*0.95 + float64(d.Microseconds())/1000.0*0.05
}

// ObserveDraw folds one Draw duration into the rolling average.
func (m *Metrics) ObserveDraw(d time.Duration) {
	m.DrawAvg = m.DrawAvg*0.95 + float64(d.Microseconds())/1000.0*0.05
}

// Reset clears every counter and average.
func (m *Metrics) Reset() {
	*m = Metrics{}
}
