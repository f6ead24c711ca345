package core

import (
	"sync"

	"github.com/spaghettifunk/anima-overlay/engine/containers"
)

const AVG_COUNT int = 30

// Metrics keeps a rolling frame-time average and a frames-per-second counter.
type Metrics struct {
	mu                 sync.Mutex
	msTimes            *containers.RingQueue[float64]
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{
		msTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records one frame that took frameElapsedTime seconds.
func (m *Metrics) Update(frameElapsedTime float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	if m.msTimes.IsFull() {
		_, _ = m.msTimes.Dequeue()
	}
	_ = m.msTimes.Enqueue(frameMS)

	sum := 0.0
	m.msTimes.Each(func(v float64) {
		sum += v
	})
	m.msAvg = sum / float64(m.msTimes.Len())

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	m.frames++
	if m.accumulatedFrameMS >= 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}
}

func (m *Metrics) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.msAvg
}

func (m *Metrics) Frame() (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps, m.msAvg
}
