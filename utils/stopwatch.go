package utils

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Watch measures algorithm time; pausing excludes time spent outside the algorithm (e.g. observers).
type Watch struct {
	mu           sync.RWMutex
	paused       bool
	pauseTime    time.Time
	startTime    time.Time
	adjustedTime time.Time
}

func (w *Watch) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		log.Panic().Msg("watch cant start because paused")
	}
	w.startTime = time.Now()
	w.adjustedTime = w.startTime
}

func (w *Watch) Elapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	now := time.Now()
	if w.paused {
		return now.Sub(w.adjustedTime) - now.Sub(w.pauseTime)
	}
	return now.Sub(w.adjustedTime)
}

// Includes paused time.
func (w *Watch) AbsoluteElapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return time.Since(w.startTime)
}

func (w *Watch) Pause() time.Duration { // returns currently elapsed time
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		log.Panic().Msg("watch already paused")
	}
	w.pauseTime = time.Now()
	w.paused = true
	return w.pauseTime.Sub(w.adjustedTime)
}

func (w *Watch) UnPause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.paused {
		log.Panic().Msg("watch wasn't paused")
	}
	w.paused = false
	w.adjustedTime = w.adjustedTime.Add(time.Since(w.pauseTime))
}
