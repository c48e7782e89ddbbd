package app

import (
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned cancel is called.
// cancel must be safe to call more than once and from inside fn.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler backs each task with a time.Ticker and one goroutine.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
