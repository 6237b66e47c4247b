package user

import (
	"sync"
	"time"
)

// attemptLimiter is a process-wide sliding-window counter keyed by client
// address. State is in memory only: it resets on restart and expired windows
// are replaced on access rather than swept by a background job.
type attemptLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*attemptEntry
}

type attemptEntry struct {
	count int
	reset time.Time
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		max:     max,
		window:  window,
		entries: make(map[string]*attemptEntry),
	}
}

// Allow counts one attempt for key and reports whether it is still within
// the window's budget.
func (l *attemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok || now.After(e.reset) {
		l.entries[key] = &attemptEntry{count: 1, reset: now.Add(l.window)}
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// Record counts a failure for key without an allow decision.
func (l *attemptLimiter) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok || now.After(e.reset) {
		l.entries[key] = &attemptEntry{count: 1, reset: now.Add(l.window)}
		return
	}
	e.count++
}

// Exceeded reports whether key has hit the budget inside the current window.
func (l *attemptLimiter) Exceeded(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || time.Now().After(e.reset) {
		return false
	}
	return e.count >= l.max
}

// Reset forgets key, e.g. after a successful login.
func (l *attemptLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}
