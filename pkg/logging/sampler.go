// Package logging carries small helpers around log/slog.
package logging

import (
	"sync"
)

// ErrorSampler keeps repeated failures (a down API polled every cycle, for
// example) from flooding the log: the first occurrence of an error key is
// logged, then every Nth after that.
type ErrorSampler struct {
	mu       sync.RWMutex
	counts   map[string]int
	interval int
}

// NewErrorSampler creates a sampler that passes the 1st occurrence and then
// every interval-th one.
func NewErrorSampler(interval int) *ErrorSampler {
	if interval < 1 {
		interval = 10
	}
	return &ErrorSampler{
		counts:   make(map[string]int),
		interval: interval,
	}
}

// ShouldLog records one occurrence of key and reports whether it should be
// logged.
func (s *ErrorSampler) ShouldLog(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[key]++
	count := s.counts[key]

	return count == 1 || count%s.interval == 0
}

// GetCount returns the occurrence count for key.
func (s *ErrorSampler) GetCount(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[key]
}

// Reset clears the count for key, typically after the condition recovers.
func (s *ErrorSampler) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
}

// ResetAll clears every count.
func (s *ErrorSampler) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = make(map[string]int)
}
