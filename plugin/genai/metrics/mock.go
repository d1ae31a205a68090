package metrics

import (
	"context"
	"sync"
)

// MockRecorder records attempts in memory for tests.
type MockRecorder struct {
	mu       sync.Mutex
	Attempts []Attempt
}

// RecordAttempt implements Recorder.
func (m *MockRecorder) RecordAttempt(_ context.Context, attempt Attempt) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts = append(m.Attempts, attempt)
}

// Recorded returns a copy of the recorded attempts.
func (m *MockRecorder) Recorded() []Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Attempt(nil), m.Attempts...)
}
