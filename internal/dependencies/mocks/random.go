package mocks

import (
	"sync"

	"github.com/mcoot/gameportal/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	mu sync.Mutex

	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// Float64Results is a queue of results to return from Float64
	Float64Results []float64
	float64Index   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Float64 returns the next queued result, or 0 if none remaining
func (r *MockRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.float64Index >= len(r.Float64Results) {
		return 0
	}
	result := r.Float64Results[r.float64Index]
	r.float64Index++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueFloat64 adds values to the Float64 result queue
func (r *MockRandom) QueueFloat64(values ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Float64Results = append(r.Float64Results, values...)
}
