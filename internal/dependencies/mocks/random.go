package mocks

import (
	"github.com/shootout-game/shootout-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing. String results
// are served from a queue; once the queue is drained it falls back to a
// counter so ID generation stays unique without explicit queueing.
type MockRandom struct {
	IntnResults []int
	intnIndex   int

	StringResults []string
	stringIndex   int

	fallback int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// String returns the next queued result, or a unique counter-based string if
// the queue is empty
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		r.fallback++
		return uniqueString(r.fallback, length)
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.StringResults = nil
	r.stringIndex = 0
	r.fallback = 0
}

func uniqueString(n, length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	result := make([]byte, 0, length)
	for n > 0 {
		result = append(result, alphabet[n%len(alphabet)])
		n /= len(alphabet)
	}
	for len(result) < length {
		result = append(result, 'a')
	}
	return string(result[:length])
}
