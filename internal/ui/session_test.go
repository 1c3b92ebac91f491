package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryGetCreatesOnce(t *testing.T) {
	r := NewRegistry()

	a := r.Get("visitor-a")
	b := r.Get("visitor-b")
	again := r.Get("visitor-a")

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, r.Len())
}

func TestSubmitGuard(t *testing.T) {
	s := NewRegistry().Get("visitor")

	assert.True(t, s.BeginSubmit())
	assert.False(t, s.BeginSubmit())

	s.EndSubmit()
	assert.True(t, s.BeginSubmit())
}

func TestPruneDropsIdleSessions(t *testing.T) {
	r := NewRegistry()
	r.Get("idle")

	time.Sleep(20 * time.Millisecond)
	r.Get("active")

	removed := r.Prune(10 * time.Millisecond)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.Len())

	// The surviving session is the recently touched one.
	assert.NotNil(t, r.Get("active"))
	assert.Equal(t, 1, r.Len())
}
