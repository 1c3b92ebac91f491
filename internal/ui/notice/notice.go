package notice

import (
	"sync"
	"time"
)

// Durations used across the site: form success/error notices hold for 5s,
// profile save notices for 3s.
const (
	FormDuration    = 5 * time.Second
	ProfileDuration = 3 * time.Second
)

// Controller owns at most one visible transient notice per UI surface.
// A new Show supersedes the pending auto-hide atomically, so an old timer
// can never clear a newer notice.
type Controller struct {
	mu      sync.Mutex
	text    string
	visible bool
	timer   *time.Timer
	gen     uint64
}

func NewController() *Controller {
	return &Controller{}
}

// Show makes text visible and schedules the automatic hide after d.
func (c *Controller) Show(text string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.text = text
	c.visible = true
	c.timer = time.AfterFunc(d, func() { c.expire(gen) })
}

// Hide dismisses the notice and cancels any pending auto-hide. Hiding an
// already-hidden notice is a no-op.
func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.text = ""
	c.visible = false
}

func (c *Controller) Current() (text string, visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.visible
}

// expire only hides the notice the timer was armed for; superseded timers
// find a newer generation and do nothing.
func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.timer = nil
	c.text = ""
	c.visible = false
}
