package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShowThenExpire(t *testing.T) {
	c := NewController()

	c.Show("Thank you for submitting the form.", 20*time.Millisecond)

	text, visible := c.Current()
	assert.True(t, visible)
	assert.Equal(t, "Thank you for submitting the form.", text)

	assert.Eventually(t, func() bool {
		_, visible := c.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

func TestShowSupersedesEarlierTimer(t *testing.T) {
	c := NewController()

	c.Show("first", 20*time.Millisecond)
	c.Show("second", 500*time.Millisecond)

	// The first timer's deadline passes; the second notice must survive it.
	time.Sleep(60 * time.Millisecond)

	text, visible := c.Current()
	assert.True(t, visible)
	assert.Equal(t, "second", text)
}

func TestHide(t *testing.T) {
	c := NewController()

	c.Show("notice", time.Minute)
	c.Hide()

	_, visible := c.Current()
	assert.False(t, visible)

	// Hiding an already hidden notice is fine.
	c.Hide()
	_, visible = c.Current()
	assert.False(t, visible)
}

func TestHideWithoutShow(t *testing.T) {
	c := NewController()

	c.Hide()

	text, visible := c.Current()
	assert.False(t, visible)
	assert.Empty(t, text)
}
