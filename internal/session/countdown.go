package session

import "time"

// countdown is a revocable chain of callbacks. Each start issues a new
// generation; callbacks from an older generation are stale and must be
// ignored by their handler. All methods are called with the engine lock held.
type countdown struct {
	clock  Clock
	gen    uint64
	active bool
	handle Handle
}

// start cancels any pending callback and schedules fire after d under a
// fresh generation.
func (c *countdown) start(d time.Duration, fire func(gen uint64)) {
	c.stop()
	c.active = true
	c.schedule(d, fire)
}

// again schedules the next callback of the current generation.
func (c *countdown) again(d time.Duration, fire func(gen uint64)) {
	if c.active {
		c.schedule(d, fire)
	}
}

func (c *countdown) schedule(d time.Duration, fire func(gen uint64)) {
	gen := c.gen
	c.handle = c.clock.AfterFunc(d, func() { fire(gen) })
}

// stop revokes the pending callback and invalidates its generation.
func (c *countdown) stop() {
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
	c.active = false
	c.gen++
}

// current reports whether gen belongs to the live countdown.
func (c *countdown) current(gen uint64) bool {
	return c.active && gen == c.gen
}
