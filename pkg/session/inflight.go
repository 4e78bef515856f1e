package session

import (
	"sync"
	"sync/atomic"

	"krishi/pkg/i18n"
)

// inflight counts outstanding requests. Loading is count > 0.
type inflight struct {
	n atomic.Int64
}

// acquire registers one request and returns its release func. Calling the
// release more than once is a no-op.
func (f *inflight) acquire() func() {
	f.n.Add(1)
	var once sync.Once
	return func() { once.Do(func() { f.n.Add(-1) }) }
}

func (f *inflight) active() bool { return f.n.Load() > 0 }

// ticket records what the session looked like when a request was issued.
// A continuation applies its result only while the ticket is current.
type ticket struct {
	epoch    uint64
	language i18n.Language
	location string
	done     func()
}

// issueLocked must be called with c.mu held.
func (c *Controller) issueLocked() ticket {
	return ticket{
		epoch:    c.epoch,
		language: c.st.Language,
		location: c.st.WeatherLocation,
		done:     c.inflight.acquire(),
	}
}

func (c *Controller) currentLocked(t ticket) bool { return t.epoch == c.epoch }

// advanceLocked moves the session to a new epoch. Requests issued before it
// are discarded when they complete.
func (c *Controller) advanceLocked() { c.epoch++ }
