package session

import (
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a one-shot user notification.
type Notice struct {
	Level   Level     `json:"level"`
	Action  string    `json:"action"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Inbox buffers notices until Drain. When full the oldest notice is dropped.
type Inbox struct {
	mu      sync.Mutex
	max     int
	notices []Notice
}

func NewInbox(max int) *Inbox {
	if max <= 0 {
		max = 64
	}
	return &Inbox{max: max}
}

func (b *Inbox) Notify(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.notices) >= b.max {
		b.notices = b.notices[1:]
	}
	b.notices = append(b.notices, n)
}

func (b *Inbox) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}
