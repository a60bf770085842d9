// Package notify surfaces user-facing toasts. Every toast is logged and
// kept in a bounded feed that screens poll.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/ports"
)

// Level distinguishes success from error toasts.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is one toast.
type Notice struct {
	Seq     uint64    `json:"seq"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// DefaultCapacity is the number of notices retained.
const DefaultCapacity = 50

// Feed implements ports.Notifier.
type Feed struct {
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	seq     uint64
	notices []Notice
	cap     int
}

// NewFeed creates a feed retaining up to capacity notices.
func NewFeed(capacity int, logger zerolog.Logger) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{logger: logger, now: time.Now, cap: capacity}
}

func (f *Feed) Success(msg string) { f.push(LevelSuccess, msg) }
func (f *Feed) Error(msg string)   { f.push(LevelError, msg) }

func (f *Feed) push(level Level, msg string) {
	f.mu.Lock()
	f.seq++
	n := Notice{Seq: f.seq, Level: level, Message: msg, At: f.now()}
	f.notices = append(f.notices, n)
	if over := len(f.notices) - f.cap; over > 0 {
		f.notices = append([]Notice(nil), f.notices[over:]...)
	}
	f.mu.Unlock()

	ev := f.logger.Info()
	if level == LevelError {
		ev = f.logger.Warn()
	}
	ev.Uint64("seq", n.Seq).Str("toast", string(level)).Msg(msg)
}

// Since returns the notices with a sequence number above after.
func (f *Feed) Since(after uint64) []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Notice{}
	for _, n := range f.notices {
		if n.Seq > after {
			out = append(out, n)
		}
	}
	return out
}

var _ ports.Notifier = (*Feed)(nil)
