package form

import "time"

// DefaultNotificationDelay is how long a notification stays visible
const DefaultNotificationDelay = 4 * time.Second

// Timer is the part of *time.Timer the notifier needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through StdAfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func StdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Notifier schedules the clearing of the current notification.
//
// Each Schedule or Cancel starts a new generation and stops the previous
// timer; a callback whose generation is no longer current must be ignored,
// which callers check with Current. Notifier is not safe for concurrent use:
// the owner serializes calls, including the check inside the callback.
type Notifier struct {
	delay     time.Duration
	afterFunc AfterFunc
	gen       uint64
	timer     Timer
}

func NewNotifier(delay time.Duration, afterFunc AfterFunc) *Notifier {
	if delay <= 0 {
		delay = DefaultNotificationDelay
	}
	if afterFunc == nil {
		afterFunc = StdAfterFunc
	}
	return &Notifier{delay: delay, afterFunc: afterFunc}
}

// Schedule arranges for fn to run after the delay and returns its generation
func (n *Notifier) Schedule(fn func(gen uint64)) uint64 {
	n.Cancel()
	gen := n.gen
	n.timer = n.afterFunc(n.delay, func() { fn(gen) })
	return gen
}

// Cancel stops the pending clear, if any
func (n *Notifier) Cancel() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
}

// Current reports whether gen belongs to the pending clear
func (n *Notifier) Current(gen uint64) bool {
	return n.timer != nil && gen == n.gen
}

func (n *Notifier) Delay() time.Duration {
	return n.delay
}
