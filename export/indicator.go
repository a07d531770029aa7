package export

import (
	"sync"
	"time"
)

// DefaultHold is how long an Indicator stays in the copied state.
const DefaultHold = 2 * time.Second

// Indicator holds the transient "copied" acknowledgment shown after a
// successful copy. It reverts on its own after the hold duration; a new
// acknowledgment restarts the countdown.
type Indicator struct {
	mu     sync.Mutex
	hold   time.Duration
	notify func(copied bool)
	copied bool
	timer  *time.Timer
	gen    uint64
}

// IndicatorOption configures an Indicator.
type IndicatorOption func(*Indicator)

// WithHold sets how long the copied state lasts.
func WithHold(d time.Duration) IndicatorOption {
	return func(i *Indicator) {
		i.hold = d
	}
}

// WithNotify registers fn to be called on every state change. fn runs
// without the Indicator's lock held.
func WithNotify(fn func(copied bool)) IndicatorOption {
	return func(i *Indicator) {
		i.notify = fn
	}
}

// NewIndicator creates an Indicator in the idle state.
func NewIndicator(opts ...IndicatorOption) *Indicator {
	i := &Indicator{hold: DefaultHold}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Acknowledge switches to the copied state and schedules the revert.
func (i *Indicator) Acknowledge() {
	i.mu.Lock()
	i.copied = true
	i.gen++
	gen := i.gen
	if i.timer != nil {
		i.timer.Stop()
	}
	i.timer = time.AfterFunc(i.hold, func() { i.expire(gen) })
	i.mu.Unlock()

	i.changed(true)
}

// Copied reports whether the indicator is in the copied state.
func (i *Indicator) Copied() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.copied
}

// Reset returns to the idle state immediately.
func (i *Indicator) Reset() {
	i.mu.Lock()
	was := i.copied
	i.copied = false
	i.gen++
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.mu.Unlock()

	if was {
		i.changed(false)
	}
}

// expire reverts the state unless a later Acknowledge or Reset superseded
// the timer that fired.
func (i *Indicator) expire(gen uint64) {
	i.mu.Lock()
	if gen != i.gen || !i.copied {
		i.mu.Unlock()
		return
	}
	i.copied = false
	i.timer = nil
	i.mu.Unlock()

	i.changed(false)
}

func (i *Indicator) changed(copied bool) {
	if i.notify != nil {
		i.notify(copied)
	}
}
