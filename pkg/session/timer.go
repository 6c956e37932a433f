package session

import "time"

// Timer kind constants carry the three deadlines spec §4.5 names: the V2G
// sequence timer (time allowed for a single request/response exchange),
// the ongoing timer (time allowed between the end of one exchange and the
// start of the next), and the performance timer (the tighter per-exchange
// bound -20 and CurrentDemand/ChargeLoop impose during active charging).
type TimerKind uint8

const (
	TimerSequence TimerKind = iota
	TimerOngoing
	TimerPerformance
)

func (k TimerKind) String() string {
	switch k {
	case TimerSequence:
		return "Sequence"
	case TimerOngoing:
		return "Ongoing"
	case TimerPerformance:
		return "Performance"
	default:
		return "Unknown"
	}
}

// Default durations per spec §4.5. DefaultTimeouts applies the same three
// values to -2 and -20 sessions.
const (
	SequenceTimeout    = 40 * time.Second
	OngoingTimeout     = 60 * time.Second
	PerformanceTimeout = 4500 * time.Millisecond
)

// Timeouts bundles the three deadlines a single Session arms and
// re-arms as it moves through states.
type Timeouts struct {
	Sequence    time.Duration
	Ongoing     time.Duration
	Performance time.Duration
}

// DefaultTimeouts returns the spec §4.5 values, identical across dialects.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Sequence:    SequenceTimeout,
		Ongoing:     OngoingTimeout,
		Performance: PerformanceTimeout,
	}
}

// Timer is a single armed deadline. It is not a time.Timer wrapper: the
// session loop (pkg/evcc, pkg/secc) selects over a computed
// remaining duration each iteration rather than holding live
// *time.Timer channels, so a Timer can be freely re-armed or cancelled
// without leaking goroutines (spec §5 concurrency model).
type Timer struct {
	Kind     TimerKind
	Deadline time.Time
	armed    bool
}

// Arm sets the timer to fire d from now.
func (t *Timer) Arm(kind TimerKind, d time.Duration, now time.Time) {
	t.Kind = kind
	t.Deadline = now.Add(d)
	t.armed = true
}

// Cancel disarms the timer.
func (t *Timer) Cancel() {
	t.armed = false
}

// Armed reports whether the timer currently has a live deadline.
func (t *Timer) Armed() bool {
	return t.armed
}

// Remaining returns how long until the timer fires, or zero/negative if
// it has already expired. It is meaningless when Armed() is false.
func (t *Timer) Remaining(now time.Time) time.Duration {
	return t.Deadline.Sub(now)
}

// Expired reports whether the timer is armed and its deadline has passed.
func (t *Timer) Expired(now time.Time) bool {
	return t.armed && !now.Before(t.Deadline)
}
