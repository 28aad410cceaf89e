package carousel

import (
	"sort"
	"time"
)

// Clock supplies the current time. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type timerPurpose int

const (
	timerAutoplay timerPurpose = iota
	timerMeasure
	timerInitialLoad
	timerHover
)

func (p timerPurpose) String() string {
	switch p {
	case timerAutoplay:
		return "autoplay"
	case timerMeasure:
		return "measure"
	case timerInitialLoad:
		return "initial-load"
	case timerHover:
		return "hover"
	default:
		return "unknown"
	}
}

type scheduledTask struct {
	at time.Time
	fn func()
}

// timers holds at most one pending task per purpose. Scheduling a purpose
// replaces whatever was pending for it. Tasks run from fire, on the caller's
// goroutine.
type timers struct {
	pending map[timerPurpose]scheduledTask
}

func newTimers() timers {
	return timers{pending: make(map[timerPurpose]scheduledTask)}
}

func (t *timers) schedule(p timerPurpose, at time.Time, fn func()) {
	t.pending[p] = scheduledTask{at: at, fn: fn}
}

func (t *timers) cancel(p timerPurpose) {
	delete(t.pending, p)
}

func (t *timers) cancelAll() {
	clear(t.pending)
}

func (t *timers) active(p timerPurpose) bool {
	_, ok := t.pending[p]
	return ok
}

// fire runs every task due at now, earliest first. A task is removed before it
// runs so it may reschedule its own purpose.
func (t *timers) fire(now time.Time) {
	var due []timerPurpose
	for p, task := range t.pending {
		if !task.at.After(now) {
			due = append(due, p)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		a, b := t.pending[due[i]], t.pending[due[j]]
		if a.at.Equal(b.at) {
			return due[i] < due[j]
		}
		return a.at.Before(b.at)
	})

	for _, p := range due {
		task, ok := t.pending[p]
		if !ok || task.at.After(now) {
			// Cancelled or rescheduled by an earlier task.
			continue
		}
		delete(t.pending, p)
		task.fn()
	}
}
