package carousel

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

// manualClock is advanced explicitly by tests.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTimersFireInOrder(t *testing.T) {
	base := time.Unix(0, 0)
	tm := newTimers()
	var order []string

	tm.schedule(timerMeasure, base.Add(20*time.Millisecond), func() { order = append(order, "measure") })
	tm.schedule(timerAutoplay, base.Add(10*time.Millisecond), func() { order = append(order, "autoplay") })
	tm.schedule(timerHover, base.Add(time.Second), func() { order = append(order, "hover") })

	tm.fire(base.Add(5 * time.Millisecond))
	if len(order) != 0 {
		t.Fatalf("nothing should be due yet, ran %v", order)
	}

	tm.fire(base.Add(20 * time.Millisecond))
	if !reflect.DeepEqual(order, []string{"autoplay", "measure"}) {
		t.Errorf("order = %v", order)
	}
	if tm.active(timerAutoplay) || tm.active(timerMeasure) {
		t.Error("fired timers must be removed")
	}
	if !tm.active(timerHover) {
		t.Error("future timer must stay pending")
	}
}

func TestTimersReplaceAndCancel(t *testing.T) {
	base := time.Unix(0, 0)
	tm := newTimers()
	ran := 0

	tm.schedule(timerAutoplay, base, func() { ran += 1 })
	tm.schedule(timerAutoplay, base, func() { ran += 10 })
	tm.fire(base)
	if ran != 10 {
		t.Errorf("ran = %d, want only the replacement task", ran)
	}

	tm.schedule(timerMeasure, base, func() { ran = -1 })
	tm.cancel(timerMeasure)
	tm.schedule(timerHover, base, func() { ran = -1 })
	tm.cancelAll()
	tm.fire(base.Add(time.Hour))
	if ran != 10 {
		t.Errorf("cancelled task ran, ran = %d", ran)
	}
}

func TestTimersReschedule(t *testing.T) {
	base := time.Unix(0, 0)
	tm := newTimers()
	count := 0

	var tick func()
	tick = func() {
		count++
		tm.schedule(timerMeasure, base.Add(time.Duration(count)*10*time.Millisecond), tick)
	}
	tm.schedule(timerMeasure, base, tick)

	tm.fire(base)
	if count != 1 || !tm.active(timerMeasure) {
		t.Fatalf("count = %d, active = %v", count, tm.active(timerMeasure))
	}
	tm.fire(base.Add(10 * time.Millisecond))
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestTimersCancelledByEarlierTask(t *testing.T) {
	base := time.Unix(0, 0)
	tm := newTimers()
	hoverRan := false

	tm.schedule(timerAutoplay, base, func() { tm.cancel(timerHover) })
	tm.schedule(timerHover, base.Add(time.Millisecond), func() { hoverRan = true })
	tm.fire(base.Add(time.Second))
	if hoverRan {
		t.Error("task cancelled by an earlier task must not run")
	}
}
