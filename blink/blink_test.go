package blink_test

import (
	"testing"
	"time"

	"github.com/rjkroege/textsel/blink"
	"github.com/rjkroege/textsel/textseltest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newController(t *testing.T) (*blink.Controller, *textseltest.Scheduler, *int) {
	t.Helper()
	s := &textseltest.Scheduler{}
	changes := new(int)
	c := blink.New(blink.Config{
		Delay:     blink.DefaultDelay,
		Duration:  blink.DefaultDuration,
		Scheduler: s,
		OnChange:  func() { *changes++ },
	})
	return c, s, changes
}

func TestNewIsStopped(t *testing.T) {
	c, s, _ := newController(t)
	if got, want := c.State(), blink.Stopped; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	if got := c.Opacity(); got != 0 {
		t.Errorf("Opacity() = %v, want 0", got)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestStartWaitsForDelay(t *testing.T) {
	c, s, changes := newController(t)
	c.Start(false)

	if got, want := c.State(), blink.Delayed; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	if got := c.Opacity(); got != 1 {
		t.Errorf("Opacity() = %v, want 1", got)
	}

	s.Advance(blink.DefaultDelay - time.Millisecond)
	if *changes != 0 {
		t.Errorf("OnChange called %d times before the delay expired", *changes)
	}
	if got, want := c.State(), blink.Delayed; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}

	s.Advance(time.Millisecond)
	if got, want := c.State(), blink.BlinkOn; got != want {
		t.Errorf("State() after delay = %v, want %v", got, want)
	}
	if *changes == 0 {
		t.Error("OnChange never called after the delay expired")
	}
}

func TestRestartSkipsDelay(t *testing.T) {
	c, s, _ := newController(t)
	c.Start(true)
	s.Advance(0)
	if got, want := c.State(), blink.BlinkOn; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

func TestBlinkCycle(t *testing.T) {
	c, s, _ := newController(t)
	c.Start(false)

	// Delay, fade in (opacity stays at 1 since it starts there), pause.
	s.Advance(blink.DefaultDelay + blink.DefaultDuration)
	if got := c.Opacity(); got != 1 {
		t.Errorf("Opacity() after fade in = %v, want 1", got)
	}
	s.Advance(blink.Pause + blink.DefaultDuration/4)
	if got, want := c.State(), blink.BlinkOff; got != want {
		t.Errorf("State() mid fade out = %v, want %v", got, want)
	}
	if o := c.Opacity(); o <= 0 || o >= 1 {
		t.Errorf("Opacity() mid fade out = %v, want strictly between 0 and 1", o)
	}

	// Finish fading out; the next fade in starts at 0.
	s.Advance(blink.DefaultDuration / 4)
	if got := c.Opacity(); got != 0 {
		t.Errorf("Opacity() after fade out = %v, want 0", got)
	}
	s.Advance(blink.DefaultDuration / 2)
	if got, want := c.State(), blink.BlinkOn; got != want {
		t.Errorf("State() mid fade in = %v, want %v", got, want)
	}
	if o := c.Opacity(); o <= 0 || o >= 1 {
		t.Errorf("Opacity() mid fade in = %v, want strictly between 0 and 1", o)
	}
}

func TestStopCancelsEverything(t *testing.T) {
	c, s, changes := newController(t)
	c.Start(false)
	s.Advance(blink.DefaultDelay + 50*time.Millisecond)

	if !c.Stop() {
		t.Error("Stop() = false on a running controller, want true")
	}
	n := *changes
	s.Advance(10 * time.Second)
	if *changes != n {
		t.Errorf("OnChange called %d times after Stop", *changes-n)
	}
	if got, want := c.State(), blink.Stopped; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	if got := c.Opacity(); got != 0 {
		t.Errorf("Opacity() = %v, want 0", got)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
	if c.Stop() {
		t.Error("second Stop() = true, want false")
	}
}

// A timer whose Stop comes too late must still not animate.
type leakyScheduler struct {
	fns []func()
}

type noStop struct{}

func (noStop) Stop() bool { return false }

func (l *leakyScheduler) AfterFunc(d time.Duration, fn func()) blink.Timer {
	l.fns = append(l.fns, fn)
	return noStop{}
}

func TestAbortedCallbackIsNoop(t *testing.T) {
	l := &leakyScheduler{}
	changes := 0
	c := blink.New(blink.Config{Scheduler: l, OnChange: func() { changes++ }})
	c.Start(false)
	c.Stop()

	for _, fn := range l.fns {
		fn()
	}
	if changes != 0 {
		t.Errorf("stale callback redrew %d times", changes)
	}
	if got, want := c.State(), blink.Stopped; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

func TestPointerSuppression(t *testing.T) {
	c, s, changes := newController(t)
	c.Start(false)
	s.Advance(blink.DefaultDelay + blink.DefaultDuration + blink.Pause + 100*time.Millisecond)

	c.SetPointerDown(true)
	if got, want := c.State(), blink.Suppressed; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	if got := c.Opacity(); got != 1 {
		t.Errorf("Opacity() while suppressed = %v, want 1", got)
	}
	n := *changes
	s.Advance(5 * time.Second)
	if *changes != n {
		t.Errorf("clock advanced while suppressed: %d changes", *changes-n)
	}

	c.Restart()
	if got, want := c.State(), blink.Suppressed; got != want {
		t.Errorf("Restart() while suppressed moved to %v", got)
	}

	c.SetPointerDown(false)
	if got, want := c.State(), blink.Delayed; got != want {
		t.Errorf("State() after release = %v, want %v", got, want)
	}
}

func TestPointerDownWhileStopped(t *testing.T) {
	c, _, _ := newController(t)
	c.SetPointerDown(true)
	if got, want := c.State(), blink.Stopped; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

func TestRestartResetsOpacity(t *testing.T) {
	c, s, _ := newController(t)
	c.Start(false)
	s.Advance(blink.DefaultDelay + blink.DefaultDuration + blink.Pause + blink.DefaultDuration/4)
	if o := c.Opacity(); o >= 1 {
		t.Fatalf("Opacity() = %v, expected a partial fade", o)
	}
	c.Restart()
	if got := c.Opacity(); got != 1 {
		t.Errorf("Opacity() after Restart = %v, want 1", got)
	}
	if got := s.Pending(); got != 1 {
		t.Errorf("Pending() after Restart = %d, want 1", got)
	}
}

func TestRestartWhenStopped(t *testing.T) {
	c, s, _ := newController(t)
	c.Restart()
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestLogsLifecycle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := blink.New(blink.Config{Scheduler: &textseltest.Scheduler{}, Logger: zap.New(core)})
	c.Start(false)
	c.Stop()

	if got := logs.FilterMessage("start").Len(); got != 1 {
		t.Errorf("%d start entries, want 1", got)
	}
	if got := logs.FilterMessage("stop").Len(); got != 1 {
		t.Errorf("%d stop entries, want 1", got)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[blink.State]string{
		blink.Stopped:    "Stopped",
		blink.Delayed:    "Delayed",
		blink.BlinkOn:    "BlinkOn",
		blink.BlinkOff:   "BlinkOff",
		blink.Suppressed: "Suppressed",
	} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
