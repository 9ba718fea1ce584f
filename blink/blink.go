// Package blink animates the opacity of a text caret.
//
// A Controller runs a small state machine driven by a Scheduler.
// After a start delay the caret fades in over Duration, stays on for
// Pause, fades out over Duration/2 and then fades in again, forever.
// Every scheduled callback belongs to a task; Stop and every restart
// abort the current task so a callback that was already queued finds
// its task aborted and returns without touching the caret.
package blink

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDelay    = 1000 * time.Millisecond
	DefaultDuration = 600 * time.Millisecond

	// Pause is how long the caret stays fully on between fades.
	Pause = 100 * time.Millisecond

	// FrameInterval is the spacing of animation frames within a fade.
	FrameInterval = 16 * time.Millisecond
)

// State is the phase of the blink animation.
type State int

const (
	Stopped    State = iota // not editing; no timers pending
	Delayed                 // waiting out the start delay at full opacity
	BlinkOn                 // fading in or holding at full opacity
	BlinkOff                // fading out
	Suppressed              // pointer held: full opacity, clock paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Delayed:
		return "Delayed"
	case BlinkOn:
		return "BlinkOn"
	case BlinkOff:
		return "BlinkOff"
	case Suppressed:
		return "Suppressed"
	}
	return "State(?)"
}

// Timer is a pending callback. Stop reports whether it prevented the
// callback from running.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// RealScheduler schedules on the wall clock with time.AfterFunc.
var RealScheduler Scheduler = realScheduler{}

// Config configures a Controller. Zero fields take defaults.
type Config struct {
	Delay     time.Duration // before the first fade after a (re)start
	Duration  time.Duration // length of a fade-in; fade-outs take half
	Scheduler Scheduler

	// OnChange is called after every opacity update made by a timer,
	// without any Controller lock held.
	OnChange func()

	Logger *zap.Logger
}

// task is the abort flag shared by all callbacks of one animation run.
type task struct {
	aborted bool
}

// Controller is a caret blink state machine. It is safe for use from
// multiple goroutines; with RealScheduler callbacks arrive on timer
// goroutines.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	log     *zap.Logger
	state   State
	opacity float64
	task    *task
	timer   Timer
}

// New returns a stopped Controller.
func New(cfg Config) *Controller {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.Duration < 2*FrameInterval {
		cfg.Duration = 2 * FrameInterval
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = RealScheduler
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{cfg: cfg, log: log.Named("blink")}
}

// State returns the current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Opacity returns the caret opacity in [0, 1]. It is 1 while
// suppressed.
func (c *Controller) Opacity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Suppressed {
		return 1
	}
	return c.opacity
}

// Start aborts any running animation, shows the caret at full opacity
// and schedules the first fade-in after the configured delay, or
// immediately when restart is set.
func (c *Controller) Start(restart bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked(restart)
}

func (c *Controller) startLocked(restart bool) {
	c.abortLocked()
	c.opacity = 1
	c.state = Delayed
	delay := c.cfg.Delay
	if restart {
		delay = 0
	}
	t := &task{}
	c.task = t
	c.scheduleLocked(t, delay, func() { c.fade(t, 1, c.cfg.Duration, BlinkOn) })
	c.log.Debug("start", zap.Duration("delay", delay))
}

// Restart restarts a running animation at full opacity, as after a
// selection change. It does nothing when stopped or suppressed.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Stopped || c.state == Suppressed {
		return
	}
	c.startLocked(false)
}

// Stop aborts the animation and hides the caret. It reports whether
// an animation was running.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	running := c.state != Stopped
	c.abortLocked()
	c.opacity = 0
	c.state = Stopped
	if running {
		c.log.Debug("stop")
	}
	return running
}

// SetPointerDown suspends the animation at full opacity while the
// pointer is held and restarts it on release.
func (c *Controller) SetPointerDown(down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case down && c.state != Stopped && c.state != Suppressed:
		c.abortLocked()
		c.opacity = 1
		c.state = Suppressed
	case !down && c.state == Suppressed:
		c.startLocked(false)
	}
}

func (c *Controller) abortLocked() {
	if c.task != nil {
		c.task.aborted = true
		c.task = nil
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) scheduleLocked(t *task, d time.Duration, fn func()) {
	c.timer = c.cfg.Scheduler.AfterFunc(d, fn)
}

// fade begins animating from the current opacity to target over d.
func (c *Controller) fade(t *task, target float64, d time.Duration, st State) {
	c.mu.Lock()
	if t.aborted {
		c.mu.Unlock()
		return
	}
	c.state = st
	from := c.opacity
	c.mu.Unlock()
	c.frame(t, from, target, d, 0)
}

// frame sets the opacity for elapsed time into a fade and schedules
// what comes next.
func (c *Controller) frame(t *task, from, to float64, d, elapsed time.Duration) {
	c.mu.Lock()
	if t.aborted {
		c.mu.Unlock()
		return
	}
	if elapsed >= d {
		c.opacity = to
		if to == 1 {
			c.scheduleLocked(t, Pause, func() { c.fade(t, 0, c.cfg.Duration/2, BlinkOff) })
		} else {
			c.scheduleLocked(t, 0, func() { c.fade(t, 1, c.cfg.Duration, BlinkOn) })
		}
	} else {
		c.opacity = ease(elapsed, from, to, d)
		step := FrameInterval
		if d-elapsed < step {
			step = d - elapsed
		}
		next := elapsed + step
		c.scheduleLocked(t, step, func() { c.frame(t, from, to, d, next) })
	}
	onchange := c.cfg.OnChange
	c.mu.Unlock()

	if onchange != nil {
		onchange()
	}
}

// ease is a sine ease-in from b towards c over d.
func ease(t time.Duration, b, c float64, d time.Duration) float64 {
	delta := c - b
	return -delta*math.Cos(float64(t)/float64(d)*(math.Pi/2)) + delta + b
}
