package catch

import (
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

// TimerState is the lifecycle state of the countdown.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
	TimerExpired
)

// String returns a human-readable name for the state.
func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "Idle"
	case TimerRunning:
		return "Running"
	case TimerPaused:
		return "Paused"
	case TimerExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// tickInterval is the countdown resolution.
const tickInterval = time.Second

// Countdown counts whole seconds down to zero. Expiry fires exactly once.
type Countdown struct {
	w        *world
	group    *sched.Group
	state    TimerState
	lowTime  int
	task     core.TaskID
	onTick   func(left int, low bool)
	onExpire func()
}

func newCountdown(w *world, group *sched.Group, seconds, lowTime int, onTick func(int, bool), onExpire func()) *Countdown {
	w.timeLeft = seconds
	return &Countdown{
		w:        w,
		group:    group,
		lowTime:  lowTime,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// State returns the current timer state.
func (c *Countdown) State() TimerState {
	return c.state
}

// Left returns the remaining seconds.
func (c *Countdown) Left() int {
	return c.w.timeLeft
}

// Start moves Idle to Running.
func (c *Countdown) Start() {
	if c.state != TimerIdle {
		return
	}
	c.state = TimerRunning
	c.arm()
}

// Pause moves Running to Paused and stops ticking.
func (c *Countdown) Pause() {
	if c.state != TimerRunning {
		return
	}
	c.state = TimerPaused
	c.group.Cancel(c.task)
}

// Resume moves Paused back to Running.
func (c *Countdown) Resume() {
	if c.state != TimerPaused {
		return
	}
	c.state = TimerRunning
	c.arm()
}

func (c *Countdown) arm() {
	c.task = c.group.Every(tickInterval, c.tick)
}

func (c *Countdown) tick() {
	if c.state != TimerRunning || !c.w.active || c.w.timeLeft <= 0 {
		return
	}

	c.w.timeLeft--
	c.onTick(c.w.timeLeft, c.w.timeLeft <= c.lowTime)

	if c.w.timeLeft <= 0 {
		c.state = TimerExpired
		c.group.Cancel(c.task)
		c.onExpire()
	}
}
