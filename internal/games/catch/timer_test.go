package catch

import (
	"testing"
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

type tickLog struct {
	lefts   []int
	lows    int
	expired int
}

func newTestCountdown(seconds, low int) (*Countdown, *world, *sched.Loop, *tickLog) {
	w := testWorld(800, 600)
	loop := sched.NewLoop()
	log := &tickLog{}
	c := newCountdown(w, sched.NewGroup(loop), seconds, low,
		func(left int, isLow bool) {
			log.lefts = append(log.lefts, left)
			if isLow {
				log.lows++
			}
		},
		func() { log.expired++ },
	)
	return c, w, loop, log
}

func TestCountdownExpiresOnce(t *testing.T) {
	c, w, loop, log := newTestCountdown(10, 5)
	c.Start()

	for i := 0; i < 30; i++ {
		loop.Advance(time.Second)
	}

	if log.expired != 1 {
		t.Errorf("expired %d times, expected 1", log.expired)
	}
	if w.timeLeft != 0 {
		t.Errorf("timeLeft = %d, expected 0", w.timeLeft)
	}
	if len(log.lefts) != 10 {
		t.Errorf("ticks = %d, expected 10", len(log.lefts))
	}
	// 5, 4, 3, 2, 1 and 0
	if log.lows != 6 {
		t.Errorf("low ticks = %d, expected 6", log.lows)
	}
	if c.State() != TimerExpired {
		t.Errorf("State() = %v, expected %v", c.State(), TimerExpired)
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0 after expiry", loop.Pending())
	}
}

func TestCountdownLateTicks(t *testing.T) {
	c, w, loop, log := newTestCountdown(3, 0)
	w.active = true
	c.Start()
	loop.Advance(3 * time.Second)

	if w.timeLeft != 0 || log.expired != 1 {
		t.Fatalf("after 3s: timeLeft = %d, expired = %d, expected 0 and 1", w.timeLeft, log.expired)
	}

	// Ticks delivered after expiry must be ignored.
	tests := []struct {
		name  string
		setup func()
	}{
		{"expired", func() {}},
		{"expired again", func() {}},
		{"session forced active", func() { w.active = true }},
		{"timer forced running", func() { w.active = true; c.state = TimerRunning }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			c.tick()
			if w.timeLeft != 0 {
				t.Errorf("timeLeft = %d, expected 0", w.timeLeft)
			}
			if log.expired != 1 {
				t.Errorf("expired %d times, expected 1", log.expired)
			}
			if len(log.lefts) != 3 {
				t.Errorf("ticks = %d, expected 3", len(log.lefts))
			}
		})
	}
}

func TestCountdownPauseResume(t *testing.T) {
	c, w, loop, log := newTestCountdown(10, 5)
	c.Start()

	loop.Advance(3 * time.Second)
	if w.timeLeft != 7 {
		t.Fatalf("timeLeft = %d, expected 7", w.timeLeft)
	}

	c.Pause()
	c.Pause()
	if c.State() != TimerPaused {
		t.Errorf("State() = %v, expected %v", c.State(), TimerPaused)
	}
	loop.Advance(time.Minute)
	if w.timeLeft != 7 {
		t.Errorf("timeLeft = %d while paused, expected 7", w.timeLeft)
	}

	c.Resume()
	c.Resume()
	loop.Advance(2 * time.Second)
	if w.timeLeft != 5 {
		t.Errorf("timeLeft = %d after resume, expected 5", w.timeLeft)
	}
	if log.expired != 0 {
		t.Errorf("expired early")
	}
}

func TestCountdownStartOnlyFromIdle(t *testing.T) {
	c, w, loop, _ := newTestCountdown(3, 1)
	c.Start()
	c.Start()

	loop.Advance(time.Second)
	if w.timeLeft != 2 {
		t.Errorf("timeLeft = %d, expected 2 with a single ticker", w.timeLeft)
	}
}

func TestCountdownHaltsWhenInactive(t *testing.T) {
	c, w, loop, log := newTestCountdown(5, 0)
	c.Start()

	w.active = false
	loop.Advance(10 * time.Second)
	if w.timeLeft != 5 {
		t.Errorf("timeLeft = %d, expected 5 while inactive", w.timeLeft)
	}
	if log.expired != 0 {
		t.Errorf("expired while inactive")
	}
}

func TestTimerStateString(t *testing.T) {
	tests := []struct {
		state    TimerState
		expected string
	}{
		{TimerIdle, "Idle"},
		{TimerRunning, "Running"},
		{TimerPaused, "Paused"},
		{TimerExpired, "Expired"},
		{TimerState(42), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.state.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
