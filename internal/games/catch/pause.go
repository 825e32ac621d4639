package catch

import "github.com/vovakirdan/birthday-arcade/internal/core"

// PauseController switches a running game between active and paused.
// Pausing halts the frame loop, the countdown, the spawner and the
// background track; resuming restarts all of them without touching score,
// time or live kitties.
type PauseController struct {
	w       *world
	loop    *GameLoop
	timer   *Countdown
	spawner *Spawner
	audio   core.AudioPlayer
	display core.Display
}

// Pause pauses an active game. It returns false when nothing changed.
func (p *PauseController) Pause() bool {
	if !p.w.active || p.w.paused {
		return false
	}
	p.w.paused = true
	p.loop.Stop()
	p.spawner.Stop()
	p.timer.Pause()
	p.audio.PauseBackground()
	p.display.ShowPaused(true)
	return true
}

// Resume resumes a paused game. It returns false when nothing changed.
func (p *PauseController) Resume() bool {
	if !p.w.active || !p.w.paused {
		return false
	}
	p.w.paused = false
	p.timer.Resume()
	p.spawner.Start()
	p.loop.Start()
	p.audio.ResumeBackground()
	p.display.ShowPaused(false)
	return true
}

// Toggle flips between paused and active.
func (p *PauseController) Toggle() {
	if p.w.paused {
		p.Resume()
		return
	}
	p.Pause()
}

// VisibilityChanged pauses when the game is hidden. Becoming visible again
// never resumes on its own.
func (p *PauseController) VisibilityChanged(visible bool) {
	if !visible {
		p.Pause()
	}
}
