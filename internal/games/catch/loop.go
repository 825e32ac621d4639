package catch

import (
	"math"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

// Hint text position in logical units.
const (
	hintX = 10
	hintY = 10
)

// theme holds the parsed profile colors.
type theme struct {
	background core.Color
	catcher    core.Color
	text       core.Color
	hint       string
}

func newTheme(t config.ThemeConfig) theme {
	return theme{
		background: core.HexOr(t.Background, core.Color{R: 0xE0, G: 0xF7, B: 0xFF}),
		catcher:    core.HexOr(t.Catcher, core.Color{R: 0xFF, G: 0x8A, B: 0xA1}),
		text:       core.HexOr(t.Text, core.ColorText),
		hint:       t.Hint,
	}
}

// GameLoop advances and draws one frame per scheduler frame while the game
// is running.
type GameLoop struct {
	w       *world
	group   *sched.Group
	canvas  core.Canvas
	input   *core.InputBinder
	audio   core.AudioPlayer
	display core.Display
	theme   theme
	keyStep float64
	catcher core.Sprite
	task    core.TaskID
	pending bool
	frames  int
}

// Start schedules the next frame unless one is pending or the game is not
// running.
func (l *GameLoop) Start() {
	if l.pending || !l.w.running() {
		return
	}
	l.task = l.group.NextFrame(l.tick)
	l.pending = true
}

// Stop cancels the pending frame.
func (l *GameLoop) Stop() {
	if !l.pending {
		return
	}
	l.group.Cancel(l.task)
	l.pending = false
}

// Frames returns the number of frames advanced so far.
func (l *GameLoop) Frames() int {
	return l.frames
}

func (l *GameLoop) tick() {
	l.pending = false
	if !l.w.running() {
		return
	}
	l.Frame()
	l.Start()
}

// Frame runs one frame: background, catcher, kitties (newest first), then
// catcher movement. Removed kitties are compacted after the pass.
func (l *GameLoop) Frame() {
	l.frames++
	w := l.w

	l.canvas.Clear(l.theme.background)
	if l.theme.hint != "" {
		l.canvas.DrawLabel(hintX, hintY, l.theme.hint, l.theme.text)
	}

	if !drawable(l.catcher) || !l.canvas.DrawSprite(l.catcher, w.catcher) {
		l.canvas.FillRect(w.catcher, l.theme.catcher)
	}

	removed := false
	for i := len(w.kitties) - 1; i >= 0; i-- {
		k := w.kitties[i]
		l.advance(k)
		l.drawKitty(k)

		if Caught(k, w.catcher) {
			k.removed = true
			removed = true
			w.score++
			l.display.SetScore(w.score)
			l.audio.PlayEffect(CueCollect)
			continue
		}

		if k.Pos.Y-k.Radius > w.height {
			k.removed = true
			removed = true
		}
	}
	if removed {
		w.compact()
	}

	l.moveCatcher()
}

// advance moves a kitty and bounces it off the side walls. After a bounce
// the drift always points away from the wall, so a kitty left outside by a
// narrower canvas comes back in.
func (l *GameLoop) advance(k *Kitty) {
	k.Pos.X += k.Drift
	k.Pos.Y += k.Speed

	if k.Pos.X < k.Radius {
		k.Pos.X = k.Radius
		k.Drift = math.Abs(k.Drift)
	} else if k.Pos.X > l.w.width-k.Radius {
		k.Pos.X = l.w.width - k.Radius
		k.Drift = -math.Abs(k.Drift)
	}
}

func (l *GameLoop) drawKitty(k *Kitty) {
	if drawable(k.Sprite) && l.canvas.DrawSprite(k.Sprite, k.Circle().Bounds()) {
		return
	}
	l.canvas.FillCircle(k.Circle(), k.Color)
}

// moveCatcher applies held directions, then the pointer, then clamps the
// catcher inside the canvas.
func (l *GameLoop) moveCatcher() {
	in := l.input.State()
	c := &l.w.catcher

	if in.Left {
		c.X -= l.keyStep
	}
	if in.Right {
		c.X += l.keyStep
	}
	if in.PointerActive {
		c.X = in.PointerX - c.W/2
	}
	c.X = core.ClampF(c.X, 0, l.w.width-c.W)
}
