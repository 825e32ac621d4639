package catch

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

// Spawner creates kitties at randomized intervals.
// Each spawn re-arms a one-shot timer with a freshly sampled delay, so the
// cadence is irregular rather than fixed-rate.
type Spawner struct {
	w       *world
	group   *sched.Group
	rng     *rand.Rand
	spawn   config.SpawnConfig
	kitty   config.KittyConfig
	diff    *config.DifficultyManager
	sprites []core.Sprite
	colors  []core.Color
	startAt time.Duration
	task    core.TaskID
	armed   bool
}

func newSpawner(w *world, group *sched.Group, rng *rand.Rand, p config.Profile, diff *config.DifficultyManager, sprites []core.Sprite) *Spawner {
	colors := make([]core.Color, 0, len(p.Kitty.Colors))
	for _, c := range p.Kitty.Colors {
		if parsed, err := core.ParseHex(c); err == nil {
			colors = append(colors, parsed)
		}
	}
	if len(colors) == 0 {
		colors = append(colors, core.Color{R: 0xFF, G: 0xB6, B: 0xC1})
	}

	return &Spawner{
		w:       w,
		group:   group,
		rng:     rng,
		spawn:   p.Spawn,
		kitty:   p.Kitty,
		diff:    diff,
		sprites: sprites,
		colors:  colors,
	}
}

// Start arms the spawn timer if it is not already armed.
func (s *Spawner) Start() {
	if s.armed {
		return
	}
	s.arm()
}

// MarkStart records the scheduler time the session started, for
// time-based difficulty.
func (s *Spawner) MarkStart() {
	s.startAt = s.group.Now()
}

// Stop cancels the pending spawn.
func (s *Spawner) Stop() {
	if !s.armed {
		return
	}
	s.group.Cancel(s.task)
	s.armed = false
}

// Armed reports whether a spawn is scheduled.
func (s *Spawner) Armed() bool {
	return s.armed
}

func (s *Spawner) arm() {
	s.task = s.group.After(s.NextDelay(), s.fire)
	s.armed = true
}

func (s *Spawner) fire() {
	s.armed = false
	if !s.w.running() {
		return
	}
	if s.spawn.MaxEntities <= 0 || len(s.w.kitties) < s.spawn.MaxEntities {
		s.w.kitties = append(s.w.kitties, s.Spawn())
	}
	s.arm()
}

// NextDelay samples the delay until the next spawn.
func (s *Spawner) NextDelay() time.Duration {
	base := s.diff.SpawnDelay(s.spawn.BaseDelay, s.w.score, s.elapsed())
	jitter := time.Duration(s.rng.Float64() * float64(s.spawn.Jitter))
	return base + jitter
}

func (s *Spawner) elapsed() time.Duration {
	return s.group.Now() - s.startAt
}

// Spawn creates one kitty just above the top edge.
func (s *Spawner) Spawn() *Kitty {
	r := kittyRadius(s.kitty, s.w.width, s.w.height)

	x := s.w.width / 2
	if span := s.w.width - 2*r; span > 0 {
		x = r + s.rng.Float64()*span
	}

	speed := s.kitty.MinSpeed + s.rng.Float64()*(s.kitty.MaxSpeed-s.kitty.MinSpeed)
	speed = s.diff.Speed(speed, s.w.score, s.elapsed())
	drift := (s.rng.Float64()*2 - 1) * s.kitty.MaxDrift

	k := &Kitty{
		Pos:    core.Vec{X: x, Y: s.spawn.StartY},
		Radius: r,
		Speed:  speed,
		Drift:  drift,
		Color:  s.colors[s.rng.Intn(len(s.colors))],
	}
	if len(s.sprites) > 0 {
		k.Sprite = s.sprites[s.rng.Intn(len(s.sprites))]
	}
	return k
}
