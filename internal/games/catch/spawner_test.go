package catch

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

func newTestSpawner(w *world, maxEntities int) (*Spawner, *sched.Loop) {
	loop := sched.NewLoop()
	p := config.DefaultProfile()
	p.Spawn.MaxEntities = maxEntities
	diff := config.NewDifficultyManager(config.DifficultyConfig{})
	sprites := []core.Sprite{testSprite{name: "a"}, missingSprite{name: "b"}}
	return newSpawner(w, sched.NewGroup(loop), rand.New(rand.NewSource(7)), p, diff, sprites), loop
}

func TestSpawnWithinBands(t *testing.T) {
	w := testWorld(800, 600)
	s, _ := newTestSpawner(w, 10)

	// min(105, 800*0.12, 600*0.15) = 90
	const radius = 90.0

	for i := 0; i < 200; i++ {
		k := s.Spawn()
		if k.Radius != radius {
			t.Fatalf("Radius = %v, expected %v", k.Radius, radius)
		}
		if k.Pos.X < radius || k.Pos.X > 800-radius {
			t.Errorf("X = %v outside [%v, %v]", k.Pos.X, radius, 800-radius)
		}
		if k.Pos.Y != -20 {
			t.Errorf("Y = %v, expected -20", k.Pos.Y)
		}
		if k.Speed < 1.5 || k.Speed > 3.0 {
			t.Errorf("Speed = %v outside [1.5, 3.0]", k.Speed)
		}
		if k.Drift < -0.2 || k.Drift > 0.2 {
			t.Errorf("Drift = %v outside [-0.2, 0.2]", k.Drift)
		}
		if k.Sprite == nil {
			t.Error("Sprite should be picked from the pool")
		}
	}
}

func TestSpawnNarrowCanvas(t *testing.T) {
	w := testWorld(10, 2000)
	s, _ := newTestSpawner(w, 10)
	s.kitty.WidthRatio = 1 // radius 10 on a 10 wide canvas

	k := s.Spawn()
	if k.Pos.X != 5 {
		t.Errorf("X = %v, expected center 5 when the canvas is too narrow", k.Pos.X)
	}
}

func TestNextDelayBand(t *testing.T) {
	s, _ := newTestSpawner(testWorld(800, 600), 10)

	for i := 0; i < 100; i++ {
		d := s.NextDelay()
		if d < 800*time.Millisecond || d >= 2000*time.Millisecond {
			t.Errorf("NextDelay() = %v outside [800ms, 2000ms)", d)
		}
	}
}

func TestSpawnCapKeepsSchedule(t *testing.T) {
	w := testWorld(800, 600)
	s, loop := newTestSpawner(w, 3)

	s.Start()
	loop.Advance(30 * time.Second)

	if got := len(w.kitties); got != 3 {
		t.Errorf("live kitties = %d, expected cap 3", got)
	}
	if !s.Armed() {
		t.Error("spawner should stay armed while at cap")
	}

	// Freeing a slot lets the next spawn through
	w.kitties = w.kitties[:2]
	loop.Advance(3 * time.Second)
	if got := len(w.kitties); got != 3 {
		t.Errorf("live kitties = %d after freeing a slot, expected 3", got)
	}
}

func TestSpawnerStopsWhenInactive(t *testing.T) {
	w := testWorld(800, 600)
	s, loop := newTestSpawner(w, 10)

	s.Start()
	w.paused = true
	loop.Advance(5 * time.Second)

	if len(w.kitties) != 0 {
		t.Errorf("spawned %d kitties while paused", len(w.kitties))
	}
	if s.Armed() {
		t.Error("spawner should not re-arm while paused")
	}

	w.paused = false
	s.Start()
	s.Start() // idempotent
	loop.Advance(2 * time.Second)
	if len(w.kitties) == 0 {
		t.Error("spawner should resume spawning after restart")
	}
}

func TestSpawnerStop(t *testing.T) {
	w := testWorld(800, 600)
	s, loop := newTestSpawner(w, 10)

	s.Start()
	s.Stop()
	s.Stop()
	loop.Advance(10 * time.Second)

	if len(w.kitties) != 0 {
		t.Errorf("spawned %d kitties after Stop", len(w.kitties))
	}
}
