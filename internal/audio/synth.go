package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a fixed-length oscillator with a linear attack and release.
type tone struct {
	freq    float64
	wave    Wave
	amp     float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	rate    beep.SampleRate
}

// Tone returns a streamer that plays freq for d.
func Tone(freq float64, d time.Duration, wave Wave, amp float64, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &tone{
		freq:    freq,
		wave:    wave,
		amp:     amp,
		total:   total,
		attack:  min(rate.N(5*time.Millisecond), total/4),
		release: min(rate.N(60*time.Millisecond), total/2),
		rate:    rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}

		env := 1.0
		if t.attack > 0 && t.pos < t.attack {
			env = float64(t.pos) / float64(t.attack)
		}
		if left := t.total - t.pos; t.release > 0 && left < t.release {
			env = math.Min(env, float64(left)/float64(t.release))
		}

		v *= env * t.amp
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Note frequencies used by the built-in cues.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteA5 = 880.00
	noteC6 = 1046.50
	noteE6 = 1318.51
	noteG6 = 1567.98
)

// collectChime is a short two-partial bell.
func collectChime(rate beep.SampleRate) beep.Streamer {
	d := 220 * time.Millisecond
	return beep.Mix(
		Tone(noteC6, d, WaveSine, 0.35, rate),
		Tone(noteG6, d, WaveSine, 0.15, rate),
	)
}

// timerTick is a dry click.
func timerTick(rate beep.SampleRate) beep.Streamer {
	return Tone(1000, 35*time.Millisecond, WaveSquare, 0.12, rate)
}

// successJingle is a rising arpeggio.
func successJingle(rate beep.SampleRate) beep.Streamer {
	step := 120 * time.Millisecond
	return beep.Seq(
		Tone(noteC5, step, WaveTriangle, 0.3, rate),
		Tone(noteE5, step, WaveTriangle, 0.3, rate),
		Tone(noteG5, step, WaveTriangle, 0.3, rate),
		Tone(noteC6, 3*step, WaveTriangle, 0.35, rate),
	)
}

// gameLoopPhrase is one bar of the background melody. Loop it for music.
func gameLoopPhrase(rate beep.SampleRate) beep.Streamer {
	step := 180 * time.Millisecond
	notes := []float64{noteC5, noteE5, noteG5, noteE5, noteA5, noteG5, noteE6, noteG5}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		parts = append(parts, Tone(f, step, WaveTriangle, 0.12, rate))
	}
	return beep.Seq(parts...)
}
