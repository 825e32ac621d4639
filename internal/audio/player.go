// Package audio plays the game's background music and sound effects through
// the system speaker. Tracks are read from an asset directory when present
// and synthesized otherwise.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

// Channel volumes.
const (
	BackgroundVolume = 0.7
	EffectVolume     = 0.8
)

// Built-in track names.
const (
	TrackGameLoop      = "bg_game_loop"
	TrackCollectChime  = "sfx_collect_chime"
	TrackTimerTick     = "sfx_timer_tick"
	TrackSuccessJingle = "sfx_success_jingle"
)

// synthesized maps built-in names to generated fallbacks.
var synthesized = map[string]func(beep.SampleRate) beep.Streamer{
	TrackGameLoop:      gameLoopPhrase,
	TrackCollectChime:  collectChime,
	TrackTimerTick:     timerTick,
	TrackSuccessJingle: successJingle,
}

// Player mixes one background track and one effect channel. All methods
// return immediately; playback happens on the speaker goroutine.
type Player struct {
	mu          sync.Mutex
	dir         string
	logger      *log.Logger
	mixer       *beep.Mixer
	buffers     map[string]*beep.Buffer
	initialized bool
	muted       bool

	bg     *beep.Ctrl
	bgVol  *effects.Volume
	bgName string
	sfx    *beep.Ctrl
}

// New creates a player reading tracks from dir. Call Init to attach it to
// the speaker; until then sounds are mixed but never heard.
func New(dir string, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		dir:     dir,
		logger:  logger,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
	}
}

// Init opens the speaker and starts mixing.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// BuiltinTracks lists the tracks the game plays.
var BuiltinTracks = []string{TrackGameLoop, TrackCollectChime, TrackTimerTick, TrackSuccessJingle}

// Open returns an initialized player with the built-in tracks decoded, or
// Nop when no speaker is available.
func Open(dir string, logger *log.Logger) (Interface, error) {
	p := New(dir, logger)
	if err := p.Init(); err != nil {
		return Nop{}, err
	}
	p.Preload(BuiltinTracks...)
	return p, nil
}

// locked runs fn with the speaker paused so streamers can be swapped safely.
func (p *Player) locked(fn func()) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// PlayBackground loops name on the background channel. Asking for the
// track that is already playing does nothing.
func (p *Player) PlayBackground(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bg != nil && p.bgName == name && !p.bg.Paused {
		return
	}

	src, err := p.source(name)
	if err != nil {
		p.logger.Warn("background track unavailable", "track", name, "error", err)
		return
	}

	vol := newVolume(beep.Loop(-1, src), BackgroundVolume)
	vol.Silent = vol.Silent || p.muted
	ctrl := &beep.Ctrl{Streamer: vol}

	p.locked(func() {
		if p.bg != nil {
			p.bg.Streamer = nil
		}
		p.mixer.Add(ctrl)
	})
	p.bg, p.bgVol, p.bgName = ctrl, vol, name
}

// PlayEffect plays name once on the effect channel, cutting off the previous
// effect. Muted players skip effects.
func (p *Player) PlayEffect(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted {
		return
	}

	src, err := p.source(name)
	if err != nil {
		p.logger.Warn("effect unavailable", "track", name, "error", err)
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(src, EffectVolume)}
	p.locked(func() {
		if p.sfx != nil {
			p.sfx.Streamer = nil
		}
		p.mixer.Add(ctrl)
	})
	p.sfx = ctrl
}

// PauseBackground halts the background track in place.
func (p *Player) PauseBackground() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bg == nil {
		return
	}
	p.locked(func() { p.bg.Paused = true })
}

// ResumeBackground continues a paused background track.
func (p *Player) ResumeBackground() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bg == nil {
		return
	}
	p.locked(func() { p.bg.Paused = false })
}

// StopAll stops both channels and forgets the background track.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked(func() {
		if p.bg != nil {
			p.bg.Streamer = nil
		}
		if p.sfx != nil {
			p.sfx.Streamer = nil
		}
		p.mixer.Clear()
	})
	p.bg, p.bgVol, p.bgName, p.sfx = nil, nil, "", nil
}

// ToggleMute flips the mute state and returns it.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setMuted(!p.muted)
	return p.muted
}

// SetMuted forces the mute state.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setMuted(muted)
}

func (p *Player) setMuted(muted bool) {
	p.muted = muted
	p.locked(func() {
		if p.bgVol != nil {
			p.bgVol.Silent = muted
		}
		if muted && p.sfx != nil {
			p.sfx.Streamer = nil
		}
	})
}

// Muted reports the mute state.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Background returns the current background track name and whether it is
// playing.
func (p *Player) Background() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bgName, p.bg != nil && !p.bg.Paused
}

// source returns a fresh seekable streamer for name. Tracks that were not
// preloaded are decoded on first use.
func (p *Player) source(name string) (beep.StreamSeeker, error) {
	buf, ok := p.buffers[name]
	if !ok {
		var err error
		if buf, err = p.load(name); err != nil {
			return nil, err
		}
		p.buffers[name] = buf
	}
	return buf.Streamer(0, buf.Len()), nil
}

// load decodes name from the asset directory. Built-in names fall back to
// a synthesized version.
func (p *Player) load(name string) (*beep.Buffer, error) {
	buf, err := p.decode(name)
	if err == nil {
		return buf, nil
	}
	gen, known := synthesized[strings.TrimSuffix(name, filepath.Ext(name))]
	if !known {
		return nil, err
	}
	return render(gen(sampleRate)), nil
}

// Preload decodes tracks ahead of playback so the first play of each does
// not decode on the caller's goroutine. The lock is not held while decoding.
func (p *Player) Preload(names ...string) {
	for _, name := range names {
		p.mu.Lock()
		_, ok := p.buffers[name]
		p.mu.Unlock()
		if ok {
			continue
		}

		buf, err := p.load(name)
		if err != nil {
			p.logger.Warn("cannot preload track", "track", name, "error", err)
			continue
		}

		p.mu.Lock()
		if _, ok := p.buffers[name]; !ok {
			p.buffers[name] = buf
		}
		p.mu.Unlock()
	}
}

// render drains s into a buffer at the player's sample rate.
func render(s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf
}

func (p *Player) decode(name string) (*beep.Buffer, error) {
	if p.dir == "" {
		return nil, fmt.Errorf("audio: no asset directory for %s", name)
	}

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = []string{name + ".wav", name + ".mp3"}
	}

	var lastErr error
	for _, c := range candidates {
		path := filepath.Join(p.dir, c)
		buf, err := decodeFile(path)
		if err == nil {
			return buf, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}
	defer f.Close()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("audio: unsupported format %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}

	return render(src), nil
}

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
