package window

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/birthday-arcade/internal/audio"
	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/games/catch"
	"github.com/vovakirdan/birthday-arcade/internal/platform"
)

// backendTimeout bounds each backend call made by the scenes.
const backendTimeout = 5 * time.Second

// leaderboardSize is the number of scores shown on the result scene.
const leaderboardSize = 5

// Scene colors.
var (
	colorSky    = core.HexOr("#E0F7FF", core.ColorWhite)
	colorAccent = core.HexOr("#ff8aa1", core.ColorText)
)

// keyBinding maps a physical key to a held direction.
type keyBinding struct {
	key ebiten.Key
	dir core.Key
}

var directionKeys = []keyBinding{
	{ebiten.KeyArrowLeft, core.KeyLeft},
	{ebiten.KeyA, core.KeyLeft},
	{ebiten.KeyArrowRight, core.KeyRight},
	{ebiten.KeyD, core.KeyRight},
	{ebiten.KeyArrowUp, core.KeyUp},
	{ebiten.KeyArrowDown, core.KeyDown},
}

// Options configures a Host.
type Options struct {
	GameID  string
	Backend platform.Backend // May be nil for a fully offline run
	Audio   audio.Interface  // May be nil
	Logger  *log.Logger
	Config  core.RuntimeConfig
	Title   string
	Width   int // Initial window size in logical units
	Height  int
}

// Host implements ebiten.Game. It owns the scenes and runs each game on
// Ebitengine's update goroutine, which is the game thread.
type Host struct {
	opts    Options
	surface *surface
	canvas  *Canvas
	buttons *touchButtons
	scene   string

	run     *platform.Run
	touches *touchTracker
	touchID []ebiten.TouchID

	// Outside size reported by Layout, applied on the next Update.
	outW, outH float64
	scale      float64
	sized      bool
	portrait   bool

	focused   bool
	mouseSeen bool
	mouseX    int
	mouseY    int
	mouseIn   bool

	inbox     chan func()
	cancelled atomic.Bool

	site      config.SiteConfig
	best      int
	lastScore int
	board     []platform.ScoreRow
	total     int
	boardErr  error
	message   string
}

// NewHost creates a host on the landing scene.
func NewHost(opts Options) *Host {
	if opts.GameID == "" {
		opts.GameID = catch.ID
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}

	s := &surface{}
	s.setSize(float64(opts.Width), float64(opts.Height), 1)
	h := &Host{
		opts:    opts,
		surface: s,
		buttons: &touchButtons{enabled: opts.Config.Touch},
		scene:   platform.SceneLanding,
		outW:    float64(opts.Width),
		outH:    float64(opts.Height),
		scale:   1,
		focused: true,
		inbox:   make(chan func(), 16),
		site:    config.DefaultServerConfig().Site,
	}
	h.buttons.layout(s.w, s.h)
	h.portrait = s.portrait()
	return h
}

// start loads the session, the banner and the leaderboard in the background.
func (h *Host) start() {
	b := h.opts.Backend
	if b == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		id := b.Open(ctx)
		site := b.Site(ctx)
		h.inbox <- func() {
			h.opts.Logger.Debug("session ready", "session", id)
			h.site = site
		}
	}()
	h.loadBoard()
}

func (h *Host) loadBoard() {
	b := h.opts.Backend
	if b == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		rows, total, err := b.Leaderboard(ctx, leaderboardSize)
		h.inbox <- func() {
			h.board, h.total, h.boardErr = rows, total, err
			for _, r := range rows {
				h.best = max(h.best, r.Score)
			}
		}
	}()
}

// drain runs the callbacks posted by background work.
func (h *Host) drain() {
	for {
		select {
		case fn := <-h.inbox:
			fn()
		default:
			return
		}
	}
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.cancelled.Load() {
		h.shutdown()
		return ebiten.Termination
	}
	h.drain()
	h.applyLayout()
	h.pollFocus()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) && h.opts.Audio != nil {
		h.opts.Audio.ToggleMute()
	}

	switch h.scene {
	case platform.SceneGame:
		h.updateGame()
	default:
		if h.confirmPressed() {
			h.startGame()
		}
	}
	return nil
}

// applyLayout resizes the canvas and notifies the game after the window
// size, scale factor or orientation changed.
func (h *Host) applyLayout() {
	if !h.surface.setSize(h.outW, h.outH, h.scale) && h.sized {
		return
	}
	h.sized = true
	if h.canvas != nil {
		h.canvas.realloc()
	}
	h.buttons.layout(h.surface.w, h.surface.h)

	portrait := h.surface.portrait()
	rotated := portrait != h.portrait
	h.portrait = portrait
	if h.run == nil {
		return
	}
	if rotated {
		h.touches.cancelAll()
		h.run.Game.OrientationChanged()
		return
	}
	h.run.Game.Resize()
}

func (h *Host) pollFocus() {
	focused := ebiten.IsFocused()
	if focused == h.focused {
		return
	}
	h.focused = focused
	if h.run == nil {
		return
	}
	if !focused {
		h.touches.cancelAll()
		h.run.Input().ResetTransient()
	}
	h.run.Game.VisibilityChanged(focused)
}

// confirmPressed reports a start request from any input device.
func (h *Host) confirmPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	h.touchID = inpututil.AppendJustPressedTouchIDs(h.touchID[:0])
	return len(h.touchID) > 0
}

func (h *Host) startGame() {
	if h.canvas == nil {
		h.canvas = newCanvas(h.surface)
	}

	ro := platform.RunOptions{
		GameID:  h.opts.GameID,
		Canvas:  h.canvas,
		Pointer: h.surface,
		Touch:   h.buttons,
		Sprites: SpriteLoader{},
		Backend: h.opts.Backend,
		Logger:  h.opts.Logger,
		Config:  h.opts.Config,
	}
	if h.opts.Audio != nil {
		ro.Audio = h.opts.Audio
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	run, err := platform.StartRun(ctx, ro)
	if err != nil {
		h.opts.Logger.Error("cannot start game", "error", err)
		h.message = "Could not start the game"
		return
	}
	h.message = ""
	h.run = run
	h.touches = newTouchTracker(run.Input(), h.surface, h.buttons)
	h.mouseSeen = false
	h.scene = platform.SceneGame
}

func (h *Host) updateGame() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.run.Game.TogglePause()
	}
	h.pollKeys()
	h.pollMouse()
	h.pollTouches()

	next := h.run.Frame(time.Second / time.Duration(ebiten.TPS()))
	if next == "" {
		return
	}

	h.lastScore = h.run.State().Score
	h.best = max(h.best, h.lastScore)
	h.run.Close()
	h.run, h.touches = nil, nil

	if next != platform.SceneResult {
		h.opts.Logger.Warn("unknown scene, returning to landing", "scene", next)
		h.scene = platform.SceneLanding
	} else {
		h.scene = platform.SceneResult
	}
	h.board, h.boardErr = nil, nil
	h.loadBoard()
}

func (h *Host) pollKeys() {
	in := h.run.Input()
	for _, b := range directionKeys {
		if inpututil.IsKeyJustPressed(b.key) {
			// Keys take over from a pointer resting on the canvas
			in.PointerEnd()
			in.KeyDown(b.dir)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			in.KeyUp(b.dir)
		}
	}
}

// pollMouse treats cursor movement over the canvas as pointer input and
// leaving the canvas as the end of it.
func (h *Host) pollMouse() {
	in := h.run.Input()
	x, y := ebiten.CursorPosition()
	_, _, inside := h.surface.ToLocal(float64(x), float64(y))

	if !h.mouseSeen {
		h.mouseSeen = true
		h.mouseX, h.mouseY, h.mouseIn = x, y, inside
		return
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside:
		in.PointerDown(float64(x), float64(y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		in.PointerEnd()
	case inside && (x != h.mouseX || y != h.mouseY):
		in.PointerMove(float64(x), float64(y))
	case !inside && h.mouseIn:
		in.PointerEnd()
	}
	h.mouseX, h.mouseY, h.mouseIn = x, y, inside
}

func (h *Host) pollTouches() {
	h.touchID = inpututil.AppendJustPressedTouchIDs(h.touchID[:0])
	for _, id := range h.touchID {
		x, y := ebiten.TouchPosition(id)
		h.touches.press(int(id), float64(x), float64(y))
	}

	h.touchID = ebiten.AppendTouchIDs(h.touchID[:0])
	for _, id := range h.touchID {
		if h.touches.tracking(int(id)) {
			x, y := ebiten.TouchPosition(id)
			h.touches.move(int(id), float64(x), float64(y))
		}
	}

	h.touchID = inpututil.AppendJustReleasedTouchIDs(h.touchID[:0])
	for _, id := range h.touchID {
		h.touches.release(int(id))
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	switch h.scene {
	case platform.SceneGame:
		if h.canvas != nil {
			screen.DrawImage(h.canvas.Image(), nil)
		}
		h.drawHUD(screen)
		h.drawButtons(screen)
	case platform.SceneResult:
		h.drawResult(screen)
	default:
		h.drawLanding(screen)
	}
}

// Layout implements ebiten.Game. The logical canvas follows the window and
// the backing image has one pixel per device pixel.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.outW, h.outH = float64(outsideWidth), float64(outsideHeight)
	h.scale = ebiten.Monitor().DeviceScaleFactor()
	w, ht := int(h.outW*h.scale), int(h.outH*h.scale)
	return max(w, 1), max(ht, 1)
}

func (h *Host) drawHUD(screen *ebiten.Image) {
	st := h.run
	if st == nil {
		return
	}
	hud := st.HUD
	h.text(screen, fmt.Sprintf("Score: %d", hud.Score), 12, 12, core.ColorText)
	timeText := fmt.Sprintf("Time: %d", hud.TimeLeft)
	h.text(screen, timeText, h.surface.w-float64(len(timeText)*glyphW)-12, 12, core.ColorText)
	if hud.Paused {
		h.centered(screen, "PAUSED - press P to resume", h.surface.h/2, colorAccent)
	}
}

func (h *Host) drawButtons(screen *ebiten.Image) {
	if !h.buttons.enabled || h.run == nil {
		return
	}
	held := h.run.Input().State()
	for _, b := range []struct {
		r     core.Rect
		label string
		down  bool
	}{
		{h.buttons.left, "<", held.Left},
		{h.buttons.right, ">", held.Right},
	} {
		col := core.ColorWhite
		if b.down {
			col = colorAccent
		}
		c := b.r.Center()
		h.canvasFor(screen).FillCircle(core.Circle{Center: c, R: b.r.W / 2}, col)
		h.text(screen, b.label, c.X-glyphW/2, c.Y-glyphH/2, core.ColorText)
	}
}

func (h *Host) drawLanding(screen *ebiten.Image) {
	screen.Fill(colorSky)
	y := h.surface.h / 3
	h.centered(screen, h.site.BannerText, y, colorAccent)
	for i, msg := range h.site.CloudMessages {
		if i >= 3 {
			break
		}
		h.centered(screen, msg, y+float64(i+2)*glyphH, core.ColorText)
	}
	y += 6 * glyphH
	if h.best > 0 {
		h.centered(screen, fmt.Sprintf("Best score: %d", h.best), y, core.ColorText)
	}
	h.centered(screen, "Click, tap or press Enter to catch some kitties!", y+2*glyphH, core.ColorText)
	if h.message != "" {
		h.centered(screen, h.message, y+4*glyphH, colorAccent)
	}
}

func (h *Host) drawResult(screen *ebiten.Image) {
	screen.Fill(colorSky)
	y := h.surface.h / 4
	h.centered(screen, "TIME'S UP!", y, colorAccent)
	h.centered(screen, fmt.Sprintf("You caught %d kitties", h.lastScore), y+2*glyphH, core.ColorText)
	h.centered(screen, fmt.Sprintf("Best: %d", h.best), y+3*glyphH, core.ColorText)

	y += 5 * glyphH
	switch {
	case h.boardErr != nil:
		h.centered(screen, "Scores unavailable", y, core.ColorText)
	case len(h.board) == 0:
		h.centered(screen, "Loading scores...", y, core.ColorText)
	default:
		for i, r := range h.board {
			h.centered(screen, fmt.Sprintf("#%d  %5d", i+1, r.Score), y+float64(i)*glyphH, core.ColorText)
		}
	}
	h.centered(screen, "Click, tap or press Enter to play again", h.surface.h-3*glyphH, core.ColorText)
}

// canvasFor wraps screen as a canvas sharing the host surface.
func (h *Host) canvasFor(screen *ebiten.Image) *Canvas {
	if h.canvas == nil {
		h.canvas = newCanvas(h.surface)
	}
	return &Canvas{surface: h.surface, img: screen, labels: h.canvas.labels}
}

func (h *Host) text(screen *ebiten.Image, s string, x, y float64, col core.Color) {
	h.canvasFor(screen).DrawLabel(x, y, s, col)
}

func (h *Host) centered(screen *ebiten.Image, s string, y float64, col core.Color) {
	x := (h.surface.w - float64(len([]rune(s))*glyphW)) / 2
	h.text(screen, s, x, y, col)
}

// shutdown releases the running game.
func (h *Host) shutdown() {
	if h.run != nil {
		h.run.Close()
		h.run = nil
	}
	if h.opts.Audio != nil {
		h.opts.Audio.StopAll()
	}
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	h := NewHost(opts)

	title := opts.Title
	if title == "" {
		title = "Happy Birthday!"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(h.opts.Config.TickRate)

	stop := context.AfterFunc(ctx, func() { h.cancelled.Store(true) })
	defer stop()

	h.start()
	err := ebiten.RunGame(h)
	h.shutdown()
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
