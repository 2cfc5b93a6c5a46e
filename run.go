package grove

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ClearColor Color
	ShowFPS    bool
}

// Run hosts st in an Ebitengine window and blocks until it closes. Each
// tick polls mouse and keyboard input, steps the state and flushes mgr.
//
// For full control, implement ebiten.Game yourself and call
// State.ProcessInput, State.Update, EventManager.Flush and State.Draw.
func Run(st *State, mgr *EventManager, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&host{st: st, mgr: mgr, cfg: cfg})
}

// host adapts a State and its EventManager to ebiten.Game.
type host struct {
	st  *State
	mgr *EventManager
	cfg RunConfig

	keys   []ebiten.Key
	chars  []rune
	cursor CursorIcon
}

func (h *host) Update() error {
	if !h.st.ProcessInput() {
		h.pollInput()
	}
	h.st.Update(1 / float64(ebiten.TPS()))
	h.mgr.Flush(h.st)
	if icon := h.st.CursorIcon(); icon != h.cursor {
		h.cursor = icon
		ebiten.SetCursorShape(icon.EbitenCursorShape())
	}
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(h.cfg.ClearColor)
	h.st.Draw(screen)
	if h.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout keeps a 1:1 pixel mapping and sizes the root to the window.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	root := h.st.Props(Root)
	w, ht := float64(outsideWidth), float64(outsideHeight)
	if root.Bounds.Width != w || root.Bounds.Height != ht {
		root.Bounds = Rect{Width: w, Height: ht}
		h.st.InsertEvent(NewEvent(WindowRelayout).Direct(Root))
	}
	return outsideWidth, outsideHeight
}

// pollInput turns this tick's device input into events.
func (h *host) pollInput() {
	st := h.st
	mods := readModifiers()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	st.movePointer(x, y)

	for _, b := range [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle} {
		if inpututil.IsMouseButtonJustPressed(b.ebitenButton()) {
			st.applyInput(syntheticInput{kind: inputPress, x: x, y: y, button: b, mods: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.ebitenButton()) {
			st.applyInput(syntheticInput{kind: inputRelease, x: x, y: y, button: b, mods: mods})
		}
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		st.InsertEvent(NewEvent(MouseScroll{X: wx, Y: wy}).
			WithTarget(st.pointerTarget()).Propagate(Direct | Up))
	}

	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		st.applyInput(syntheticInput{kind: inputKeyDown, key: k, mods: mods})
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		st.applyInput(syntheticInput{kind: inputKeyUp, key: k, mods: mods})
	}

	h.chars = ebiten.AppendInputChars(h.chars[:0])
	for _, r := range h.chars {
		st.InsertEvent(NewEvent(CharInput{Rune: r}).
			WithTarget(st.focused).Propagate(Direct | Up))
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
