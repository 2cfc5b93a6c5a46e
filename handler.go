package grove

import "github.com/hajimehoshi/ebiten/v2"

// Handler is the per-entity event callback. self is the entity the handler
// is registered on, which differs from ev.Target() for propagated events.
type Handler interface {
	OnEvent(st *State, self Entity, ev *Event)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(st *State, self Entity, ev *Event)

// OnEvent calls f.
func (f HandlerFunc) OnEvent(st *State, self Entity, ev *Event) {
	f(st, self, ev)
}

// Builder is implemented by handlers that set up children or props when
// they are attached with State.Add.
type Builder interface {
	OnBuild(st *State, self Entity)
}

// Updater is implemented by handlers that advance per-frame state.
type Updater interface {
	OnUpdate(st *State, self Entity, dt float64)
}

// Drawer is implemented by handlers that paint themselves.
type Drawer interface {
	OnDraw(st *State, self Entity, screen *ebiten.Image)
}
