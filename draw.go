package grove

import "github.com/hajimehoshi/ebiten/v2"

// Update runs one logic step: Updater handlers are called in tree
// pre-order, then registered tweens advance by dt seconds.
func (st *State) Update(dt float64) {
	it := st.Tree.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		if u, ok := st.handlers[e].(Updater); ok {
			u.OnUpdate(st, e, dt)
		}
	}
	st.updateTweens(float32(dt))
}

// Draw calls every visible Drawer handler in paint order.
func (st *State) Draw(screen *ebiten.Image) {
	st.orderBuf = st.appendDrawOrder(st.orderBuf[:0])
	for _, e := range st.orderBuf {
		if d, ok := st.handlers[e].(Drawer); ok {
			d.OnDraw(st, e, screen)
		}
	}
}
