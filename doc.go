// Package grove is the entity tree and event routing core of a
// retained-mode UI toolkit built on [Ebitengine].
//
// # Quick start
//
// Build a tree of entities, attach handlers, and hand the state to [Run]:
//
//	st := grove.NewState()
//	mgr := grove.NewEventManager()
//
//	btn, _ := st.Add(grove.Root, grove.HandlerFunc(func(st *grove.State, self grove.Entity, ev *grove.Event) {
//		if ev.Payload() == grove.WindowMouseEnter {
//			st.InsertEvent(grove.NewEvent(grove.WindowRedraw).Direct(self))
//		}
//	}))
//	st.Props(btn).Bounds = grove.Rect{X: 20, Y: 20, Width: 120, Height: 32}
//
//	grove.Run(st, mgr, grove.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [State.ProcessInput], [State.Update], [EventManager.Flush] and
// [State.Draw] directly.
//
// # Entities and the tree
//
// An [Entity] is a small copyable id. [Root] always exists. The [Tree]
// stores parent, child and sibling links in flat slices indexed by entity,
// so every structural operation is O(1) or proportional to the subtree it
// touches. [Tree.Iter], [Tree.Ancestors], [Tree.Children] and [Tree.Window]
// walk it without allocating.
//
// # Events
//
// Handlers post [Event] values with [State.InsertEvent]. Once per frame
// [EventManager.Flush] sorts the queue by creation order and routes each
// event down, direct, up or fall (see [Propagation]) over a snapshot of
// the tree, so handlers may add and remove entities while being called.
// A handler calls [Event.Consume] to stop the event on its current path.
//
// # Hover
//
// A [WindowRelayout] event re-runs the layouter and then [State.ResolveHover],
// which hit-tests the pointer against every entity's [Props] in paint order
// and posts mouse over, out, enter and leave notifications.
//
// Tweens (via [gween]) animate props, and the ecs sub-module republishes
// dispatched events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package grove
