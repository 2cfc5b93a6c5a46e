// Package ecs bridges grove's event dispatch into a [Donburi] world.
//
// [NewDonburiSink] returns a [grove.EventSink] that republishes every
// dispatched event as a [DispatchedEvent]. Subscribe to
// [DispatchedEventType] in your ECS systems to observe UI traffic:
//
//	sink := ecs.NewDonburiSink(world)
//	mgr := grove.NewEventManager(grove.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
