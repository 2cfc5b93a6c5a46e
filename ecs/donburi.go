package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DispatchedEvent is one routed grove event as seen from the ECS side.
type DispatchedEvent struct {
	grove.DispatchRecord
	// Seq numbers events in the order the sink received them.
	Seq uint64
}

// DispatchedEventType is the Donburi event type for dispatched grove events.
var DispatchedEventType = events.NewEventType[DispatchedEvent]()

type donburiSink struct {
	world donburi.World
	seq   uint64
}

// NewDonburiSink creates an EventSink that publishes to DispatchedEventType
// in world. Published events are queued until ProcessEvents is called.
func NewDonburiSink(world donburi.World) grove.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(rec grove.DispatchRecord) {
	s.seq++
	DispatchedEventType.Publish(s.world, DispatchedEvent{DispatchRecord: rec, Seq: s.seq})
}
