package ecs

import (
	"github.com/phanxgames/imagetap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TapEventType is the Donburi event type for confirmed image taps.
var TapEventType = events.NewEventType[imagetap.TapEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Taps are published to TapEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) imagetap.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitTap(event imagetap.TapEvent) {
	TapEventType.Publish(s.world, event)
}
