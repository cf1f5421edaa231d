// Package ecs provides ECS adapters for imagetap's tap events.
//
// The primary adapter is [NewDonburiStore], which publishes confirmed image
// taps into a [Donburi] world as typed events. Subscribe to [TapEventType]
// in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
