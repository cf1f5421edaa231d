// Package imagetap decides whether a screen tap landed on a 2D image.
//
// An image is tapped when some camera that can see the image's canvas both
// contains the tap in its viewport and, after projecting the tap into the
// image's local space, finds it inside the image's pivot-adjusted bounds.
// The image must also sit within the camera's near/far planes.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates an [Ebitengine] window and game
// loop that feeds touches and left clicks to every detector:
//
//	scene := imagetap.NewScene()
//	canvas := imagetap.NewCanvasNode("canvas", 0)
//	scene.Root().AddChild(canvas)
//	scene.Root().AddCamera(imagetap.NewOrthoCamera(640, 480))
//
//	button := imagetap.NewImage("button", 120, 40)
//	canvas.AddChild(button)
//
//	tap := imagetap.NewNodeTap("button", button)
//	tap.OnTapped = func() { log.Println("pressed") }
//	scene.AddImageTap(tap)
//
//	imagetap.Run(scene, imagetap.RunConfig{Title: "Taps", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update], or drive the scene without Ebitengine input through
// [Scene.TouchBegan] and [Scene.Step].
//
// # Coordinates
//
// Touches arrive in normalized screen space with Y measured from the top.
// Detectors flip Y once, and everything downstream (viewports, bounds,
// [TapEvent]) uses Y measured from the bottom.
//
// # Scene graph
//
// The hit test only depends on the [SceneGraph], [Entity], [Transform],
// [Camera] and [Image] interfaces. [Node] and [OrthoCamera] are the
// built-in implementations; any engine can plug in its own.
//
// # Testing
//
// [Scene.InjectTap] queues synthetic taps and [LoadTapScript] replays a JSON
// script of taps, waits and expectations, one step per tick.
//
// # ECS integration
//
// Confirmed taps are forwarded to an [EntityStore]. The imagetap/ecs package
// publishes them as [Donburi] events.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package imagetap
