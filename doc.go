// Package ripple renders a real-time distortion overlay for the images of a
// scrolling page, on top of [Ebitengine].
//
// Every image on the page is mirrored by a textured plane in a perspective
// scene. Each frame the planes are moved and scaled so they cover their
// image exactly, and a Kage fragment shader distorts them: a displacement
// push that follows the pointer while it hovers an image, and a wave plus an
// RGB shift proportional to the scroll speed. Both fade out on their own
// once input stops.
//
// # Quick start
//
//	page := ripple.NewPage(1280, 800)
//	for _, src := range []string{"a.jpg", "b.webp", "c.png"} {
//		page.AddImage(src)
//	}
//	cfg := ripple.DefaultConfig()
//	cfg.Displacement = "displacement.png"
//	fx, err := ripple.NewEffect(page, os.DirFS("assets"), cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := ripple.Run(fx, ripple.RunConfig{Title: "Gallery", Resizable: true}); err != nil {
//		log.Fatal(err)
//	}
//
// [Effect] implements [ebiten.Game], so it can also be driven by a custom
// game loop: call [Effect.Start] once, then Update, Draw and Layout.
//
// # Components
//
// The effect is assembled from small pieces sharing one [Context]:
//
//   - [Mapper] converts a page rectangle into a world transform for the
//     perspective [Camera].
//   - [Scroller] is the virtual smooth scroller that owns the page offset.
//   - [ScrollTracker] derives scroll direction and speed from its
//     notifications.
//   - [Registry] builds one [Plane] per page image, sharing one grid
//     [Geometry] and the displacement map.
//   - [Animator] places the planes and decays their uniforms every frame.
//   - [Router] forwards pointer positions to hovered planes and handles
//     viewport resizes.
//
// # Loading
//
// [Preloader] decodes all images concurrently from an [io/fs.FS]. PNG, JPEG,
// GIF, WebP, BMP and TGA are supported. Loading is all-or-nothing: if any
// image fails, no planes are built and [Effect.Update] returns the
// [LoadError].
//
// # Shaders
//
// The built-in shader can be replaced with Config.ShaderFile. With
// Config.WatchShader set, the file is reloaded whenever it changes; a
// reload that fails to compile keeps the previous shader. The uniforms
// available to custom shaders are Mouse, Time, Intensity, ScrollSpeed and
// ScrollDirection, with the image as source 0 and the displacement map as
// source 1.
//
// # Testing and automation
//
// Input can be injected with [Effect.InjectMove], [Effect.InjectWheel] and
// friends, or scripted through a JSON [TestRunner]. [Effect.Screenshot]
// writes PNG or WebP captures of the composed frame.
//
// [Ebitengine]: https://ebitengine.org
package ripple
