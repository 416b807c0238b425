// Package quarkgl provides a minimal, predictable software 3D engine.
//
// QuarkGL draws a Scene through a PerspectiveCamera into the Renderer's
// drawing buffer, which the host composites as a dom.Element. It is not a
// game engine and does not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Culling → Rasterization → Blending → Resolve.
//
// Opaque meshes are drawn first, then transparent meshes back to front. With
// RendererOptions.Alpha the buffer is cleared to transparent so the host can
// show its own background (e.g. camera pass-through) behind the scene.
//
// The Renderer also owns an xr.Manager. When a frame consumer is installed
// with SetAnimationLoop, Tick samples the presenting session and hands the
// tracking frame (or nil) to the consumer.
package quarkgl
