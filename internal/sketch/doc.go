// Package sketch turns freehand 3D strokes into flat, collidable meshes.
//
// Data flows one way:
//
//	InputSource -> Recorder -> closure test -> Projector -> triangulate.Triangulate -> Assembler -> Scene
//
// The Controller drives that flow once per tick. All collaborators (input,
// reference orientation, scene, trail) are passed in explicitly. Nothing here
// blocks or spawns goroutines; a stroke is finished within the tick that
// ends it.
package sketch
