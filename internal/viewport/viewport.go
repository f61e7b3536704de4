// Package viewport bridges raylib input and camera state to the drag engine:
// it classifies the frame's mouse state into one pointer event and snapshots
// the raylib camera as a double-precision projection camera.
package viewport

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"mesh-editor/internal/camera"
	"mesh-editor/internal/drag"
)

// Input classifies the current raylib mouse state into pointer events, one
// per frame.
type Input struct{}

// Poll returns this frame's pointer event. Presses and releases win over
// moves; a move with the left button held is a drag.
func (in *Input) Poll() drag.PointerEvent {
	p := rl.GetMousePosition()
	pos := mgl64.Vec2{float64(p.X), float64(p.Y)}

	kind := drag.PointerMove
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		kind = drag.PointerLeftDown
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		kind = drag.PointerLeftUp
	case rl.IsMouseButtonPressed(rl.MouseButtonRight):
		kind = drag.PointerRightDown
	case rl.IsMouseButtonReleased(rl.MouseButtonRight):
		kind = drag.PointerRightUp
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		kind = drag.PointerDrag
	case !rl.IsWindowFocused():
		kind = drag.PointerLost
	}
	return drag.PointerEvent{Kind: kind, Pos: pos}
}

// Snapshot builds the double-precision camera matching the raylib camera for
// the current screen size. Taken once per frame before feeding pointer
// events.
func Snapshot(cam rl.Camera3D) camera.Camera {
	eye := mgl64.Vec3{float64(cam.Position.X), float64(cam.Position.Y), float64(cam.Position.Z)}
	target := mgl64.Vec3{float64(cam.Target.X), float64(cam.Target.Y), float64(cam.Target.Z)}
	up := mgl64.Vec3{float64(cam.Up.X), float64(cam.Up.Y), float64(cam.Up.Z)}
	return camera.Perspective(eye, target, up,
		mgl64.DegToRad(float64(cam.Fovy)), rl.GetScreenWidth(), rl.GetScreenHeight())
}
