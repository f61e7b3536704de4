package drag

import "github.com/go-gl/mathgl/mgl64"

// PointerKind classifies one pointer event.
type PointerKind int

const (
	// PointerMove is a move with no button held.
	PointerMove PointerKind = iota
	// PointerDrag is a move with a button held.
	PointerDrag
	// PointerLeftDown is a left button press.
	PointerLeftDown
	// PointerLeftUp is a left button release.
	PointerLeftUp
	// PointerRightDown is a right button press.
	PointerRightDown
	// PointerRightUp is a right button release.
	PointerRightUp
	// PointerLost means the pointer left the drag gesture without a release
	// (left the canvas, focus loss).
	PointerLost
)

// PointerEvent is one pointer event in screen coordinates (top-left origin).
type PointerEvent struct {
	Kind PointerKind
	Pos  mgl64.Vec2
}
