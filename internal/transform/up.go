package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minTwist is the smallest twist angle worth preserving across a drag.
const minTwist = 1e-9

// SuggestUp returns the unit up vector an object should use on a surface with
// the given unit normal. The up vector lies in the surface plane; it leans
// toward world Z unless the normal is steeper than upLimit (|normal.z| above
// the limit), in which case world Y is used instead.
func SuggestUp(normal mgl64.Vec3, upLimit float64) mgl64.Vec3 {
	wantedSide := mgl64.Vec3{0, 0, 1}
	if math.Abs(normal.Z()) > upLimit {
		wantedSide = mgl64.Vec3{0, 1, 0}
	}
	return normal.Cross(wantedSide).Cross(normal).Normalize()
}

// CalcTwist measures the rotation of world's up axis (second column) around
// its forward axis, relative to the up vector SuggestUp proposes for that
// forward axis. Returns false when the twist is negligible. The sign is
// positive for a counter-clockwise twist when looking down the forward axis.
func CalcTwist(world mgl64.Mat4, upLimit float64) (float64, bool) {
	linear := world.Mat3()
	normal := linear.Col(2).Normalize()
	suggested := SuggestUp(normal, upLimit)
	up := linear.Col(1).Normalize()

	angle := math.Atan2(suggested.Cross(up).Dot(normal), suggested.Dot(up))
	if math.Abs(angle) < minTwist {
		return 0, false
	}
	return angle, true
}

// ApplyTwistAndDistance re-applies a preserved twist angle and surface
// distance to a freshly solved volume transform: first a rotation about the
// local forward axis, then a translation along it. Nil means the constraint
// is not configured and is left untouched.
func ApplyTwistAndDistance(tr mgl64.Mat4, angle, distance *float64) mgl64.Mat4 {
	if angle != nil {
		tr = tr.Mul4(mgl64.HomogRotate3DZ(*angle))
	}
	if distance != nil {
		tr = tr.Mul4(mgl64.Translate3D(0, 0, *distance))
	}
	return tr
}
