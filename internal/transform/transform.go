// Package transform holds the pure frame math used by the surface drag engine:
// affine compose/decompose helpers, skew removal, shortest-arc rotations and
// signed surface distance. All transforms are mgl64.Mat4 affine maps
// (3x3 linear part + translation), column-major like OpenGL.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// scaleTolerance is the relative tolerance used by ScaleRatio to decide that
// two frames carry the same scale along a direction.
const scaleTolerance = 1e-3

// Linear returns the 3x3 linear part (rotation/scale/skew) of an affine map.
func Linear(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3()
}

// WithLinear returns m with its linear part replaced by l. Translation is kept.
func WithLinear(m mgl64.Mat4, l mgl64.Mat3) mgl64.Mat4 {
	for c := 0; c < 3; c++ {
		col := l.Col(c)
		m.SetCol(c, mgl64.Vec4{col.X(), col.Y(), col.Z(), 0})
	}
	return m
}

// Translation returns the translation point of an affine map.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// WithTranslation returns m with its translation replaced by t.
func WithTranslation(m mgl64.Mat4, t mgl64.Vec3) mgl64.Mat4 {
	m.SetCol(3, mgl64.Vec4{t.X(), t.Y(), t.Z(), 1})
	return m
}

// TransformPoint maps a point through an affine map (translation applies).
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDir maps a direction through an affine map (translation ignored).
func TransformDir(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// ZBase returns the unit forward axis of an affine map: the normalized third
// column of its linear part.
func ZBase(m mgl64.Mat4) mgl64.Vec3 {
	return m.Mat3().Col(2).Normalize()
}

// OrthogonalizeZ replaces the third column of l with the component of the
// original third axis perpendicular to the plane of the first two axes.
// Removes skew accumulated on the forward axis; the first two axes are kept
// exactly. Idempotent.
func OrthogonalizeZ(l mgl64.Mat3) mgl64.Mat3 {
	oldZ := l.Col(2)
	newZ := l.Col(0).Cross(l.Col(1))
	l.SetCol(2, newZ.Mul(oldZ.Dot(newZ)/newZ.Dot(newZ)))
	return l
}

// RotationAligning returns the minimal rotation mapping direction a onto
// direction b. Inputs need not be unit length. The antiparallel case yields a
// 180 degree turn about a fixed perpendicular axis.
func RotationAligning(a, b mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatBetweenVectors(a, b)
}

// RotateAboutPivot applies rotation rot to tr while keeping the world
// position of tr's translation point fixed: translate the pivot to the
// origin, rotate, translate back through the rotated frame.
func RotateAboutPivot(tr, rot mgl64.Mat4) mgl64.Mat4 {
	pivot := Translation(tr)
	back := TransformDir(rot.Inv(), pivot)
	res := tr.Mul4(mgl64.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z()))
	res = res.Mul4(rot)
	return res.Mul4(mgl64.Translate3D(back.X(), back.Y(), back.Z()))
}

// SignedDistance returns the length of offset signed by its alignment with
// forward: positive when the offset points along forward, negative otherwise.
func SignedDistance(offset, forward mgl64.Vec3) float64 {
	d := offset.Len()
	if offset.Dot(forward) > 0 {
		return d
	}
	return -d
}

// HasReflection reports whether the linear part of m mirrors space
// (negative determinant). A reflected placement inverts the perceived sense
// of local rotations.
func HasReflection(m mgl64.Mat4) bool {
	return m.Mat3().Det() < 0
}

// ScaleRatio compares the scale of two linear maps along dir. When the scale
// differs beyond tolerance it returns the from/to ratio and true; otherwise
// 0 and false. A drag step must never report a change here.
func ScaleRatio(from, to mgl64.Mat3, dir mgl64.Vec3) (float64, bool) {
	fromDir := from.Mul3x1(dir)
	toDir := to.Mul3x1(dir)
	fromSq := fromDir.Dot(fromDir)
	toSq := toDir.Dot(toDir)
	if mgl64.FloatEqualThreshold(fromSq, toSq, scaleTolerance) {
		return 0, false
	}
	return math.Sqrt(fromSq / toSq), true
}

// IsFinite reports whether every entry of m is a finite number. A drag step
// producing a non-finite matrix is discarded.
func IsFinite(m mgl64.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
