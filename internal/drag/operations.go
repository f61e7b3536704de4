package drag

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mesh-editor/internal/model"
	"mesh-editor/internal/raycast"
	"mesh-editor/internal/transform"
)

// faceTolerance decides when the selected volume already faces the camera.
const faceTolerance = 1e-4

// SurfaceOffset casts a ray from the selected volume's anchor along its
// projection direction and returns the volume-local offset from the anchor to
// the surface. Falls back to the globally nearest surface point when the ray
// misses. Offsets below the suppression threshold report false: the volume
// already sits on the surface.
func SurfaceOffset(scene *model.Scene, r raycast.Raycaster) (mgl64.Vec3, bool) {
	sv := scene.Selected()
	if sv == nil {
		return mgl64.Vec3{}, false
	}
	vol := scene.VolumeOf(sv)
	inst := scene.InstanceOf(sv)
	if vol == nil || inst == nil {
		return mgl64.Vec3{}, false
	}

	cond := raycast.SkipVolume{ID: vol.ID}
	r.Actualize(inst, cond, nil)

	toWorld := WorldMatrixFixed(scene, sv)
	point := transform.Translation(toWorld)
	dir := transform.ZBase(toWorld).Mul(-1)
	hit := r.ClosestHit(point, dir, cond)

	if hit == nil {
		// no surface in the projection direction; use the nearest point
		cp := r.Closest(point)
		if cp == nil {
			// anomalous: a closest point exists whenever geometry does
			return mgl64.Vec3{}, false
		}
		if cp.SquaredDistance < MinSurfaceDistanceSq {
			return mgl64.Vec3{}, false
		}
		hitWorld := transform.TransformPoint(r.Transformation(cp.TrKey), cp.Point)
		offsetWorld := hitWorld.Sub(point)
		return transform.Linear(toWorld.Inv()).Mul3x1(offsetWorld), true
	}

	if hit.SquaredDistance < MinSurfaceDistanceSq {
		return mgl64.Vec3{}, false
	}
	hitWorld := transform.TransformPoint(r.Transformation(hit.TrKey), hit.Position)
	offsetWorld := hitWorld.Sub(point)
	// should be close to a pure forward move
	return transform.Linear(toWorld.Inv()).Mul3x1(offsetWorld), true
}

// SurfaceDistance actualizes the raycaster for sv's instance and returns the
// signed distance between the volume anchor and the surface along its
// projection direction. Reports false when the volume is the sole part of its
// object, at the surface, or farther than the depth-scaled maximum.
func SurfaceDistance(scene *model.Scene, sv *model.SceneVolume, r raycast.Raycaster) (float64, bool) {
	vol := scene.VolumeOf(sv)
	inst := scene.InstanceOf(sv)
	if vol == nil || inst == nil {
		return 0, false
	}
	if vol.IsSolePart() {
		return 0, false
	}
	cond := raycast.Allowed(vol.Object().Volumes, vol.ID)
	r.Actualize(inst, cond, nil)
	return surfaceDistanceWith(scene, sv, r, cond)
}

// surfaceDistanceWith is the query against an already actualized raycaster,
// shared with drag start.
func surfaceDistanceWith(scene *model.Scene, sv *model.SceneVolume, r raycast.Raycaster, filter raycast.Filter) (float64, bool) {
	w := scene.WorldMatrix(sv)
	point := transform.Translation(w)
	dir := transform.ZBase(w).Mul(-1)
	hit := r.ClosestHit(point, dir, filter)
	if hit == nil {
		return 0, false
	}

	hitWorld := transform.TransformPoint(r.Transformation(hit.TrKey), hit.Position)
	toHit := hitWorld.Sub(point)
	distSq := toHit.Dot(toHit)

	// too small reads as zero distance
	if distSq < MinSurfaceDistanceSq {
		return 0, false
	}

	// the bound grows with the volume's own depth
	depth := 0.0
	if vol := scene.VolumeOf(sv); vol != nil && vol.Mesh != nil {
		depth = vol.Mesh.SizeZ()
	}
	maxSq := math.Max(math.Pow(2*depth, 2), MaxSurfaceDistanceSq)
	if distSq > maxSq {
		return 0, false
	}

	return transform.SignedDistance(toHit, dir), true
}

// FaceToCamera rotates the selected volume so its projection direction points
// at the camera, keeping the anchor's world position fixed. Returns false
// when nothing is selected or the volume already faces the camera.
func FaceToCamera(scene *model.Scene, cam Camera) bool {
	sv := scene.Selected()
	if sv == nil {
		return false
	}

	// camera direction in the volume's canonical frame
	toWorld := WorldMatrixFixed(scene, sv)
	camDir := transform.Linear(toWorld.Inv()).Mul3x1(cam.Forward()).Normalize()

	forward := mgl64.Vec3{0, 0, -1}
	if camDir.ApproxEqualThreshold(forward, faceTolerance) {
		return false
	}

	var rot mgl64.Mat4
	if camDir.ApproxEqualThreshold(forward.Mul(-1), faceTolerance) {
		// opposite directions have no unique rotation axis
		rot = mgl64.HomogRotate3D(math.Pi, mgl64.Vec3{0, 1, 0})
	} else {
		axis := forward.Cross(camDir).Normalize()
		angle := math.Acos(mgl64.Clamp(forward.Dot(camDir), -1, 1))
		rot = mgl64.HomogRotate3D(angle, axis)
	}

	res := transform.RotateAboutPivot(sv.Transform, rot)
	scene.Broadcast(sv, res)
	if vol := scene.VolumeOf(sv); vol != nil {
		vol.Transform = res
	}
	scene.MarkDirty()
	return true
}

// LocalZRotate rotates the selected volume about its own forward axis. A
// mirror-reflected placement inverts the perceived sense, so the sign flips.
// The edit runs in the canonical frame when a legacy fix is baked in.
func LocalZRotate(scene *model.Scene, angle float64) {
	sv := scene.Selected()
	if sv == nil {
		return
	}
	vol := scene.VolumeOf(sv)
	if vol == nil {
		return
	}
	if transform.HasReflection(sv.Transform) {
		angle = -angle
	}
	withLegacyFixUnbaked(sv, vol, func() {
		sv.Transform = sv.Transform.Mul4(mgl64.HomogRotate3DZ(angle))
	})
	// empty label: slider-driven edits store no undo boundary per step
	scene.CommitRotate("")
}

// LocalZMove translates the selected volume along its own forward axis,
// in the canonical frame when a legacy fix is baked in.
func LocalZMove(scene *model.Scene, move float64) {
	sv := scene.Selected()
	if sv == nil {
		return
	}
	vol := scene.VolumeOf(sv)
	if vol == nil {
		return
	}
	withLegacyFixUnbaked(sv, vol, func() {
		sv.Transform = sv.Transform.Mul4(mgl64.Translate3D(0, 0, move))
	})
	scene.CommitMove("")
}

// withLegacyFixUnbaked runs edit with the volume's baked legacy correction
// removed and re-applies it after, so the edit sees the canonical frame.
func withLegacyFixUnbaked(sv *model.SceneVolume, vol *model.Volume, edit func()) {
	var fix *mgl64.Mat4
	if vol.Attachment != nil {
		fix = vol.Attachment.LegacyFix
	}
	if fix == nil {
		edit()
		return
	}
	sv.Transform = sv.Transform.Mul4(fix.Inv())
	edit()
	sv.Transform = sv.Transform.Mul4(*fix)
}
