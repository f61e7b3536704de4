// Package drag implements the surface-constrained drag engine: a state
// machine that lets the user grab a volume glued to the surface of its
// sibling parts and slide it over that surface, keeping orientation and
// user-chosen twist/distance constraints intact. It also provides the
// standalone transform edits sharing the same legacy-fix handling
// (face-to-camera, local-Z rotate/move, surface offset and distance queries).
package drag

import (
	"github.com/go-gl/mathgl/mgl64"

	"mesh-editor/internal/logger"
	"mesh-editor/internal/model"
	"mesh-editor/internal/raycast"
	"mesh-editor/internal/transform"
)

// Surface distance suppression bounds, in squared millimeters. Distances
// below the minimum count as "on the surface"; the maximum is enlarged by the
// dragged volume's own depth. Fixed constants; see the distance query.
const (
	MinSurfaceDistanceSq = 1e-4
	MaxSurfaceDistanceSq = 10.0
)

// moveSnapshotLabel names the undo boundary recorded when a drag commits.
const moveSnapshotLabel = "Move over surface"

// Camera is the projection capability the drag engine consumes.
type Camera interface {
	Project(world mgl64.Vec3) mgl64.Vec2
	Ray(screen mgl64.Vec2) (origin, dir mgl64.Vec3)
	Forward() mgl64.Vec3
}

// session is the state of one in-progress drag, created on pointer press and
// destroyed on release. Owned exclusively by the controller.
type session struct {
	// mouseOffset is the 2D offset between the anchor's screen projection and
	// the press position; mouseOffsetNoShift ignores the plate vertical shift
	// and is the one used while dragging.
	mouseOffset        mgl64.Vec2
	mouseOffsetNoShift mgl64.Vec2
	// world is the volume's fixed world transform at drag start (legacy fix
	// removed). Its skew is stripped in place on the first drag step.
	world       mgl64.Mat4
	instanceInv mgl64.Mat4
	target      *model.SceneVolume
	condition   raycast.AllowVolumes
	// startTwist and startDistance are preserved through the drag and
	// re-applied over each geometric solve, so user-set twist and depth are
	// not disturbed by the new hit. Nil when the constraint does not apply.
	startTwist    *float64
	startDistance *float64
	existHit      bool
}

// Controller drives start/continue/end of a surface drag from pointer events.
type Controller struct {
	// UpLimit, when set, bounds how far the volume's up axis may twist around
	// the surface normal: |normal.z| above the limit switches the reference
	// up from world Z to world Y. Nil disables twist constraints.
	UpLimit *float64
	// Log, when set, receives drag lifecycle lines.
	Log *logger.Logger

	scene     *model.Scene
	raycaster raycast.Raycaster
	session   *session
}

// NewController returns a controller over the given scene and raycaster.
func NewController(scene *model.Scene, r raycast.Raycaster) *Controller {
	return &Controller{scene: scene, raycaster: r}
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool { return c.session != nil }

// HitExists reports whether the last drag step found a surface under the
// pointer. True outside a session.
func (c *Controller) HitExists() bool {
	return c.session == nil || c.session.existHit
}

// OnPointer feeds one pointer event through the drag state machine and
// reports whether the event was consumed. Any non-drag event during a session
// ends it; only a left release commits as a completed drag.
func (c *Controller) OnPointer(ev PointerEvent, cam Camera) bool {
	if c.session != nil && ev.Kind != PointerDrag {
		// write the dragged transform into the model as one undo-able edit
		c.scene.CommitMove(moveSnapshotLabel)

		// allow moving with the object again
		c.scene.EnableMoving(true)
		c.scene.EnablePicking(true)
		c.session = nil

		// only a left release is a completed drag; anything else is a fix-up
		if ev.Kind == PointerLeftUp {
			c.logf("drag: committed")
			return true
		}
		c.logf("drag: ended without left release")
		return false
	}

	switch ev.Kind {
	case PointerMove:
		return false
	case PointerLeftDown:
		return c.start(ev.Pos, cam)
	}

	// dragging started out of the canvas
	if c.session == nil {
		return false
	}
	if ev.Kind == PointerDrag {
		return c.drag(ev.Pos, cam)
	}
	return false
}

// start begins a drag session. Declines silently unless a single volume is
// selected, hovered, surface-attachable and not the sole part of its object.
func (c *Controller) start(pos mgl64.Vec2, cam Camera) bool {
	sv := c.scene.Selected()
	if sv == nil || !c.scene.IsHovered(sv) {
		return false
	}
	vol := c.scene.VolumeOf(sv)
	inst := c.scene.InstanceOf(sv)
	if vol == nil || inst == nil {
		return false
	}

	// a sole part has no sibling surface to be dragged over
	if vol.IsSolePart() {
		return false
	}

	cond := raycast.Allowed(vol.Object().Volumes, vol.ID)
	// Rebuilding the caches can be slow for big meshes; a future improvement
	// is to actualize on a worker and defer the drag until it finishes.
	c.raycaster.Actualize(inst, cond, nil)

	toWorld := WorldMatrixFixed(c.scene, sv)
	anchor := transform.Translation(toWorld)
	offset := cam.Project(anchor).Sub(pos)
	offsetNoShift := offset
	if sv.ShiftZ != 0 {
		noShift := inst.Transform.Mul4(sv.Transform)
		if att := vol.Attachment; att != nil && att.LegacyFix != nil {
			noShift = noShift.Mul4(att.LegacyFix.Inv())
		}
		offsetNoShift = cam.Project(transform.Translation(noShift)).Sub(pos)
	}

	volumeTr := sv.Transform
	if att := vol.Attachment; att != nil && att.LegacyFix != nil {
		volumeTr = volumeTr.Mul4(att.LegacyFix.Inv())
	}
	worldTr := inst.Transform.Mul4(volumeTr)

	s := &session{
		mouseOffset:        offset,
		mouseOffsetNoShift: offsetNoShift,
		world:              worldTr,
		instanceInv:        inst.Transform.Inv(),
		target:             sv,
		condition:          cond,
		existHit:           true,
	}
	if c.UpLimit != nil {
		if a, ok := transform.CalcTwist(worldTr, *c.UpLimit); ok {
			s.startTwist = &a
		}
	}
	if att := vol.Attachment; att != nil && !att.UseSurface {
		if d, ok := surfaceDistanceWith(c.scene, sv, c.raycaster, cond); ok {
			s.startDistance = &d
		}
	}
	c.session = s

	// the dragged volume is the sole mutation target while the session lives
	c.scene.EnableMoving(false)
	c.scene.EnablePicking(false)
	c.logf("drag: started on volume %d", vol.ID)
	return true
}

// drag advances the session for one pointer move: raycast under the offset
// pointer, rebuild the frame against the hit normal and write the result to
// every scene volume of the same identity.
func (c *Controller) drag(pos mgl64.Vec2, cam Camera) bool {
	s := c.session
	offseted := pos.Add(s.mouseOffsetNoShift)
	hit := raycast.RayFromCamera(c.raycaster, offseted, cam, s.condition)

	s.existHit = hit != nil
	if hit == nil {
		// the crosshair indicator needs a redraw
		c.scene.MarkDirty()
		return true
	}

	// strip skew off the stored frame's forward axis, in place
	worldLinear := transform.OrthogonalizeZ(transform.Linear(s.world))
	s.world = transform.WithLinear(s.world, worldLinear)

	// align the forward axis with the hit normal
	forward := worldLinear.Col(2)
	zRot := transform.RotationAligning(forward, hit.Normal)
	worldNew := zRot.Mat4().Mul4(s.world)
	worldNewLinear := transform.Linear(worldNew)

	// constrain the up axis to the suggested up for the new normal
	if c.UpLimit != nil {
		zWorld := worldNewLinear.Col(2).Normalize()
		wantedUp := transform.SuggestUp(zWorld, *c.UpLimit)
		yRot := transform.RotationAligning(worldNewLinear.Col(1), wantedUp)
		worldNew = yRot.Mat4().Mul4(worldNew)
		worldNewLinear = transform.Linear(worldNew)
	}

	// rebuild the volume-local transform from the instance frame
	anchor := transform.TransformPoint(s.instanceInv, hit.Position)
	volumeNew := mgl64.Translate3D(anchor.X(), anchor.Y(), anchor.Z())
	volumeNew = transform.WithLinear(volumeNew, transform.Linear(s.instanceInv).Mul3(worldNewLinear))

	// a degenerate solve keeps the previous transform
	if !transform.IsFinite(volumeNew) {
		return true
	}

	vol := c.scene.VolumeOf(s.target)
	if vol != nil && vol.Attachment != nil {
		if fix := vol.Attachment.LegacyFix; fix != nil {
			volumeNew = volumeNew.Mul4(*fix)
		}
		// user-chosen twist and depth win over the raw geometric solve
		volumeNew = transform.ApplyTwistAndDistance(volumeNew, s.startTwist, s.startDistance)
	}

	c.scene.Broadcast(s.target, volumeNew)
	c.scene.MarkDirty()
	return true
}

func (c *Controller) logf(format string, args ...any) {
	if c.Log != nil {
		c.Log.Logf(format, args...)
	}
}

// WorldMatrixFixed returns the scene volume's world transform with any baked
// legacy correction removed, so edits operate in the canonical frame.
func WorldMatrixFixed(scene *model.Scene, sv *model.SceneVolume) mgl64.Mat4 {
	w := scene.WorldMatrix(sv)
	v := scene.VolumeOf(sv)
	if v == nil || v.Attachment == nil || v.Attachment.LegacyFix == nil {
		return w
	}
	return w.Mul4(v.Attachment.LegacyFix.Inv())
}
