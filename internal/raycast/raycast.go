// Package raycast defines the mesh raycast service the drag engine consumes:
// closest ray/mesh intersection and closest surface point across the volumes
// of one instance, with a filter excluding volumes from the query. Hits are
// reported in the owning volume's local space together with an opaque key
// that resolves the local-to-world transform.
package raycast

import (
	"github.com/go-gl/mathgl/mgl64"

	"mesh-editor/internal/model"
)

// TrKey identifies which cached transform maps a query result into world
// space. Opaque to callers.
type TrKey struct {
	Volume int
}

// Hit is the nearest forward intersection of a ray with a non-excluded
// volume. Position, normal and squared distance are in that volume's local
// space.
type Hit struct {
	TrKey           TrKey
	Position        mgl64.Vec3
	Normal          mgl64.Vec3
	SquaredDistance float64
}

// ClosePoint is the nearest surface point to a query point, used as the
// fallback when no directed ray hit exists.
type ClosePoint struct {
	TrKey           TrKey
	Point           mgl64.Vec3
	SquaredDistance float64
}

// Filter excludes volumes from a query by identity.
type Filter interface {
	Skip(volumeID int) bool
}

// Raycaster is the spatial query service. Actualize must complete before any
// query that depends on a changed instance or filter; it can be expensive for
// large meshes. Meshes overrides the per-volume meshes when non-nil.
type Raycaster interface {
	Actualize(inst *model.Instance, filter Filter, meshes map[int]*model.TriMesh)
	ClosestHit(origin, dir mgl64.Vec3, filter Filter) *Hit
	Closest(point mgl64.Vec3) *ClosePoint
	Transformation(key TrKey) mgl64.Mat4
}

// SkipVolume excludes a single volume, typically the one being dragged so it
// cannot hit itself.
type SkipVolume struct {
	ID int
}

// Skip implements Filter.
func (s SkipVolume) Skip(volumeID int) bool { return volumeID == s.ID }

// AllowVolumes admits only an explicit set of volume IDs.
type AllowVolumes struct {
	IDs []int
}

// Skip implements Filter.
func (a AllowVolumes) Skip(volumeID int) bool {
	for _, id := range a.IDs {
		if id == volumeID {
			return false
		}
	}
	return true
}

// Allowed builds the drag exclusion filter over an object's volumes: every
// model part except the edited volume itself. Modifiers and negative parts
// never receive surface hits.
func Allowed(volumes []*model.Volume, disallowedID int) AllowVolumes {
	ids := make([]int, 0, len(volumes))
	for _, v := range volumes {
		if v.ID == disallowedID || !v.Part {
			continue
		}
		ids = append(ids, v.ID)
	}
	return AllowVolumes{IDs: ids}
}

// Camera is the single capability RayFromCamera needs: unprojecting a screen
// position into a world ray.
type Camera interface {
	Ray(screen mgl64.Vec2) (origin, dir mgl64.Vec3)
}

// RayFromCamera unprojects a screen position and returns the closest
// non-excluded hit mapped into world space, or nil.
func RayFromCamera(r Raycaster, screen mgl64.Vec2, cam Camera, filter Filter) *Hit {
	origin, dir := cam.Ray(screen)
	hit := r.ClosestHit(origin, dir, filter)
	if hit == nil {
		return nil
	}
	tr := r.Transformation(hit.TrKey)
	world := *hit
	world.Position = tr.Mul4x1(hit.Position.Vec4(1)).Vec3()
	world.Normal = tr.Inv().Transpose().Mul4x1(hit.Normal.Vec4(0)).Vec3().Normalize()
	return &world
}
