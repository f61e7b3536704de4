package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mesh-editor/internal/camera"
	"mesh-editor/internal/model"
	"mesh-editor/internal/primitives"
	"mesh-editor/internal/raycast"
	"mesh-editor/internal/transform"
)

// buildDemoScene creates a slab with an embossed badge glued to its surface,
// placed twice so edits visibly propagate between instances. The badge starts
// selected and ready to drag.
func buildDemoScene() *model.Scene {
	m := &model.Model{}
	obj := m.AddObject()

	obj.AddVolume(&model.Volume{
		ID:        1,
		Name:      "slab",
		Part:      true,
		Mesh:      primitives.Box(80, 60, 20),
		Transform: mgl64.Translate3D(0, 0, 10),
	})
	obj.AddVolume(&model.Volume{
		ID:   2,
		Name: "badge",
		Part: true,
		Mesh: primitives.Box(12, 12, 2),
		// anchor on the slab's top face, projecting straight down into it
		Transform:  mgl64.Translate3D(0, 0, 20),
		Attachment: &model.Attachment{Depth: 2},
	})
	obj.AddInstance(mgl64.Ident4())
	obj.AddInstance(mgl64.Translate3D(120, 0, 0))

	scn := model.NewScene(m)
	badge := -1
	for instIdx := range obj.Instances {
		for volIdx := range obj.Volumes {
			scn.AddVolume(0, volIdx, instIdx)
			if instIdx == 0 && obj.Volumes[volIdx].Name == "badge" {
				badge = len(scn.Volumes) - 1
			}
		}
	}
	scn.Select(badge)
	return scn
}

// updateHover picks the scene volume under the pointer, testing every
// instance and keeping the hit nearest to the eye. Skipped while a drag
// session has picking disabled.
func updateHover(scn *model.Scene, pick *raycast.MeshRaycaster, cam camera.Camera, pos mgl64.Vec2) {
	if !scn.PickingEnabled() {
		return
	}
	origin, dir := cam.Ray(pos)
	if dir == (mgl64.Vec3{}) {
		return
	}

	best := -1
	bestSq := math.Inf(1)
	for objIdx, obj := range scn.Model.Objects {
		for instIdx, inst := range obj.Instances {
			pick.Actualize(inst, nil, nil)
			hit := pick.ClosestHit(origin, dir, nil)
			if hit == nil {
				continue
			}
			world := transform.TransformPoint(pick.Transformation(hit.TrKey), hit.Position)
			sq := world.Sub(origin).Dot(world.Sub(origin))
			if sq >= bestSq {
				continue
			}
			for i, sv := range scn.Volumes {
				if sv.ObjectIdx != objIdx || sv.InstanceIdx != instIdx {
					continue
				}
				if v := scn.VolumeOf(sv); v != nil && v.ID == hit.TrKey.Volume {
					bestSq = sq
					best = i
					break
				}
			}
		}
	}
	scn.SetHovered(best)
}
