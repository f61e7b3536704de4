package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-editor/internal/camera"
	"mesh-editor/internal/drag"
	"mesh-editor/internal/logger"
	"mesh-editor/internal/model"
	"mesh-editor/internal/raycast"
)

// Step sizes for keyboard-driven edits.
const (
	rotateStep = 15 * math.Pi / 180
	moveStep   = 0.5 // mm
)

// handleKeys maps the editing operations that are not pointer-driven.
func handleKeys(scn *model.Scene, caster raycast.Raycaster, cam camera.Camera, log *logger.Logger) {
	switch {
	case rl.IsKeyPressed(rl.KeyF):
		if drag.FaceToCamera(scn, cam) {
			log.Log("face to camera")
		}
	case rl.IsKeyPressed(rl.KeyQ):
		drag.LocalZRotate(scn, -rotateStep)
	case rl.IsKeyPressed(rl.KeyE):
		drag.LocalZRotate(scn, rotateStep)
	case rl.IsKeyPressed(rl.KeyZ):
		drag.LocalZMove(scn, -moveStep)
	case rl.IsKeyPressed(rl.KeyX):
		drag.LocalZMove(scn, moveStep)
	case rl.IsKeyPressed(rl.KeyD):
		if sv := scn.Selected(); sv != nil {
			if dist, ok := drag.SurfaceDistance(scn, sv, caster); ok {
				log.Logf("surface distance: %.3f mm", dist)
			} else {
				log.Log("surface distance: at surface or out of range")
			}
		}
	case rl.IsKeyPressed(rl.KeyO):
		if off, ok := drag.SurfaceOffset(scn, caster); ok {
			log.Logf("surface offset: (%.3f, %.3f, %.3f)", off.X(), off.Y(), off.Z())
		} else {
			log.Log("surface offset: already on the surface")
		}
	}
}
