package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30

	crosshairSize      = 10
	crosshairThickness = 2
)

var crosshairColor = rl.NewColor(230, 60, 60, 255)

// Debug holds runtime debugging overlays (FPS, heap, drag indicator). All
// overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Draw renders any enabled debug overlays. Call after the 3D scene in the
// draw loop. Text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		if d.lastFpsText != "" {
			w := rl.MeasureText(d.lastFpsText, fpsFontSize)
			rl.DrawText(d.lastFpsText, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
		}
		y += fpsLineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		if d.lastMemText != "" {
			w := rl.MeasureText(d.lastMemText, fpsFontSize)
			rl.DrawText(d.lastMemText, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
		}
	}
}

// DrawDragIndicator draws a crosshair at the mouse position while a drag has
// no surface under the pointer. No-op when missing is false.
func (d *Debug) DrawDragIndicator(missing bool) {
	if !missing {
		return
	}
	p := rl.GetMousePosition()
	rl.DrawLineEx(
		rl.NewVector2(p.X-crosshairSize, p.Y),
		rl.NewVector2(p.X+crosshairSize, p.Y),
		crosshairThickness, crosshairColor)
	rl.DrawLineEx(
		rl.NewVector2(p.X, p.Y-crosshairSize),
		rl.NewVector2(p.X, p.Y+crosshairSize),
		crosshairThickness, crosshairColor)
}
