package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window size and title for the editor.
const (
	windowWidth  = 1280
	windowHeight = 720
	windowTitle  = "mesh editor"
)

// Run starts the window and main loop. Each frame it calls update (input,
// drag state machine), then clears the screen and calls draw (scene,
// overlays). This keeps the graphics layer separate from the editor logic.
func Run(update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, windowTitle)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		draw()
		rl.EndDrawing()
	}
}
