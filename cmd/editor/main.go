package main

import (
	"flag"

	"mesh-editor/internal/config"
	"mesh-editor/internal/debug"
	"mesh-editor/internal/drag"
	"mesh-editor/internal/graphics"
	"mesh-editor/internal/logger"
	"mesh-editor/internal/raycast"
	"mesh-editor/internal/scene"
	"mesh-editor/internal/viewport"
)

func main() {
	fetchURL := flag.String("fetch", "", "download an asset into assets/downloads before starting")
	flag.Parse()

	prefs, _ := config.Load()
	log := logger.New()
	if *fetchURL != "" {
		fetchAsset(*fetchURL, log)
	}

	scn := buildDemoScene()
	scn.OnSnapshot = func(label string) { log.Log("snapshot: " + label) }

	view := scene.New()
	view.SetGridVisible(prefs.GridVisible)

	caster := raycast.NewMeshRaycaster()
	picker := raycast.NewMeshRaycaster() // separate caches so hover never clobbers a drag
	ctrl := drag.NewController(scn, caster)
	ctrl.Log = log
	if prefs.UseUpLimit {
		up := prefs.UpLimit
		ctrl.UpLimit = &up
	}

	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowMemAlloc(prefs.ShowMemAlloc)

	in := &viewport.Input{}
	update := func() {
		view.Update()
		cam := viewport.Snapshot(view.Camera)
		ev := in.Poll()
		updateHover(scn, picker, cam, ev.Pos)
		ctrl.OnPointer(ev, cam)
		handleKeys(scn, caster, cam, log)
	}
	draw := func() {
		view.Draw(scn)
		dbg.Draw()
		dbg.DrawDragIndicator(ctrl.Dragging() && !ctrl.HitExists())
	}
	graphics.Run(update, draw)
}
