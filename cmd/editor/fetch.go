package main

import (
	"mesh-editor/internal/fetch"
	"mesh-editor/internal/logger"
)

const fetchDir = "assets/downloads"

// fetchAsset downloads url into the assets directory before the window opens,
// blocking until the fetch finishes either way.
func fetchAsset(url string, log *logger.Logger) {
	done := make(chan struct{})
	fetch.Get(url, fetchDir, fetch.Notify{
		OnProgress: func(percent int) { log.Logf("fetch: %d%%", percent) },
		OnComplete: func(path string) {
			log.Log("fetch: saved " + path)
			close(done)
		},
		OnError: func(msg string) {
			log.Log("fetch: " + msg)
			close(done)
		},
	})
	<-done
}
