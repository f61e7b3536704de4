// Package fetch downloads a single resource to disk on a background
// goroutine, notifying the caller through three callbacks: progress percent,
// completion with the saved path, and error with a message.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

// progressChunk is the copy buffer size between progress notifications.
const progressChunk = 64 * 1024

// Notify carries the caller's callbacks. Nil callbacks are skipped. Callbacks
// run on the fetch goroutine.
type Notify struct {
	OnProgress func(percent int)
	OnComplete func(path string)
	OnError    func(msg string)
}

// Get starts fetching url into destDir on a new goroutine and returns
// immediately. Exactly one of OnComplete or OnError fires at the end.
func Get(url, destDir string, n Notify) {
	go func() {
		path, err := fetch(url, destDir, n.OnProgress)
		if err != nil {
			if n.OnError != nil {
				n.OnError(err.Error())
			}
			return
		}
		if n.OnComplete != nil {
			n.OnComplete(path)
		}
	}()
}

// fetch downloads url and saves it under destDir. Filename is derived from the
// URL path or Content-Disposition; extension from URL or Content-Type. Returns
// the path to the saved file (destDir + filename). destDir is created if needed.
func fetch(url, destDir string, onProgress func(percent int)) (savedPath string, err error) {
	client := &http.Client{Timeout: 60 * time.Second}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: HTTP %d", resp.StatusCode)
	}
	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = extensionFromURL(url)
	}
	if ext == "" {
		ext = ".bin"
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(url)
	}
	if name == "" {
		name = "download"
	}
	name = sanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name = name + ext
	}
	savedPath = filepath.Join(destDir, name)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	out, err := os.Create(savedPath)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer out.Close()
	if err := copyWithProgress(out, resp.Body, resp.ContentLength, onProgress); err != nil {
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("fetch: %w", err)
	}
	return savedPath, nil
}

// copyWithProgress copies src to dst in chunks, reporting percent done after
// each chunk. With an unknown total only 0 and 100 are reported.
func copyWithProgress(dst io.Writer, src io.Reader, total int64, onProgress func(percent int)) error {
	report := func(done int64) {
		if onProgress == nil {
			return
		}
		if total <= 0 {
			onProgress(0)
			return
		}
		onProgress(int(done * 100 / total))
	}
	report(0)
	var done int64
	buf := make([]byte, progressChunk)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
			done += int64(n)
			report(done)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if onProgress != nil && total <= 0 {
		onProgress(100)
	}
	return nil
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		s = strings.Trim(s, "\" ")
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return s
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "zip"):
		return ".zip"
	case strings.Contains(ct, "stl"):
		return ".stl"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "svg"):
		return ".svg"
	case strings.Contains(ct, "octet-stream"):
		return ""
	}
	return ""
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".stl", ".3mf", ".obj", ".png", ".jpg", ".jpeg", ".svg":
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "download"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
