package viewer

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callLog struct {
	calls []string
}

func (l *callLog) add(s string) { l.calls = append(l.calls, s) }

type fakeWindow struct {
	log    *callLog
	frames int // frames left before the close request
}

func (w *fakeWindow) ShouldClose() bool {
	if w.frames == 0 {
		return true
	}
	w.frames--
	return false
}

func (w *fakeWindow) SwapBuffers() { w.log.add("swap") }

type fakeRenderer struct{ log *callLog }

func (r *fakeRenderer) Render(dt float64) { r.log.add("render") }

type fakeReloader struct {
	log *callLog
	err error
}

func (r *fakeReloader) Reload() error {
	r.log.add("reload")
	return r.err
}

func newTestApp(frames int, opts Options) (*App, *callLog) {
	log := &callLog{}
	w := &fakeWindow{log: log, frames: frames}
	app := NewApp(w, func() { log.add("poll") }, &fakeRenderer{log: log}, opts)
	return app, log
}

func TestRunOrdersFrameSteps(t *testing.T) {
	app, log := newTestApp(3, Options{})
	app.Run()

	assert.Equal(t, uint64(3), app.Frames())
	assert.Equal(t, []string{
		"render", "swap", "poll",
		"render", "swap", "poll",
		"render", "swap", "poll",
	}, log.calls)
}

func TestRunStopsWhenClosedBeforeFirstFrame(t *testing.T) {
	app, log := newTestApp(0, Options{})
	app.Run()

	assert.Zero(t, app.Frames())
	assert.Empty(t, log.calls)
}

func TestReloadAppliedBetweenFrames(t *testing.T) {
	reloads := make(chan struct{}, 1)
	reloads <- struct{}{}

	log := &callLog{}
	reloader := &fakeReloader{log: log, err: errors.New("bad shader")}
	w := &fakeWindow{log: log, frames: 2}
	app := NewApp(w, func() { log.add("poll") }, &fakeRenderer{log: log}, Options{
		Reloader: reloader,
		Reloads:  reloads,
	})
	app.Run()

	// a failing reload does not stop the loop
	assert.Equal(t, []string{
		"render", "swap", "poll", "reload",
		"render", "swap", "poll",
	}, log.calls)
}

func TestCaptureWritesRequestedFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	grabbed := 0
	app, log := newTestApp(3, Options{
		CapturePath:  path,
		CaptureFrame: 2,
		GrabFrame: func() *image.RGBA {
			grabbed++
			return image.NewRGBA(image.Rect(0, 0, 4, 4))
		},
	})
	app.Run()

	assert.Equal(t, 1, grabbed)
	assert.Len(t, log.calls, 9)
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestDisposeRunsInReverse(t *testing.T) {
	log := &callLog{}
	app, _ := newTestApp(0, Options{
		OnStop:    []func(){func() { log.add("stop") }},
		OnDispose: []func(){func() { log.add("renderer") }, func() { log.add("capture") }},
	})
	app.Dispose()
	app.Dispose()

	assert.Equal(t, []string{"stop", "capture", "renderer", "stop"}, log.calls)
}

func TestFrameCapReadEveryFrame(t *testing.T) {
	reads := 0
	app, _ := newTestApp(4, Options{
		FPSLimit: func() int {
			reads++
			return 0
		},
	})
	app.Run()

	assert.Equal(t, 4, reads)
}
