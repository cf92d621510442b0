package window

import (
	"fmt"
	"runtime"

	"arcadelab/internal/camera"
	"arcadelab/internal/logging"
	"arcadelab/internal/render"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window wraps a GLFW window with an OpenGL 4.1 core context and collects
// input between frames. Mouse look is only applied while the cursor is
// captured; a click captures it and Escape releases it.
type Window struct {
	win     *glfw.Window
	Look    *camera.Look
	monitor *glfw.Monitor

	width, height int
	windowedW     int
	windowedH     int
	captured      bool
	presses       []glfw.Key
	clicks        []glfw.MouseButton
}

// Init must be called from main before any window is created. The returned
// function terminates GLFW.
func Init() (func(), error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	return glfw.Terminate, nil
}

func New(title string, width, height int, vsync bool, look *camera.Look) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if err := render.Init(); err != nil {
		win.Destroy()
		return nil, err
	}

	w := &Window{win: win, Look: look, windowedW: width, windowedH: height}
	w.width, w.height = win.GetFramebufferSize()
	render.Viewport(w.width, w.height)

	win.SetFramebufferSizeCallback(w.onResize)
	win.SetKeyCallback(w.onKey)
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursor)
	return w, nil
}

func (w *Window) onResize(_ *glfw.Window, width, height int) {
	w.width, w.height = width, height
	render.Viewport(width, height)
}

func (w *Window) onKey(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.Capture(false)
	case glfw.KeyF11:
		w.toggleFullscreen()
	}
	w.presses = append(w.presses, key)
}

func (w *Window) toggleFullscreen() {
	if w.monitor == nil {
		w.monitor = glfw.GetPrimaryMonitor()
		mode := w.monitor.GetVideoMode()
		w.win.SetMonitor(w.monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	mode := w.monitor.GetVideoMode()
	w.monitor = nil
	w.win.SetMonitor(nil, mode.Width/2-w.windowedW/2, mode.Height/2-w.windowedH/2, w.windowedW, w.windowedH, 0)
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if w.Look != nil && !w.captured {
		w.Capture(true)
		return
	}
	w.clicks = append(w.clicks, button)
}

func (w *Window) onCursor(_ *glfw.Window, x, y float64) {
	if w.Look != nil && w.captured {
		w.Look.Cursor(x, y)
	}
}

// Capture hides and locks the cursor for mouse look.
func (w *Window) Capture(on bool) {
	if on == w.captured {
		return
	}
	w.captured = on
	if on {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if w.Look != nil {
			w.Look.Reprime()
		}
		logging.LogDebug("Cursor captured")
	} else {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		logging.LogDebug("Cursor released")
	}
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) Poll() {
	glfw.PollEvents()
}

func (w *Window) Swap() {
	w.win.SwapBuffers()
}

func (w *Window) Down(k glfw.Key) bool {
	return w.win.GetKey(k) == glfw.Press
}

// Presses returns keys pressed since the last call.
func (w *Window) Presses() []glfw.Key {
	p := w.presses
	w.presses = nil
	return p
}

// Clicks returns mouse buttons pressed since the last call while captured.
func (w *Window) Clicks() []glfw.MouseButton {
	c := w.clicks
	w.clicks = nil
	return c
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) Close() {
	w.win.Destroy()
}
