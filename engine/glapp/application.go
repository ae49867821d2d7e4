// Package glapp opens a GLFW window with an OpenGL 4.1 core context and runs the render loop.
package glapp

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bmtext/engine/glhf"
	"github.com/memmaker/bmtext/engine/util"
	"github.com/pkg/errors"
)

type GlApplication struct {
	Window       *glfw.Window
	Title        string
	ClearColor   mgl32.Vec4
	DrawFunc     func(elapsed float64)
	KeyHandler   func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	WindowWidth  int
	WindowHeight int

	ticks           uint64
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64
}

func NewGlApplication(window *glfw.Window, title string) *GlApplication {
	width, height := window.GetSize()
	a := &GlApplication{
		Window:       window,
		Title:        title,
		ClearColor:   mgl32.Vec4{0.7, 0.7, 0.7, 1},
		WindowWidth:  width,
		WindowHeight: height,
		FPSMin:       math.MaxFloat64,
	}
	window.SetKeyCallback(a.KeyCallback)
	return a
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	if a.KeyHandler != nil {
		a.KeyHandler(key, scancode, action, mods)
	}
}

// Run draws frames until the window is closed. It must be called on the thread owning the context.
func (a *GlApplication) Run() {
	previousTime := glfw.GetTime()
	for !a.Window.ShouldClose() {
		width, height := a.Window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(a.ClearColor[0], a.ClearColor[1], a.ClearColor[2], a.ClearColor[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		now := glfw.GetTime()
		elapsed := now - previousTime
		previousTime = now
		if a.DrawFunc != nil {
			a.DrawFunc(elapsed)
		}
		a.trackFPS(elapsed)

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

func (a *GlApplication) trackFPS(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	a.FramesPerSecond = 1.0 / elapsed
	if a.ticks%60 == 0 {
		a.Window.SetTitle(fmt.Sprintf("%s - FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f)", a.Title, a.FramesPerSecond, a.FPSRunningAvg, a.FPSMin, a.FPSMax))
		a.FPSRunningAvg = a.FramesPerSecond * (1.0 / 60.0)
		a.FPSMin = math.MaxFloat64
		a.FPSMax = 0
		return
	}
	a.FPSRunningAvg += a.FramesPerSecond * (1.0 / 60.0)
	a.FPSMin = math.Min(a.FPSMin, a.FramesPerSecond)
	a.FPSMax = math.Max(a.FPSMax, a.FramesPerSecond)
}

// InitOpenGL creates a window with a current 4.1 core context and loads GL.
// The returned func destroys the window and terminates GLFW.
func InitOpenGL(title string, width, height int) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "could not initialize GLFW")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "could not create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := glhf.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}
	util.LogGlInfo(fmt.Sprintf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return win, func() {
		win.Destroy()
		glfw.Terminate()
	}, nil
}
