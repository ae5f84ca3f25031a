package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// Context wraps one GLFW window and forwards its pointer and size
// events to the effect.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()

	cursorFn func(x, y float64) // normalized, origin bottom-left
	resizeFn func(w, h int)     // framebuffer pixels
}

// New creates and initializes a new GLFW window and returns a Context.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorCallback)
	win.SetFramebufferSizeCallback(c.glfwResizeCallback)

	return c, nil
}

// RegisterKeyCallback allows the main application to register a
// function to be called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// OnCursorMove installs the pointer-move observer. Positions are
// surface-normalized to [0,1] with the origin at the bottom-left.
func (c *Context) OnCursorMove(f func(x, y float64)) {
	c.cursorFn = f
}

// OnResize installs the size-change observer, called with the new
// framebuffer size in pixels.
func (c *Context) OnResize(f func(w, h int)) {
	c.resizeFn = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwCursorCallback(w *glfw.Window, xpos, ypos float64) {
	if c.cursorFn == nil {
		return
	}
	winWidth, winHeight := w.GetSize()
	if winWidth <= 0 || winHeight <= 0 {
		return
	}
	// GLFW reports cursor y from the top; the shader's uv origin is at
	// the bottom.
	c.cursorFn(xpos/float64(winWidth), 1.0-ypos/float64(winHeight))
}

func (c *Context) glfwResizeCallback(w *glfw.Window, width, height int) {
	if c.resizeFn != nil {
		c.resizeFn(width, height)
	}
}

// PixelRatio returns device pixels per logical window unit.
func (c *Context) PixelRatio() float64 {
	fbWidth, _ := c.window.GetFramebufferSize()
	winWidth, _ := c.window.GetSize()
	if winWidth <= 0 {
		return 1
	}
	return float64(fbWidth) / float64(winWidth)
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window. Safe to call more than once.
func (c *Context) Shutdown() {
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) GetWindowSize() (int, int) {
	return c.window.GetSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be
// called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called
// from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
