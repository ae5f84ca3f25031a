// Package renderer owns the OpenGL resources of the effect: the
// terminal surface, the marquee blit and the offline recorder.
package renderer

import (
	"fmt"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/faultyterm/raster"
	"github.com/richinsley/faultyterm/shader"
)

// gl.Init must run once per process, after the first context is
// current.
var glInitOnce sync.Once

func initGL() error {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	return initErr
}

// terminalLocations caches the uniform locations of the terminal
// program, resolved once at link time.
type terminalLocations struct {
	time                int32
	resolution          int32
	scale               int32
	gridMul             int32
	digitSize           int32
	scanlineIntensity   int32
	glitchAmount        int32
	flickerAmount       int32
	noiseAmp            int32
	chromaticAberration int32
	dither              int32
	curvature           int32
	tint                int32
	mouse               int32
	mouseStrength       int32
	useMouse            int32
	loadProgress        int32
	useLoadAnimation    int32
	brightness          int32
	overlayTex          int32
	overlayHeight       int32
	hasOverlay          int32
}

// Surface owns the terminal shader program, the full-screen quad and
// the overlay texture, and issues one draw per frame callback.
type Surface struct {
	program    uint32
	quadVAO    uint32
	quadVBO    uint32
	overlayTex uint32
	loc        terminalLocations

	width  int
	height int

	disposed bool
}

// NewSurface compiles the terminal program and allocates the overlay
// texture. The GL context must be current.
func NewSurface(width, height int) (*Surface, error) {
	if err := initGL(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	s := &Surface{width: width, height: height}
	var err error
	s.program, err = newProgram(shader.VertexShader(), shader.TerminalFragmentShader())
	if err != nil {
		s.Dispose()
		return nil, fmt.Errorf("failed to create terminal program: %w", err)
	}
	s.quadVAO, s.quadVBO = newQuadVAO()

	gl.UseProgram(s.program)
	s.loc = terminalLocations{
		time:                uniformLocation(s.program, "iTime"),
		resolution:          uniformLocation(s.program, "iResolution"),
		scale:               uniformLocation(s.program, "uScale"),
		gridMul:             uniformLocation(s.program, "uGridMul"),
		digitSize:           uniformLocation(s.program, "uDigitSize"),
		scanlineIntensity:   uniformLocation(s.program, "uScanlineIntensity"),
		glitchAmount:        uniformLocation(s.program, "uGlitchAmount"),
		flickerAmount:       uniformLocation(s.program, "uFlickerAmount"),
		noiseAmp:            uniformLocation(s.program, "uNoiseAmp"),
		chromaticAberration: uniformLocation(s.program, "uChromaticAberration"),
		dither:              uniformLocation(s.program, "uDither"),
		curvature:           uniformLocation(s.program, "uCurvature"),
		tint:                uniformLocation(s.program, "uTint"),
		mouse:               uniformLocation(s.program, "uMouse"),
		mouseStrength:       uniformLocation(s.program, "uMouseStrength"),
		useMouse:            uniformLocation(s.program, "uUseMouse"),
		loadProgress:        uniformLocation(s.program, "uPageLoadProgress"),
		useLoadAnimation:    uniformLocation(s.program, "uUsePageLoadAnimation"),
		brightness:          uniformLocation(s.program, "uBrightness"),
		overlayTex:          uniformLocation(s.program, "uOverlayTex"),
		overlayHeight:       uniformLocation(s.program, "uOverlayHeight"),
		hasOverlay:          uniformLocation(s.program, "uHasOverlay"),
	}

	// Overlay texture: clamped, bilinear, allocated lazily on the
	// first upload.
	gl.GenTextures(1, &s.overlayTex)
	gl.BindTexture(gl.TEXTURE_2D, s.overlayTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return s, nil
}

// Resize moves the backing surface to a new framebuffer size. The
// caller updates the resolution through Params and should trigger an
// immediate rasterization pass afterwards.
func (s *Surface) Resize(width, height int) {
	s.width = width
	s.height = height
}

// UploadOverlay replaces the overlay texture contents with a freshly
// rasterized strip. The previous contents are discarded.
func (s *Surface) UploadOverlay(frame *raster.Frame) {
	if frame == nil || frame.Width == 0 || frame.Height == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, s.overlayTex)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(frame.Width),
		int32(frame.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(frame.Pix.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw pushes the full uniform table and renders one frame. Exactly
// one draw call per invocation; there is no catch-up.
func (s *Surface) Draw(p *Params) {
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.UseProgram(s.program)

	gl.Uniform1f(s.loc.time, p.Time)
	gl.Uniform3f(s.loc.resolution, p.Width, p.Height, p.Aspect)
	gl.Uniform1f(s.loc.scale, p.Scale)
	gl.Uniform2f(s.loc.gridMul, p.GridMulX, p.GridMulY)
	gl.Uniform1f(s.loc.digitSize, p.DigitSize)
	gl.Uniform1f(s.loc.scanlineIntensity, p.ScanlineIntensity)
	gl.Uniform1f(s.loc.glitchAmount, p.GlitchAmount)
	gl.Uniform1f(s.loc.flickerAmount, p.FlickerAmount)
	gl.Uniform1f(s.loc.noiseAmp, p.NoiseAmplitude)
	gl.Uniform1f(s.loc.chromaticAberration, p.ChromaticAberration)
	gl.Uniform1f(s.loc.dither, p.DitherAmount)
	gl.Uniform1f(s.loc.curvature, p.Curvature)
	gl.Uniform3f(s.loc.tint, p.Tint[0], p.Tint[1], p.Tint[2])
	gl.Uniform2f(s.loc.mouse, p.Mouse[0], p.Mouse[1])
	gl.Uniform1f(s.loc.mouseStrength, p.MouseStrength)
	gl.Uniform1f(s.loc.useMouse, boolUniform(p.MouseReact))
	gl.Uniform1f(s.loc.loadProgress, p.LoadProgress)
	gl.Uniform1f(s.loc.useLoadAnimation, boolUniform(p.UseLoadAnimation))
	gl.Uniform1f(s.loc.brightness, p.Brightness)
	gl.Uniform1f(s.loc.overlayHeight, p.OverlayHeight)
	gl.Uniform1f(s.loc.hasOverlay, boolUniform(p.OverlayPresent))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.overlayTex)
	gl.Uniform1i(s.loc.overlayTex, 0)

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(s.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Dispose releases all GL resources. Safe to call twice and after a
// partially failed initialization.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
	if s.overlayTex != 0 {
		gl.DeleteTextures(1, &s.overlayTex)
		s.overlayTex = 0
	}
	if s.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &s.quadVAO)
		gl.DeleteBuffers(1, &s.quadVBO)
		s.quadVAO = 0
	}
}

func boolUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
