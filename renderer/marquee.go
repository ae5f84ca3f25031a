package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/faultyterm/raster"
	"github.com/richinsley/faultyterm/shader"
)

type marqueeLocations struct {
	stripTex      int32
	offset        int32
	sequenceWidth int32
	container     int32
	bandHeight    int32
	bgColor       int32
	fadeColor     int32
	fadeWidth     int32
	hoverSpan     int32
	hoverScale    int32
}

// MarqueeState is the per-frame input to the marquee draw.
type MarqueeState struct {
	Offset        float64 // engine scroll offset, logical px
	SequenceWidth float64 // logical px
	BandHeight    float64 // logical px
	FadeWidth     float64 // fraction, 0 disables
	BgColor       [3]float32
	FadeColor     [3]float32
	HoverSpan     [2]float32 // hovered entry x-range in strip space
	HoverScale    float32    // 1 when nothing is hovered
}

// Marquee renders the rasterized logo strip as a visible scroller. The
// wrap against the sequence width happens in the fragment stage, so a
// single full-screen draw covers every tile the engine lays out.
type Marquee struct {
	program  uint32
	quadVAO  uint32
	quadVBO  uint32
	stripTex uint32
	loc      marqueeLocations

	// Framebuffer size drives the viewport; the logical window size is
	// the coordinate space the engine's pixel math lives in.
	fbWidth, fbHeight   int
	logWidth, logHeight int

	disposed bool
}

// NewMarquee compiles the marquee program. The GL context must be
// current.
func NewMarquee(fbWidth, fbHeight, logWidth, logHeight int) (*Marquee, error) {
	if err := initGL(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	m := &Marquee{
		fbWidth: fbWidth, fbHeight: fbHeight,
		logWidth: logWidth, logHeight: logHeight,
	}
	var err error
	m.program, err = newProgram(shader.VertexShader(), shader.MarqueeFragmentShader())
	if err != nil {
		m.Dispose()
		return nil, fmt.Errorf("failed to create marquee program: %w", err)
	}
	m.quadVAO, m.quadVBO = newQuadVAO()

	gl.UseProgram(m.program)
	m.loc = marqueeLocations{
		stripTex:      uniformLocation(m.program, "uStripTex"),
		offset:        uniformLocation(m.program, "uOffset"),
		sequenceWidth: uniformLocation(m.program, "uSequenceWidth"),
		container:     uniformLocation(m.program, "uContainer"),
		bandHeight:    uniformLocation(m.program, "uBandHeight"),
		bgColor:       uniformLocation(m.program, "uBgColor"),
		fadeColor:     uniformLocation(m.program, "uFadeColor"),
		fadeWidth:     uniformLocation(m.program, "uFadeWidth"),
		hoverSpan:     uniformLocation(m.program, "uHoverSpan"),
		hoverScale:    uniformLocation(m.program, "uHoverScale"),
	}

	gl.GenTextures(1, &m.stripTex)
	gl.BindTexture(gl.TEXTURE_2D, m.stripTex)
	// The strip wraps horizontally; repeat sampling keeps the seam
	// invisible at the tile boundary.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return m, nil
}

// Resize records new framebuffer and logical window sizes.
func (m *Marquee) Resize(fbWidth, fbHeight, logWidth, logHeight int) {
	m.fbWidth, m.fbHeight = fbWidth, fbHeight
	m.logWidth, m.logHeight = logWidth, logHeight
}

// UploadStrip replaces the strip texture with a fresh rasterization.
func (m *Marquee) UploadStrip(frame *raster.Frame) {
	if frame == nil || frame.Width == 0 || frame.Height == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, m.stripTex)
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

// Draw renders the scroller once for the current engine state.
func (m *Marquee) Draw(st *MarqueeState) {
	loc := m.loc
	gl.Viewport(0, 0, int32(m.fbWidth), int32(m.fbHeight))
	gl.UseProgram(m.program)

	gl.Uniform1f(loc.offset, float32(st.Offset))
	gl.Uniform1f(loc.sequenceWidth, float32(st.SequenceWidth))
	gl.Uniform2f(loc.container, float32(m.logWidth), float32(m.logHeight))
	gl.Uniform1f(loc.bandHeight, float32(st.BandHeight))
	gl.Uniform3f(loc.bgColor, st.BgColor[0], st.BgColor[1], st.BgColor[2])
	gl.Uniform3f(loc.fadeColor, st.FadeColor[0], st.FadeColor[1], st.FadeColor[2])
	gl.Uniform1f(loc.fadeWidth, float32(st.FadeWidth))
	gl.Uniform2f(loc.hoverSpan, st.HoverSpan[0], st.HoverSpan[1])
	gl.Uniform1f(loc.hoverScale, st.HoverScale)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.stripTex)
	gl.Uniform1i(loc.stripTex, 0)

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(m.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Dispose releases all GL resources; idempotent.
func (m *Marquee) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.program != 0 {
		gl.DeleteProgram(m.program)
		m.program = 0
	}
	if m.stripTex != 0 {
		gl.DeleteTextures(1, &m.stripTex)
		m.stripTex = 0
	}
	if m.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &m.quadVAO)
		gl.DeleteBuffers(1, &m.quadVBO)
		m.quadVAO = 0
	}
}
