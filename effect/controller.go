// Package effect composes the clock, pointer tracker, ticker engine,
// rasterizer and GL surfaces into the two mountable behaviors: the
// terminal-with-overlay effect and the standalone logo marquee.
package effect

import (
	"fmt"
	"log"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/faultyterm/glfwcontext"
	"github.com/richinsley/faultyterm/options"
	"github.com/richinsley/faultyterm/pointer"
	"github.com/richinsley/faultyterm/raster"
	"github.com/richinsley/faultyterm/renderer"
	"github.com/richinsley/faultyterm/ticker"
	"github.com/richinsley/faultyterm/timing"
)

// Controller owns every resource of one mount and tears them down as
// a unit. All state is touched only from the GLFW main thread.
type Controller struct {
	opts *options.Options

	ctx      *glfwcontext.Context
	surface  *renderer.Surface
	marquee  *renderer.Marquee
	engine   *ticker.Engine
	capturer raster.Capturer
	clock    *timing.Clock
	loader   *timing.LoadAnimator
	tracker  *pointer.Tracker
	schedule *rasterSchedule

	params renderer.Params
	layout raster.Layout

	// Raw cursor in normalized window coordinates, for marquee hover.
	cursorX, cursorY float64

	closed bool
}

// Mount creates the window and all per-mount state for the configured
// mode. visible is false in record mode.
func Mount(opts *options.Options, visible bool) (*Controller, error) {
	ctx, err := glfwcontext.New(opts.Width, opts.Height, "faultyterm", visible)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	ctx.MakeCurrent()

	c := &Controller{
		opts:     opts,
		ctx:      ctx,
		engine:   ticker.NewEngine(opts.Ticker.Entries, opts.Ticker.Speed, opts.Ticker.Direction),
		clock:    timing.NewClock(),
		loader:   timing.NewLoadAnimator(opts.Shader.PageLoadAnimation),
		tracker:  pointer.NewTracker(opts.Shader.MouseReact),
		schedule: newRasterSchedule(raster.DefaultInterval),
		cursorX:  0.5,
		cursorY:  0.5,
	}

	c.capturer, err = raster.NewRasterizer()
	if err != nil {
		c.Close()
		return nil, err
	}

	fbW, fbH := ctx.GetFramebufferSize()
	logW, _ := ctx.GetWindowSize()

	switch opts.Mode {
	case "terminal":
		c.surface, err = renderer.NewSurface(fbW, fbH)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.params = renderer.ParamsFromOptions(&opts.Shader)
		c.params.SetResolution(fbW, fbH)
	case "marquee":
		lw, lh := ctx.GetWindowSize()
		c.marquee, err = renderer.NewMarquee(fbW, fbH, lw, lh)
		if err != nil {
			c.Close()
			return nil, err
		}
	default:
		c.Close()
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}

	c.engine.SetContainerWidth(float64(logW))

	if c.surface != nil {
		ctx.RegisterKeyCallback(glfw.KeySpace, func() {
			c.opts.Shader.Paused = !c.opts.Shader.Paused
		})
	}
	ctx.OnCursorMove(func(x, y float64) {
		c.cursorX, c.cursorY = x, y
		c.tracker.SetRaw(x, y)
	})
	ctx.OnResize(func(w, h int) {
		lw, lh := ctx.GetWindowSize()
		c.engine.SetContainerWidth(float64(lw))
		if c.surface != nil {
			c.surface.Resize(w, h)
			c.params.SetResolution(w, h)
		}
		if c.marquee != nil {
			c.marquee.Resize(w, h, lw, lh)
		}
		c.schedule.resize()
	})

	return c, nil
}

// Run drives the interactive frame loop until the window closes.
func (c *Controller) Run() {
	last := c.ctx.Time()
	for !c.ctx.ShouldClose() {
		now := c.ctx.Time()
		dt := now - last
		last = now

		c.frame(now, dt)
		c.ctx.EndFrame()
	}
}

// frame advances all per-frame state and issues exactly one draw.
func (c *Controller) frame(now, dt float64) {
	c.engine.Update(dt)

	if c.surface != nil {
		elapsed := c.clock.Advance(dt, c.opts.Shader.TimeScale, c.opts.Shader.Paused)
		c.params.Time = float32(elapsed)
		c.params.LoadProgress = float32(c.loader.Progress(now))
		if c.tracker.Enabled() {
			x, y := c.tracker.Smooth()
			c.params.Mouse = [2]float32{float32(x), float32(y)}
		}
		if c.schedule.due(now) {
			c.rasterizeOverlay()
		}
		c.surface.Draw(&c.params)
		return
	}

	if c.schedule.due(now) {
		c.rasterizeStrip()
	}
	st := c.marqueeState()
	c.marquee.Draw(&st)
}

// rasterizeOverlay re-renders the scrolled ticker window and uploads
// it as the overlay texture. A failed pass is skipped; the stale
// texture persists until the next tick.
func (c *Controller) rasterizeOverlay() {
	logW, _ := c.ctx.GetWindowSize()
	frame, layout, err := c.capturer.CaptureScrolled(
		c.engine.Entries(), c.sizeHint(),
		c.engine.Offset(), float64(logW))
	if err != nil {
		return
	}
	c.layout = layout
	c.engine.SetSequenceWidth(layout.SequenceWidth)
	c.surface.UploadOverlay(frame)
	c.params.OverlayPresent = true
}

// rasterizeStrip re-renders one pass of the strip for the marquee; the
// horizontal wrap happens at sampling time.
func (c *Controller) rasterizeStrip() {
	frame, layout, err := c.capturer.Capture(c.engine.Entries(), c.sizeHint())
	if err != nil {
		return
	}
	c.layout = layout
	c.engine.SetSequenceWidth(layout.SequenceWidth)
	c.marquee.UploadStrip(frame)
}

func (c *Controller) sizeHint() raster.SizeHint {
	dpr := c.opts.Shader.PixelRatio
	if dpr <= 0 {
		dpr = c.ctx.PixelRatio()
	}
	return raster.SizeHint{
		EntryHeight: c.opts.Ticker.EntryHeight,
		Gap:         c.opts.Ticker.Gap,
		PixelRatio:  dpr,
	}
}

func (c *Controller) marqueeState() renderer.MarqueeState {
	t := &c.opts.Ticker
	st := renderer.MarqueeState{
		Offset:        c.engine.Offset(),
		SequenceWidth: c.engine.SequenceWidth(),
		BandHeight:    t.EntryHeight,
		HoverScale:    1,
	}
	if rgb, err := options.ParseHexColor(t.Background); err == nil {
		st.BgColor = rgb
	}
	if t.FadeEdges {
		st.FadeWidth = t.FadeWidth
		if rgb, err := options.ParseHexColor(t.FadeColor); err == nil {
			st.FadeColor = rgb
		}
	}

	if t.HoverScale > 1 {
		if idx := c.hoveredEntry(); idx >= 0 {
			box := c.layout.Boxes[idx]
			st.HoverSpan = [2]float32{float32(box.X), float32(box.X + box.W)}
			st.HoverScale = float32(t.HoverScale)
		}
	}
	return st
}

// hoveredEntry maps the raw cursor into strip space and returns the
// entry index under it, or -1 outside the band and over gaps.
func (c *Controller) hoveredEntry() int {
	logW, logH := c.ctx.GetWindowSize()
	if logW <= 0 || logH <= 0 || c.engine.SequenceWidth() <= 0 {
		return -1
	}
	bandHalf := c.opts.Ticker.EntryHeight / 2
	dy := (c.cursorY - 0.5) * float64(logH)
	if dy < -bandHalf || dy > bandHalf {
		return -1
	}
	x := c.cursorX*float64(logW) + c.engine.Offset()
	return c.layout.EntryAt(x)
}

// Record renders the terminal effect offline at a fixed step and
// encodes it with FFmpeg.
func (c *Controller) Record() error {
	if c.surface == nil {
		return fmt.Errorf("record mode requires the terminal effect")
	}
	rec, err := renderer.NewRecorder(c.opts.Width, c.opts.Height)
	if err != nil {
		return err
	}
	defer rec.Destroy()

	c.surface.Resize(c.opts.Width, c.opts.Height)
	c.params.SetResolution(c.opts.Width, c.opts.Height)

	step := 1.0 / float64(c.opts.FPS)
	log.Printf("Recording %.1fs at %d fps...", c.opts.Duration, c.opts.FPS)
	return rec.Record(c.opts, func(frame int, simTime float64) {
		c.frame(simTime, step)
	})
}

// Close tears the mount down in one step: scheduling, observers, GL
// resources, window. Safe to call twice and after partial init.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.surface != nil {
		c.surface.Dispose()
	}
	if c.marquee != nil {
		c.marquee.Dispose()
	}
	if c.ctx != nil {
		c.ctx.OnCursorMove(nil)
		c.ctx.OnResize(nil)
		c.ctx.Shutdown()
	}
}
