package renderer

import (
	"math"

	"github.com/richinsley/faultyterm/options"
)

// Params is the terminal shader's full uniform table. The schema is
// fixed, so it is a plain struct with named fields; configuration,
// per-frame state and the draw layer all agree on it at compile time.
// Every field is populated before the first draw.
type Params struct {
	Time   float32
	Width  float32
	Height float32
	Aspect float32

	Scale               float32
	GridMulX            float32
	GridMulY            float32
	DigitSize           float32
	ScanlineIntensity   float32
	GlitchAmount        float32
	FlickerAmount       float32
	NoiseAmplitude      float32
	ChromaticAberration float32
	DitherAmount        float32
	Curvature           float32
	Tint                [3]float32
	Brightness          float32

	Mouse         [2]float32
	MouseStrength float32
	MouseReact    bool

	LoadProgress     float32
	UseLoadAnimation bool

	OverlayHeight  float32
	OverlayPresent bool
}

// ParamsFromOptions builds the initial uniform table from the merged
// configuration; per-frame fields start at their neutral values.
func ParamsFromOptions(o *options.ShaderOptions) Params {
	return Params{
		Scale:               float32(o.Scale),
		GridMulX:            float32(o.GridMulX),
		GridMulY:            float32(o.GridMulY),
		DigitSize:           float32(o.DigitSize),
		ScanlineIntensity:   float32(o.ScanlineIntensity),
		GlitchAmount:        float32(o.GlitchAmount),
		FlickerAmount:       float32(o.FlickerAmount),
		NoiseAmplitude:      float32(o.NoiseAmplitude),
		ChromaticAberration: float32(o.ChromaticAberration),
		DitherAmount:        float32(o.DitherAmount),
		Curvature:           float32(o.Curvature),
		Tint:                o.TintRGB(),
		Brightness:          float32(o.Brightness),
		Mouse:               [2]float32{0.5, 0.5},
		MouseStrength:       float32(o.MouseStrength),
		MouseReact:          o.MouseReact,
		UseLoadAnimation:    o.PageLoadAnimation,
		OverlayHeight:       float32(o.OverlayHeight),
	}
}

// SetResolution stores the output size and its aspect ratio.
func (p *Params) SetResolution(width, height int) {
	p.Width = float32(width)
	p.Height = float32(height)
	if height > 0 {
		p.Aspect = float32(width) / float32(height)
	}
}

// BarrelDistort is the CPU mirror of the shader's lens remap, the
// contract being that zero curvature is the identity transform. Input
// and output are uv coordinates in [0,1].
func BarrelDistort(u, v, curvature float64) (float64, float64) {
	cx := u*2 - 1
	cy := v*2 - 1
	r2 := cx*cx + cy*cy
	cx *= 1 + curvature*r2
	cy *= 1 + curvature*r2
	return cx*0.5 + 0.5, cy*0.5 + 0.5
}

// PointerTerm is the CPU mirror of the shader's pointer contribution: a
// localized boost plus a ripple, both decaying exponentially with the
// aspect-corrected distance and gated multiplicatively by strength.
func PointerTerm(u, v, mouseU, mouseV, aspect, strength, time float64) float64 {
	dx := (u - mouseU) * aspect
	dy := v - mouseV
	d := math.Hypot(dx, dy)
	boost := math.Exp(-d * 6.0)
	ripple := math.Sin(d*28.0-time*5.0) * math.Exp(-d*4.0) * 0.25
	return (boost + ripple) * strength * 0.35
}
