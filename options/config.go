package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/richinsley/faultyterm/ticker"
)

// fileConfig mirrors Options with pointer fields so that values absent
// from the YAML file leave the defaults untouched.
type fileConfig struct {
	Mode    *string        `yaml:"mode"`
	Width   *int           `yaml:"width"`
	Height  *int           `yaml:"height"`
	Entries []ticker.Entry `yaml:"entries"`

	Ticker struct {
		Speed       *float64 `yaml:"speed"`
		Direction   *string  `yaml:"direction"`
		EntryHeight *float64 `yaml:"entryHeight"`
		Gap         *float64 `yaml:"gap"`
		HoverScale  *float64 `yaml:"hoverScale"`
		Background  *string  `yaml:"background"`
		FadeEdges   *bool    `yaml:"fadeEdges"`
		FadeWidth   *float64 `yaml:"fadeWidth"`
		FadeColor   *string  `yaml:"fadeColor"`
	} `yaml:"ticker"`

	Shader struct {
		Scale               *float64 `yaml:"scale"`
		GridMulX            *float64 `yaml:"gridMulX"`
		GridMulY            *float64 `yaml:"gridMulY"`
		DigitSize           *float64 `yaml:"digitSize"`
		TimeScale           *float64 `yaml:"timeScale"`
		Paused              *bool    `yaml:"paused"`
		ScanlineIntensity   *float64 `yaml:"scanlineIntensity"`
		GlitchAmount        *float64 `yaml:"glitchAmount"`
		FlickerAmount       *float64 `yaml:"flickerAmount"`
		NoiseAmplitude      *float64 `yaml:"noiseAmplitude"`
		ChromaticAberration *float64 `yaml:"chromaticAberration"`
		DitherAmount        *float64 `yaml:"ditherAmount"`
		Curvature           *float64 `yaml:"curvature"`
		Tint                *string  `yaml:"tint"`
		MouseReact          *bool    `yaml:"mouseReact"`
		MouseStrength       *float64 `yaml:"mouseStrength"`
		PixelRatio          *float64 `yaml:"pixelRatio"`
		PageLoadAnimation   *bool    `yaml:"pageLoadAnimation"`
		Brightness          *float64 `yaml:"brightness"`
		OverlayHeight       *float64 `yaml:"overlayHeight"`
	} `yaml:"shader"`
}

// LoadFile overlays the YAML config at path onto o.
func (o *Options) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return o.applyYAML(data)
}

func (o *Options) applyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	setString(&o.Mode, fc.Mode)
	setInt(&o.Width, fc.Width)
	setInt(&o.Height, fc.Height)
	if len(fc.Entries) > 0 {
		o.Ticker.Entries = fc.Entries
	}

	t := &o.Ticker
	setFloat(&t.Speed, fc.Ticker.Speed)
	if fc.Ticker.Direction != nil {
		dir, err := parseDirection(*fc.Ticker.Direction)
		if err != nil {
			return err
		}
		t.Direction = dir
	}
	setFloat(&t.EntryHeight, fc.Ticker.EntryHeight)
	setFloat(&t.Gap, fc.Ticker.Gap)
	setFloat(&t.HoverScale, fc.Ticker.HoverScale)
	setString(&t.Background, fc.Ticker.Background)
	setBool(&t.FadeEdges, fc.Ticker.FadeEdges)
	setFloat(&t.FadeWidth, fc.Ticker.FadeWidth)
	setString(&t.FadeColor, fc.Ticker.FadeColor)

	s := &o.Shader
	setFloat(&s.Scale, fc.Shader.Scale)
	setFloat(&s.GridMulX, fc.Shader.GridMulX)
	setFloat(&s.GridMulY, fc.Shader.GridMulY)
	setFloat(&s.DigitSize, fc.Shader.DigitSize)
	setFloat(&s.TimeScale, fc.Shader.TimeScale)
	setBool(&s.Paused, fc.Shader.Paused)
	setFloat(&s.ScanlineIntensity, fc.Shader.ScanlineIntensity)
	setFloat(&s.GlitchAmount, fc.Shader.GlitchAmount)
	setFloat(&s.FlickerAmount, fc.Shader.FlickerAmount)
	setFloat(&s.NoiseAmplitude, fc.Shader.NoiseAmplitude)
	setFloat(&s.ChromaticAberration, fc.Shader.ChromaticAberration)
	setFloat(&s.DitherAmount, fc.Shader.DitherAmount)
	setFloat(&s.Curvature, fc.Shader.Curvature)
	setString(&s.Tint, fc.Shader.Tint)
	setBool(&s.MouseReact, fc.Shader.MouseReact)
	setFloat(&s.MouseStrength, fc.Shader.MouseStrength)
	setFloat(&s.PixelRatio, fc.Shader.PixelRatio)
	setBool(&s.PageLoadAnimation, fc.Shader.PageLoadAnimation)
	setFloat(&s.Brightness, fc.Shader.Brightness)
	setFloat(&s.OverlayHeight, fc.Shader.OverlayHeight)

	if _, err := ParseHexColor(s.Tint); err != nil {
		return err
	}
	return nil
}

func parseDirection(s string) (ticker.Direction, error) {
	switch s {
	case "left":
		return ticker.DirectionLeft, nil
	case "right":
		return ticker.DirectionRight, nil
	}
	return 0, fmt.Errorf("invalid direction %q (want left or right)", s)
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
