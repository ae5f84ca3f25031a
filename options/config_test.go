package options

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/richinsley/faultyterm/ticker"
)

func TestDefaultFullyPopulated(t *testing.T) {
	o := Default()
	require.NotEmpty(t, o.Ticker.Entries)
	require.Positive(t, o.Ticker.Speed)
	require.Positive(t, o.Ticker.EntryHeight)
	require.Positive(t, o.Shader.Scale)
	require.Positive(t, o.Shader.Brightness)
	require.Positive(t, o.Shader.OverlayHeight)

	rgb, err := ParseHexColor(o.Shader.Tint)
	require.NoError(t, err)
	for _, ch := range rgb {
		require.GreaterOrEqual(t, ch, float32(0))
		require.LessOrEqual(t, ch, float32(1))
	}
}

func TestApplyYAMLOverridesSubset(t *testing.T) {
	o := Default()
	err := o.applyYAML([]byte(`
mode: marquee
entries:
  - text: ACME
  - image: logos/initech.png
    width: 120
    height: 60
ticker:
  speed: 80
  direction: right
  background: "#101018"
shader:
  curvature: 0
  tint: "#ff0000"
`))
	require.NoError(t, err)

	require.Equal(t, "marquee", o.Mode)
	require.Equal(t, 80.0, o.Ticker.Speed)
	require.Equal(t, ticker.DirectionRight, o.Ticker.Direction)
	require.Equal(t, "#101018", o.Ticker.Background)
	require.Equal(t, Default().Ticker.FadeColor, o.Ticker.FadeColor)
	require.Len(t, o.Ticker.Entries, 2)
	require.Equal(t, "logos/initech.png", o.Ticker.Entries[1].ImagePath)
	require.Equal(t, 0.0, o.Shader.Curvature)
	require.Equal(t, [3]float32{1, 0, 0}, o.Shader.TintRGB())

	// Untouched values keep their defaults.
	require.Equal(t, Default().Ticker.Gap, o.Ticker.Gap)
	require.Equal(t, Default().Shader.Brightness, o.Shader.Brightness)
}

func TestApplyYAMLRejectsBadValues(t *testing.T) {
	o := Default()
	require.Error(t, o.applyYAML([]byte("ticker:\n  direction: sideways\n")))

	o = Default()
	require.Error(t, o.applyYAML([]byte("shader:\n  tint: \"not-a-color\"\n")))
}

func TestTintFallbackOnMalformedHex(t *testing.T) {
	s := ShaderOptions{Tint: "oops"}
	require.Equal(t, [3]float32{1, 1, 1}, s.TintRGB())
}
