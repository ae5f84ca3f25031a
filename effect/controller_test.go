package effect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/richinsley/faultyterm/options"
	"github.com/richinsley/faultyterm/ticker"
)

func TestMarqueeStateBackgroundIndependentOfFade(t *testing.T) {
	opts := options.Default()
	opts.Ticker.Background = "#060010"
	opts.Ticker.FadeColor = "#ff0000"
	opts.Ticker.FadeEdges = false
	c := &Controller{
		opts:   opts,
		engine: ticker.NewEngine(opts.Ticker.Entries, opts.Ticker.Speed, ticker.DirectionLeft),
	}

	wantBg, err := options.ParseHexColor("#060010")
	require.NoError(t, err)

	// Fade off: the background holds and no fade is applied.
	st := c.marqueeState()
	require.Equal(t, wantBg, st.BgColor)
	require.Zero(t, st.FadeWidth)
	require.Equal(t, [3]float32{}, st.FadeColor)

	// Fade on: the fade gets its own color, the background is untouched.
	opts.Ticker.FadeEdges = true
	st = c.marqueeState()
	require.Equal(t, wantBg, st.BgColor)
	require.Equal(t, opts.Ticker.FadeWidth, st.FadeWidth)
	require.Equal(t, [3]float32{1, 0, 0}, st.FadeColor)
}
