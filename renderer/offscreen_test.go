package renderer

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeedEncoderWritesAllFrames(t *testing.T) {
	pr, pw := io.Pipe()
	consumed := make(chan int64, 1)
	go func() {
		n, _ := io.Copy(io.Discard, pr)
		consumed <- n
	}()

	frames := make(chan []byte, 3)
	done := make(chan error, 1)
	go feedEncoder(pw, frames, done)

	for i := 0; i < 5; i++ {
		frames <- make([]byte, 16)
	}
	close(frames)

	require.NoError(t, <-done)
	require.Equal(t, int64(5*16), <-consumed)
}

func TestFeedEncoderDrainsAfterEncoderExit(t *testing.T) {
	pr, pw := io.Pipe()
	encoderErr := errors.New("encoder exited")
	pr.CloseWithError(encoderErr)

	frames := make(chan []byte, 3)
	done := make(chan error, 1)
	go feedEncoder(pw, frames, done)

	// More frames than the channel buffers; every send must complete
	// even though nothing reads the pipe anymore.
	for i := 0; i < 10; i++ {
		frames <- make([]byte, 16)
	}
	close(frames)

	require.ErrorIs(t, <-done, encoderErr)
}
