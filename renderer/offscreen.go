package renderer

import (
	"fmt"
	"io"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/faultyterm/options"
)

// Recorder renders the effect into an offscreen framebuffer and feeds
// the frames to FFmpeg as raw RGBA video.
type Recorder struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

// NewRecorder allocates the offscreen FBO. The GL context must be
// current.
func NewRecorder(width, height int) (*Recorder, error) {
	if err := initGL(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	rec := &Recorder{width: width, height: height}
	gl.GenFramebuffers(1, &rec.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rec.fbo)
	gl.GenTextures(1, &rec.textureID)
	gl.BindTexture(gl.TEXTURE_2D, rec.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rec.textureID, 0)
	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		rec.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return rec, nil
}

// Bind routes subsequent draws into the recorder's framebuffer.
func (rec *Recorder) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rec.fbo)
}

// Unbind restores the default framebuffer.
func (rec *Recorder) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// readPixels returns the current frame as top-down RGBA rows. OpenGL
// reads bottom-up, so rows are swapped for the encoder.
func (rec *Recorder) readPixels() []byte {
	rowSize := rec.width * 4
	raw := make([]byte, rowSize*rec.height)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rec.fbo)
	gl.ReadPixels(0, 0, int32(rec.width), int32(rec.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(raw))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	flipped := make([]byte, len(raw))
	for y := 0; y < rec.height; y++ {
		copy(flipped[y*rowSize:(y+1)*rowSize], raw[(rec.height-1-y)*rowSize:])
	}
	return flipped
}

// Destroy releases the framebuffer resources; idempotent.
func (rec *Recorder) Destroy() {
	if rec.fbo != 0 {
		gl.DeleteFramebuffers(1, &rec.fbo)
		rec.fbo = 0
	}
	if rec.textureID != 0 {
		gl.DeleteTextures(1, &rec.textureID)
		rec.textureID = 0
	}
}

// feedEncoder copies frames into the pipe until the channel closes,
// reporting the outcome on done. On a write error it publishes the
// error first and then drains the channel, so the producer observes
// the failure promptly and can never block on a send.
func feedEncoder(w *io.PipeWriter, frames <-chan []byte, done chan<- error) {
	for frame := range frames {
		if _, err := w.Write(frame); err != nil {
			w.CloseWithError(err)
			done <- err
			for range frames {
			}
			return
		}
	}
	done <- w.Close()
}

// Record renders Duration seconds at a fixed time step and pipes the
// frames into FFmpeg. renderFrame draws one frame for the given
// simulated time into the bound framebuffer.
func (rec *Recorder) Record(opts *options.Options, renderFrame func(frame int, simTime float64)) error {
	pipeReader, pipeWriter := io.Pipe()

	inputArgs := ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", rec.width, rec.height),
		"framerate": opts.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	// Consumer: the encoder drains the frame channel off the GL thread.
	// Closing the read end when the encoder exits makes any pending
	// pipe write fail instead of blocking forever.
	frameChan := make(chan []byte, 3)
	encoderDone := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		pipeReader.CloseWithError(err)
		encoderDone <- err
	}()
	writerDone := make(chan error, 1)
	go feedEncoder(pipeWriter, frameChan, writerDone)

	// Producer: fixed-step rendering on the GL thread. A writer failure
	// aborts the render loop instead of filling the channel.
	totalFrames := int(opts.Duration * float64(opts.FPS))
	timeStep := 1.0 / float64(opts.FPS)
	for i := 0; i < totalFrames; i++ {
		rec.Bind()
		renderFrame(i, float64(i)*timeStep)
		rec.Unbind()
		select {
		case frameChan <- rec.readPixels():
		case err := <-writerDone:
			close(frameChan)
			<-encoderDone
			return fmt.Errorf("failed to feed encoder: %w", err)
		}
	}
	close(frameChan)

	if err := <-writerDone; err != nil {
		<-encoderDone
		return fmt.Errorf("failed to feed encoder: %w", err)
	}
	if err := <-encoderDone; err != nil {
		return fmt.Errorf("encoder failed: %w", err)
	}
	log.Printf("Recorded %d frames to %s", totalFrames, opts.OutputFile)
	return nil
}
