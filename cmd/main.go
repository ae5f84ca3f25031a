package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/richinsley/faultyterm/effect"
	"github.com/richinsley/faultyterm/glfwcontext"
	"github.com/richinsley/faultyterm/options"
	"github.com/richinsley/faultyterm/ticker"
)

func runEffect(opts *options.Options) {
	// If recording, the window is hidden (headless mode)
	ctrl, err := effect.Mount(opts, !opts.Record)
	if err != nil {
		log.Fatalf("Failed to mount effect: %v", err)
	}
	defer ctrl.Close()

	if opts.Record {
		log.Println("Starting offscreen render loop...")
		if err := ctrl.Record(); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", opts.OutputFile)
	} else {
		log.Println("Starting interactive render loop...")
		ctrl.Run()
	}
}

func init() {
	runtime.LockOSThread()
}

func main() {
	// Command-line flags
	var configFile = flag.String("config", "", "Path to a YAML config file")
	var mode = flag.String("mode", "terminal", "Render mode: terminal or marquee")
	var entries = flag.String("entries", "", "Comma-separated ticker texts (overrides config)")
	var speed = flag.Float64("speed", 120.0, "Ticker speed in px/s")
	var help = flag.Bool("help", false, "Show help message")

	// Recording flags
	var record = flag.Bool("record", false, "Enable recording mode")
	var duration = flag.Float64("duration", 10.0, "Duration to record in seconds")
	var fps = flag.Int("fps", 60, "Frames per second for recording")
	var width = flag.Int("width", 1280, "Width of the output")
	var height = flag.Int("height", 720, "Height of the output")
	var outputFile = flag.String("output", "output.mp4", "Output file name for recording")
	var ffmpegPath = flag.String("ffmpeg", "", "Path to ffmpeg executable")

	flag.Parse()

	if *help {
		fmt.Println("Faulty Terminal Viewer/Recorder")
		flag.PrintDefaults()
		return
	}

	opts := options.Default()
	if *configFile != "" {
		if err := opts.LoadFile(*configFile); err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}

	// Only flags the user actually passed override the config file, so
	// explicit zero values (-speed 0, -duration 0) apply too.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			opts.Mode = *mode
		case "entries":
			opts.Ticker.Entries = nil
			for _, s := range strings.Split(*entries, ",") {
				if s = strings.TrimSpace(s); s != "" {
					opts.Ticker.Entries = append(opts.Ticker.Entries, ticker.Entry{Text: s})
				}
			}
		case "speed":
			opts.Ticker.Speed = *speed
		case "record":
			opts.Record = *record
		case "duration":
			opts.Duration = *duration
		case "fps":
			opts.FPS = *fps
		case "width":
			opts.Width = *width
		case "height":
			opts.Height = *height
		case "output":
			opts.OutputFile = *outputFile
		case "ffmpeg":
			opts.FFMPEGPath = *ffmpegPath
		}
	})

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	runEffect(opts)
}
