package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cubehelix/config"
	"github.com/lixenwraith/cubehelix/cubehelix"
	"github.com/lixenwraith/cubehelix/imaging"
	"github.com/lixenwraith/cubehelix/render"
	"github.com/lixenwraith/cubehelix/viewer"
)

type options struct {
	configPath string
	colorStr   string
	modeStr    string
	gray       bool
	outPath    string
	stripPath  string
	debug      bool
	params     cubehelix.Params
	negative   bool
}

func main() {
	var opts options
	def := cubehelix.DefaultParams()

	flag.StringVar(&opts.configPath, "config", "cubehelix.toml", "Config file (TOML); missing file uses defaults")
	flag.StringVar(&opts.colorStr, "color", "", "Color depth: 'auto', 'true', or '256' (overrides config)")
	flag.StringVar(&opts.modeStr, "m", "", "Render mode: 'bg', 'half' or 'quadrant' (overrides config)")
	flag.BoolVar(&opts.gray, "gray", false, "Convert color sources to grayscale instead of rejecting them")
	flag.StringVar(&opts.outPath, "o", "", "Write the mapped image to this PNG and exit")
	flag.StringVar(&opts.stripPath, "strip", "", "Write the preview strip to this PNG and exit")
	flag.Float64Var(&opts.params.Start, "start", def.Start, "Start hue")
	flag.Float64Var(&opts.params.Rotations, "rot", def.Rotations, "Rotations")
	flag.Float64Var(&opts.params.Saturation, "sat", def.Saturation, "Saturation")
	flag.Float64Var(&opts.params.Gamma, "gamma", def.Gamma, "Gamma")
	flag.BoolVar(&opts.negative, "neg", false, "Rotate in the negative direction")
	flag.BoolVar(&opts.debug, "debug", false, "Write debug log to the configured log directory")
	flag.Usage = printUsage
	flag.Parse()

	opts.params.Direction = cubehelix.Positive
	if opts.negative {
		opts.params.Direction = cubehelix.Negative
	}

	if err := run(opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logFile := setupLogging(cfg.Log.Dir, opts.debug || cfg.Log.Debug)
	if logFile != nil {
		defer logFile.Close()
	}
	logger := log.Default()

	if err := opts.params.Validate(); err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	log.Printf("Starting with %s", opts.params)

	if opts.stripPath != "" {
		strip := viewer.StripImage(opts.params, cfg.Preview.Width, cfg.Preview.Height)
		if err := imaging.SavePNG(opts.stripPath, strip); err != nil {
			return fmt.Errorf("strip export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote strip %s (%dx%d)\n", opts.stripPath, cfg.Preview.Width, cfg.Preview.Height)
		if len(args) == 0 {
			return nil
		}
	}

	if len(args) < 1 {
		printUsage()
		return fmt.Errorf("missing image path")
	}

	imagePath := args[0]
	img, err := imaging.Load(imagePath)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	bounds := img.Bounds()
	log.Printf("Loaded %s (%dx%d)", imagePath, bounds.Dx(), bounds.Dy())

	if !imaging.IsMonochrome(img) {
		if !opts.gray {
			return fmt.Errorf("%s: %w (use -gray to convert)", imagePath, cubehelix.ErrNotMonochrome)
		}
		img = imaging.ToGray(img)
	}

	if opts.outPath != "" {
		out, err := viewer.MapImage(img, opts.params, cfg.Mapper.Workers, logger)
		if err != nil {
			return err
		}
		if err := imaging.SavePNG(opts.outPath, out); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%dx%d)\n", opts.outPath, bounds.Dx(), bounds.Dy())
		return nil
	}

	colorStr := cfg.Display.ColorMode
	if opts.colorStr != "" {
		colorStr = opts.colorStr
	}
	colorMode, err := render.ParseColorMode(colorStr)
	if err != nil {
		return err
	}

	modeStr := cfg.Display.RenderMode
	if opts.modeStr != "" {
		modeStr = opts.modeStr
	}

	v, err := viewer.New(img, viewer.Options{
		Params:      opts.params,
		Step:        cfg.Controls.Step,
		StripWidth:  cfg.Preview.Width,
		StripHeight: cfg.Preview.Height,
		Workers:     cfg.Mapper.Workers,
		RenderMode:  viewer.ParseRenderMode(modeStr),
		ColorMode:   colorMode,
		ShowStatus:  cfg.Display.Status,
		Live:        cfg.Display.Live,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return runViewer(v, img)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: cubehelix [options] <image>")
	fmt.Fprintln(os.Stderr, "\nSupported formats: PNG, JPEG, GIF, TIFF, BMP, WebP")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nControls:")
	fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C    Quit")
	fmt.Fprintln(os.Stderr, "  Up/Down, j/k, Tab Select parameter")
	fmt.Fprintln(os.Stderr, "  Left/Right, h/l   Adjust parameter")
	fmt.Fprintln(os.Stderr, "  PgUp/PgDn, [ ]    Adjust parameter (large step)")
	fmt.Fprintln(os.Stderr, "  d                 Toggle rotation direction")
	fmt.Fprintln(os.Stderr, "  a, Enter          Apply to image")
	fmt.Fprintln(os.Stderr, "  v                 Toggle live apply")
	fmt.Fprintln(os.Stderr, "  r                 Reset parameters")
	fmt.Fprintln(os.Stderr, "  m                 Toggle render mode (bg/half/quadrant)")
	fmt.Fprintln(os.Stderr, "  c                 Toggle color mode (24bit/256)")
	fmt.Fprintln(os.Stderr, "  s                 Toggle status bar")
}

func runViewer(v *viewer.Viewer, img image.Image) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	return serve(screen, v, img)
}

// serve runs the event loop on an initialized screen and finalizes it on return
func serve(screen tcell.Screen, v *viewer.Viewer, img image.Image) (err error) {
	// Terminal is restored before a crash is reported
	defer func() {
		screen.Fini()
		if r := recover(); r != nil {
			stack := debug.Stack()
			log.Printf("Viewer panic: %v\n%s", r, stack)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCUBEHELIX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)
			err = fmt.Errorf("viewer crashed: %v", r)
		}
	}()

	termW, termH := screen.Size()
	if err := v.Resize(termW, termH); err != nil {
		return err
	}
	log.Printf("Viewer started %dx%d for %dx%d image", termW, termH, img.Bounds().Dx(), img.Bounds().Dy())
	v.Draw(screen)
	screen.Show()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil

		case *tcell.EventKey:
			action, err := v.HandleKey(ev)
			if err != nil {
				log.Printf("Key %s: %v", ev.Name(), err)
			}
			if action == viewer.ActionQuit {
				return nil
			}
			if action == viewer.ActionNone {
				continue
			}

		case *tcell.EventResize:
			termW, termH = ev.Size()
			if err := v.Resize(termW, termH); err != nil {
				log.Printf("Resize %dx%d: %v", termW, termH, err)
			}
			screen.Sync()

		default:
			continue
		}

		v.Draw(screen)
		screen.Show()
	}
}
