package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"arscene/app"
	"arscene/hal"
	"arscene/internal/buildinfo"
	"arscene/internal/config"
	"arscene/internal/logger"
)

func main() {
	def := config.Default()
	cfgPath := flag.String("config", "", "YAML config file. Flags override its values.")
	headless := flag.Bool("headless", def.Headless.Enabled, "Run without a window.")
	hz := flag.Int("hz", def.Headless.Hz, "Tick rate in headless mode.")
	ticks := flag.Uint64("ticks", def.Headless.Ticks, "Stop after N ticks in headless mode (0 = run forever).")
	clickAfter := flag.Uint64("click-after", def.Headless.ClickAfterTicks, "Headless: activate the AR button after N ticks (0 = never).")
	snapshot := flag.String("snapshot", def.Headless.Snapshot, "Headless: write the last frame as PNG to this path.")
	width := flag.Int("width", def.Window.Width, "Viewport width in CSS pixels.")
	height := flag.Int("height", def.Window.Height, "Viewport height in CSS pixels.")
	scale := flag.Float64("scale", def.Window.Scale, "Device pixel ratio (0 = monitor scale).")
	noAR := flag.Bool("no-ar", !def.Emulator.Supported, "Emulate a device without immersive-ar support.")
	deny := flag.Bool("deny", def.Emulator.Deny, "Emulate the user declining the session prompt.")
	logLevel := flag.String("log-level", "", "Log level (default $LOG_LEVEL or info).")
	logFormat := flag.String("log-format", "", "Log format: text or json (default $LOG_FORMAT or text).")
	version := flag.Bool("version", false, "Print version and exit.")
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg := def
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Headless.Enabled = *headless
		case "hz":
			cfg.Headless.Hz = *hz
		case "ticks":
			cfg.Headless.Ticks = *ticks
		case "click-after":
			cfg.Headless.ClickAfterTicks = *clickAfter
		case "snapshot":
			cfg.Headless.Snapshot = *snapshot
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "scale":
			cfg.Window.Scale = *scale
		case "no-ar":
			cfg.Emulator.Supported = !*noAR
		case "deny":
			cfg.Emulator.Deny = *deny
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})

	logger.Init(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	logger.Log.WithField("headless", cfg.Headless.Enabled).Info(buildinfo.String())

	opts := hal.Options{
		Window:   cfg.Window,
		Emulator: cfg.Emulator,
		Log:      logger.Log,
	}

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, app.New, cfg.Headless, opts); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(app.New, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
