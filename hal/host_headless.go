package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool   `yaml:"enabled"`
	Hz      int    `yaml:"hz"`
	Ticks   uint64 `yaml:"ticks"`

	// NoWait runs ticks back to back instead of pacing them at Hz.
	// Timestamps still advance by 1000/Hz per tick.
	NoWait bool `yaml:"no_wait"`

	// ClickAfterTicks simulates the user activating the document once
	// that many ticks have run. 0 never clicks.
	ClickAfterTicks uint64 `yaml:"click_after_ticks"`

	// Snapshot, when set, is the PNG path the last composed framebuffer is
	// written to when the run stops after Ticks or on a step error.
	Snapshot string `yaml:"snapshot"`
}

// RunHeadless runs the application without opening a window. Tick n is
// stamped n*1000/Hz milliseconds so runs are reproducible.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig, opts Options) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if err := opts.validate(); err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(opts, opts.Window.Scale)
	step := newApp(h)

	var pace <-chan time.Time
	if !cfg.NoWait {
		t := time.NewTicker(d)
		defer t.Stop()
		pace = t.C
	}

	var tick uint64
	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		tick++
		if cfg.ClickAfterTicks > 0 && tick == cfg.ClickAfterTicks {
			h.logger.WithField("tick", tick).Debug("simulated activation")
			h.display.doc.Activate()
		}
		now := float64(tick) * 1000 / float64(cfg.Hz)
		if err := h.tick(now, step); err != nil {
			if cfg.Snapshot != "" && tick > 1 {
				if serr := writeSnapshot(cfg.Snapshot, h.display.fb); serr != nil {
					h.logger.WithError(serr).Warn("snapshot after step error failed")
				}
			}
			return err
		}
		if err := h.compose(); err != nil {
			return err
		}
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			if cfg.Snapshot != "" {
				return writeSnapshot(cfg.Snapshot, h.display.fb)
			}
			return nil
		}
	}
}

func writeSnapshot(path string, fb *hostFramebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	fb.mu.Lock()
	err = png.Encode(f, fb.img)
	fb.mu.Unlock()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return nil
}
