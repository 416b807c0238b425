// Package config loads the optional YAML run configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"arscene/hal"
	"arscene/xr/emulator"

	"gopkg.in/yaml.v3"
)

// maxFileSize bounds the config file read.
const maxFileSize = 1 << 20

// Log selects logger level and format. Empty values defer to LOG_LEVEL and
// LOG_FORMAT.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// File is the whole configuration document.
type File struct {
	Window   hal.WindowConfig   `yaml:"window"`
	Headless hal.HeadlessConfig `yaml:"headless"`
	Emulator emulator.Config    `yaml:"emulator"`
	Log      Log                `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Window:   hal.WindowConfig{Width: 800, Height: 600},
		Headless: hal.HeadlessConfig{Hz: 60},
		Emulator: emulator.DefaultConfig(),
	}
}

// Load reads path over Default. Keys absent from the file keep their
// default values; unknown keys are an error.
func Load(path string) (File, error) {
	f := Default()
	info, err := os.Stat(path)
	if err != nil {
		return f, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxFileSize {
		return f, fmt.Errorf("config: %s is too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, &f); err != nil {
		return f, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Decode parses YAML data into f.
func Decode(data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return f.Emulator.Validate()
}
