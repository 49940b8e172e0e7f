// Package config holds the settings of the game binary.
package config

import (
	"reflect"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"maze3d/internal/chunk"
	"maze3d/internal/world"
)

// Keeps the field names readable for the cli package when the binary is obfuscated.
var _ = reflect.TypeOf(Config{})

// Config is filled from command line flags and environment variables.
type Config struct {
	Width        int     `cli:""        env:"MAZE3D_WIDTH"         help:"Maze width in cells."`
	Height       int     `cli:""        env:"MAZE3D_HEIGHT"        help:"Maze height in cells."`
	Seed         int64   `cli:""        env:"MAZE3D_SEED"          help:"Maze seed, 0 picks one at random."`
	ChunkSize    int     `cli:",hidden" env:"MAZE3D_CHUNK_SIZE"    help:"Edge length of a render chunk in cells."`
	WindowWidth  int     `cli:""        env:"MAZE3D_WINDOW_WIDTH"  help:"Window width in pixels."`
	WindowHeight int     `cli:""        env:"MAZE3D_WINDOW_HEIGHT" help:"Window height in pixels."`
	Fullscreen   bool    `cli:""        env:"MAZE3D_FULLSCREEN"    help:"Use the primary monitor in fullscreen."`
	FOV          float32 `cli:",hidden" env:"MAZE3D_FOV"           help:"Vertical field of view in degrees."`
	FPSLimit     int     `cli:""        env:"MAZE3D_FPS_LIMIT"     help:"Frame rate cap, 0 disables it."`
	FontPath     string  `cli:",hidden" env:"MAZE3D_FONT_PATH"     help:"OpenType font for the HUD, the built-in bitmap font is used when empty."`
	Sound        bool    `cli:""        env:"MAZE3D_SOUND"         help:"Play a sound when bumping into walls."`
	MetricsAddr  string  `cli:""        env:"MAZE3D_METRICS_ADDR"  help:"Listening address for Prometheus metrics, empty disables it."`
	LogLevel     string  `cli:""        env:"MAZE3D_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool    `cli:""        env:"MAZE3D_LOG_INDENT"    help:"Indent logs."`
	Version      bool    `cli:""        env:"-"                    help:"Show version."`
	Help         bool    `cli:""        env:"-"                    help:"Show help."`
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		Width:        100,
		Height:       100,
		ChunkSize:    chunk.DefaultSize,
		WindowWidth:  1280,
		WindowHeight: 800,
		Fullscreen:   false,
		FOV:          45,
		FPSLimit:     120,
		Sound:        true,
		LogLevel:     logs.InfoLevel.String(),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return errors.New("maze must be at least 2x2 cells").
			WithTag("width", c.Width).
			WithTag("height", c.Height)
	}
	if c.ChunkSize < 1 {
		return errors.New("chunk size must be positive").
			WithTag("chunk_size", c.ChunkSize)
	}
	if c.WindowWidth < 1 || c.WindowHeight < 1 {
		return errors.New("window size must be positive").
			WithTag("window_width", c.WindowWidth).
			WithTag("window_height", c.WindowHeight)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return errors.New("field of view out of range").
			WithTag("fov", c.FOV)
	}
	if c.FPSLimit < 0 {
		return errors.New("fps limit cannot be negative").
			WithTag("fps_limit", c.FPSLimit)
	}
	return nil
}

// WorldOptions returns the scene settings derived from c.
func (c Config) WorldOptions() world.Options {
	return world.Options{
		Width:       c.Width,
		Height:      c.Height,
		Seed:        c.Seed,
		ChunkSize:   c.ChunkSize,
		AspectRatio: float32(c.WindowWidth) / float32(c.WindowHeight),
	}
}
