package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Geometry describes how a launch is split into blocks of logical threads.
type Geometry struct {
	GridX  int
	GridY  int
	BlockX int
	BlockY int
	// Pixels is the number of consecutive pixels computed by one logical thread.
	Pixels int
}

// Threads returns the total number of logical threads of a launch.
func (g Geometry) Threads() int {
	return g.GridX * g.GridY * g.BlockX * g.BlockY
}

// Covers reports whether a launch reaches every pixel of a width x height
// raster. Each logical thread owns Pixels consecutive pixels of one row.
func (g Geometry) Covers(width, height int) bool {
	return g.GridX*g.BlockX*g.Pixels >= width && g.GridY*g.BlockY >= height
}

func (g Geometry) validate() error {
	switch {
	case g.GridX < 1 || g.GridY < 1:
		return fmt.Errorf("invalid grid size: %dx%d", g.GridX, g.GridY)
	case g.BlockX < 1 || g.BlockY < 1:
		return fmt.Errorf("invalid block size: %dx%d", g.BlockX, g.BlockY)
	case g.Pixels < 1:
		return fmt.Errorf("invalid pixels per thread: %d", g.Pixels)
	}
	return nil
}

// Config is the run configuration shared by every component. It is passed by
// value and never modified once validated.
type Config struct {
	Width        int
	Height       int
	MaxIteration int
	Geometry     Geometry
	// Threads is the worker count for the threaded kernel, 0 means GOMAXPROCS.
	Threads int
	Repeat  int

	// ImageTemplate takes the variant name and the 0-based run index.
	ImageTemplate string
	ReportPath    string
	// SaveEvery saves the raster after run i when i%SaveEvery == 0, 0 disables saving.
	SaveEvery   int
	ResetRaster bool
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Width:        2048,
		Height:       2048,
		MaxIteration: 2000,
		Geometry: Geometry{
			GridX:  256,
			GridY:  512,
			BlockX: 16,
			BlockY: 8,
			Pixels: 1,
		},
		Repeat:        10,
		ImageTemplate: "./%s_%02d.png",
		ReportPath:    "./report.txt",
		SaveEvery:     1,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("invalid raster size: %dx%d", c.Width, c.Height)
	case c.MaxIteration < 1:
		return fmt.Errorf("invalid iteration cap: %d", c.MaxIteration)
	case c.Repeat < 1:
		return fmt.Errorf("invalid repeat count: %d", c.Repeat)
	case c.Threads < 0:
		return fmt.Errorf("invalid thread count: %d", c.Threads)
	case c.SaveEvery < 0:
		return fmt.Errorf("invalid save frequency: %d", c.SaveEvery)
	case c.ReportPath == "":
		return fmt.Errorf("no report path given")
	}

	if err := c.Geometry.validate(); err != nil {
		return err
	}

	if c.SaveEvery > 0 {
		if strings.Count(c.ImageTemplate, "%") != 2 {
			return fmt.Errorf("image template %q must contain a name and a run verb", c.ImageTemplate)
		}
		if filepath.Ext(c.ImageTemplate) == "" {
			return fmt.Errorf("image template %q has no file extension", c.ImageTemplate)
		}
	}

	return nil
}

// Pixels returns the number of pixels of the raster.
func (c Config) Pixels() int {
	return c.Width * c.Height
}
