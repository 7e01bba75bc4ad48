// Package kernel computes escape iteration counts and colors a raster with
// them. Every Render call is synchronous: it returns once each pixel is set.
package kernel

import (
	"fmt"

	"mandelbench/colormap"
	"mandelbench/config"
	"mandelbench/raster"
)

// Region of the complex plane mapped onto the raster.
const (
	minRe = -2.0
	maxRe = 1.0
	minIm = -1.5
	maxIm = 1.5
)

type Kernel interface {
	Name() string
	// Describe labels a run with the settings that affect its timing.
	Describe(cfg config.Config) string
	Render(cfg config.Config, cmap colormap.Colormap, r *raster.Raster)
	Close() error
}

// Names lists the available kernels in the order they are benchmarked.
var Names = []string{"serial", "threads", "grid"}

func New(name string, cfg config.Config) (Kernel, error) {
	switch name {
	case "serial":
		return Serial{}, nil
	case "threads":
		return NewThreads(cfg.Threads), nil
	case "grid":
		if !cfg.Geometry.Covers(cfg.Width, cfg.Height) {
			g := cfg.Geometry
			return nil, fmt.Errorf("grid %dx%d of %dx%d blocks with %d pixels per thread does not cover %dx%d",
				g.GridX, g.GridY, g.BlockX, g.BlockY, g.Pixels, cfg.Width, cfg.Height)
		}
		return NewGrid(cfg.Threads), nil
	}
	return nil, fmt.Errorf("unknown kernel %q", name)
}

// Escape returns the number of iterations of z = z*z + c before |z| exceeds
// 2, or maxIter when the orbit stays bounded.
func Escape(cr, ci float64, maxIter int) int {
	var zr, zi float64
	n := 0
	for n < maxIter && zr*zr+zi*zi <= 4 {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		n++
	}
	return n
}

func renderPixel(cfg config.Config, cmap colormap.Colormap, r *raster.Raster, x, y int) {
	cr := minRe + (maxRe-minRe)*float64(x)/float64(cfg.Width)
	ci := minIm + (maxIm-minIm)*float64(y)/float64(cfg.Height)
	raster.SetPixel(r.Pix, cfg.Width, x, y, cmap.At(Escape(cr, ci, cfg.MaxIteration)))
}

func renderRows(cfg config.Config, cmap colormap.Colormap, r *raster.Raster, from, to int) {
	for y := from; y < to; y++ {
		for x := range cfg.Width {
			renderPixel(cfg, cmap, r, x, y)
		}
	}
}

func dimensions(cfg config.Config) string {
	return fmt.Sprintf("width=%d height=%d iterations=%d", cfg.Width, cfg.Height, cfg.MaxIteration)
}

// Serial renders every pixel on the calling goroutine.
type Serial struct{}

func (Serial) Name() string { return "serial" }

func (Serial) Describe(cfg config.Config) string {
	return dimensions(cfg)
}

func (Serial) Render(cfg config.Config, cmap colormap.Colormap, r *raster.Raster) {
	renderRows(cfg, cmap, r, 0, cfg.Height)
}

func (Serial) Close() error { return nil }
