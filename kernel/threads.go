package kernel

import (
	"fmt"

	"mandelbench/colormap"
	"mandelbench/config"
	"mandelbench/parallel"
	"mandelbench/raster"
)

// Threads splits the raster into one band of rows per worker.
type Threads struct {
	pool *parallel.Pool
}

func NewThreads(workers int) *Threads {
	return &Threads{pool: parallel.Start(workers)}
}

func (k *Threads) Name() string { return "threads" }

func (k *Threads) Describe(cfg config.Config) string {
	return fmt.Sprintf("%s threads=%d", dimensions(cfg), k.pool.Size())
}

func (k *Threads) Render(cfg config.Config, cmap colormap.Colormap, r *raster.Raster) {
	n := k.pool.Size()
	for band := range n {
		from, to := band*cfg.Height/n, (band+1)*cfg.Height/n
		k.pool.Do(func() {
			renderRows(cfg, cmap, r, from, to)
		})
	}
	k.pool.Wait()
}

func (k *Threads) Close() error {
	k.pool.Close()
	return nil
}

// Grid mirrors an accelerator launch: the raster is covered by a grid of
// blocks of logical threads and every block is one pool task.
type Grid struct {
	pool *parallel.Pool
}

func NewGrid(workers int) *Grid {
	return &Grid{pool: parallel.Start(workers)}
}

func (k *Grid) Name() string { return "grid" }

func (k *Grid) Describe(cfg config.Config) string {
	g := cfg.Geometry
	return fmt.Sprintf("%s grid size=%dx%d block size=%dx%d pixels per kernel=%d -- workers=%d",
		dimensions(cfg), g.GridX, g.GridY, g.BlockX, g.BlockY, g.Pixels, k.pool.Size())
}

func (k *Grid) Render(cfg config.Config, cmap colormap.Colormap, r *raster.Raster) {
	g := cfg.Geometry
	for by := range g.GridY {
		for bx := range g.GridX {
			k.pool.Do(func() {
				renderBlock(cfg, cmap, r, bx, by)
			})
		}
	}
	k.pool.Wait()
}

func renderBlock(cfg config.Config, cmap colormap.Colormap, r *raster.Raster, bx, by int) {
	g := cfg.Geometry
	for ty := range g.BlockY {
		y := by*g.BlockY + ty
		if y >= cfg.Height {
			return
		}
		for tx := range g.BlockX {
			x0 := (bx*g.BlockX + tx) * g.Pixels
			for x := x0; x < x0+g.Pixels && x < cfg.Width; x++ {
				renderPixel(cfg, cmap, r, x, y)
			}
		}
	}
}

func (k *Grid) Close() error {
	k.pool.Close()
	return nil
}
