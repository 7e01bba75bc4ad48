package bench

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"mandelbench/codec"
	"mandelbench/colormap"
	"mandelbench/config"
	"mandelbench/kernel"
	"mandelbench/raster"

	"github.com/alecthomas/kong"
)

type Params struct {
	Width      int `help:"Raster width" default:"2048" group:"raster"`
	Height     int `help:"Raster height" default:"2048" group:"raster"`
	Iterations int `help:"Iteration cap" default:"2000" group:"raster"`
	GridX      int `help:"Grid width in blocks" default:"256" group:"launch"`
	GridY      int `help:"Grid height in blocks" default:"512" group:"launch"`
	BlockX     int `help:"Block width in threads" default:"16" group:"launch"`
	BlockY     int `help:"Block height in threads" default:"8" group:"launch"`
	Pixels     int `help:"Pixels computed by each thread" default:"1" group:"launch"`
	Threads    int `help:"Worker goroutines, 0 for GOMAXPROCS" default:"0" group:"launch"`
}

func (p Params) config() config.Config {
	cfg := config.Default()
	cfg.Width = p.Width
	cfg.Height = p.Height
	cfg.MaxIteration = p.Iterations
	cfg.Geometry = config.Geometry{
		GridX:  p.GridX,
		GridY:  p.GridY,
		BlockX: p.BlockX,
		BlockY: p.BlockY,
		Pixels: p.Pixels,
	}
	cfg.Threads = p.Threads
	return cfg
}

func checkVariants(names []string, cfg config.Config) error {
	if len(names) == 0 {
		return fmt.Errorf("no variant given")
	}
	for _, name := range names {
		if !slices.Contains(kernel.Names, name) {
			return fmt.Errorf("unknown variant %q, want one of %s", name, strings.Join(kernel.Names, ", "))
		}
		if name == "grid" && !cfg.Geometry.Covers(cfg.Width, cfg.Height) {
			return fmt.Errorf("launch geometry does not cover a %dx%d raster", cfg.Width, cfg.Height)
		}
	}
	return nil
}

type CLICmd struct {
	Params
	Variant   []string `help:"Kernels to benchmark one after another (serial, threads, grid)" default:"grid" sep:","`
	Repeat    int      `help:"Runs per variant" default:"10"`
	Image     string   `help:"Image path template taking the variant name and run index. Extension selects png, bmp or tiff" default:"./%s_%02d.png"`
	Report    string   `help:"Report file, one summary line is appended per variant" default:"./report.txt"`
	SaveEvery int      `help:"Save the raster every N runs, 0 disables saving" default:"1"`
	Reset     bool     `help:"Clear the raster before each run" default:"false"`
	Colormap  string   `help:"RIFF PAL file to use instead of the generated colormap" type:"existingfile"`
}

func (c *CLICmd) Config() config.Config {
	cfg := c.config()
	cfg.Repeat = c.Repeat
	cfg.ImageTemplate = c.Image
	cfg.ReportPath = c.Report
	cfg.SaveEvery = c.SaveEvery
	cfg.ResetRaster = c.Reset
	return cfg
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	cfg := c.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.SaveEvery > 0 {
		if _, err := codec.ForPath(cfg.ImageTemplate); err != nil {
			return fmt.Errorf("invalid image template %q: %w", cfg.ImageTemplate, err)
		}
	}
	return checkVariants(c.Variant, cfg)
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	cfg := c.Config()
	opts := []Option{WithLogger(logger)}

	if c.Colormap != "" {
		m, err := loadColormap(c.Colormap, cfg.MaxIteration)
		if err != nil {
			return err
		}
		opts = append(opts, WithColormap(m))
	}

	runner, err := NewRunner(cfg, opts...)
	if err != nil {
		return err
	}

	var errCount int
	for _, name := range c.Variant {
		k, err := kernel.New(name, cfg)
		if err != nil {
			return err
		}

		if _, err = runner.Run(k); err != nil {
			errCount++
		}
		if err = k.Close(); err != nil {
			logger.Error("could not release kernel", "variant", name, "error", err)
		}
	}

	logger.Info("stats", "variants", len(c.Variant), "errors", errCount)

	if errCount > 0 {
		return fmt.Errorf("could not report %d variants", errCount)
	}
	return nil
}

func loadColormap(path string, maxIteration int) (colormap.Colormap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open colormap %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close colormap", "name", path, "error", closeErr)
		}
	}()

	m, err := colormap.ReadRIFF(f, maxIteration)
	if err != nil {
		return nil, fmt.Errorf("could not load colormap %q: %w", path, err)
	}
	return m, nil
}

// RenderCmd renders a single frame without timing statistics.
type RenderCmd struct {
	Params
	Variant string `help:"Kernel used to render (serial, threads, grid)" default:"threads"`
	Output  string `help:"Image file. Extension selects png, bmp or tiff" default:"mandelbrot.png"`
}

func (c *RenderCmd) Validate(kctx *kong.Context) error {
	cfg := c.config()
	cfg.SaveEvery = 0
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := codec.ForPath(c.Output); err != nil {
		return fmt.Errorf("invalid output %q: %w", c.Output, err)
	}
	return checkVariants([]string{c.Variant}, cfg)
}

func (c *RenderCmd) Run(logger *slog.Logger) error {
	cfg := c.config()

	enc, err := codec.ForPath(c.Output)
	if err != nil {
		return err
	}

	k, err := kernel.New(c.Variant, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := k.Close(); closeErr != nil {
			logger.Error("could not release kernel", "variant", c.Variant, "error", closeErr)
		}
	}()

	r := raster.New(cfg.Width, cfg.Height)
	start := time.Now()
	k.Render(cfg, colormap.Build(cfg.MaxIteration), r)
	logger.Info("rendered", "variant", c.Variant, "label", k.Describe(cfg), "duration", time.Since(start))

	if err := codec.Save(c.Output, r, enc); err != nil {
		return fmt.Errorf("could not save %q: %w", c.Output, err)
	}
	logger.Info("saved", "file", c.Output)
	return nil
}
