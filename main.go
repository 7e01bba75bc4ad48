package main

import (
	"log/slog"
	"os"

	"mandelbench/bench"
	"mandelbench/colormap"

	"github.com/alecthomas/kong"
)

type cli struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`

	Bench    bench.CLICmd    `cmd:"" help:"Benchmark kernels and append their statistics to the report"`
	Render   bench.RenderCmd `cmd:"" help:"Render a single frame to an image file"`
	Colormap colormap.CLICmd `cmd:"" help:"Export the colormap as a RIFF PAL file"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("mandelbench"),
		kong.Description("Render the Mandelbrot set and benchmark the kernels computing it."),
		kong.UsageOnError(),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Debug("running", "command", kctx.Command())
	kctx.FatalIfErrorf(kctx.Run(logger))
}
