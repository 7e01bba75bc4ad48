package colormap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Iterations int    `help:"Iteration cap" default:"2000"`
	Output     string `help:"Destination RIFF PAL file" default:"colormap.pal"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Iterations < 1:
		return fmt.Errorf("invalid iteration cap: %d", c.Iterations)
	case c.Output == "":
		return fmt.Errorf("no output file given")
	}
	return nil
}

func (c *CLICmd) Run(logger *slog.Logger) (err error) {
	m := Build(c.Iterations)

	outFile, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("could not create colormap file %q: %w", c.Output, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close colormap file %q: %w", c.Output, closeErr)
		}
	}()

	n, err := m.WriteRIFF(outFile)
	if err != nil {
		return fmt.Errorf("could not write colormap file %q: %w", c.Output, err)
	}

	logger.Info("colormap written", "file", c.Output, "colors", n)
	return nil
}
