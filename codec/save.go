package codec

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mandelbench/raster"
)

// Save encodes r and writes it to path. Nothing is written unless encoding
// succeeds, and the file only appears under its final name once fully synced.
func Save(path string, r *raster.Raster, c Codec) error {
	data, err := c.Encode(r.Pix, r.Width, r.Height)
	if err != nil {
		return err
	}

	return writeFile(path, data)
}

func writeFile(path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", path, err)
	}
	tmpName := outFile.Name()
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil {
				slog.Error("could not remove temporary file", "name", tmpName, "error", rmErr)
			}
		}
	}()

	if _, err = outFile.Write(data); err != nil {
		outFile.Close()
		return fmt.Errorf("could not write temporary destination %q: %w", path, err)
	}
	if err = outFile.Sync(); err != nil {
		outFile.Close()
		return fmt.Errorf("could not flush temporary destination %q: %w", path, err)
	}
	if err = outFile.Close(); err != nil {
		return fmt.Errorf("could not close temporary destination %q: %w", path, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("could not rename destination file %q: %w", path, err)
	}
	return nil
}

// Load reads and decodes an image file written by Save.
func Load(path string, c Codec) (*raster.Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read image %q: %w", path, err)
	}
	return c.Decode(data)
}
