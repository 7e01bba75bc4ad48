package colormap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/image/riff"
)

/*
RIFF PAL layout:

	"RIFF" size "PAL "
	"data" size palVersion(2) palNumEntries(2) {peRed peGreen peBlue peFlags}...
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const palVersion = 3

// WriteRIFF writes the colormap as a RIFF PAL document and returns the number
// of colors written.
func (m Colormap) WriteRIFF(w io.Writer) (int64, error) {
	if len(m) > math.MaxUint16 {
		return 0, fmt.Errorf("colormap too large for a PAL file: %d entries", len(m))
	}

	dataSize := 4 + len(m)*4
	docSize := 4 + 4 + 4 + dataSize // form type + chunk id + chunk size + data

	if err := writeBytes(w, riffType[:]); err != nil {
		return 0, fmt.Errorf("could not write RIFF magic: %w", err)
	}
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(docSize))); err != nil {
		return 0, fmt.Errorf("could not write document size: %w", err)
	}
	if err := writeBytes(w, palType[:]); err != nil {
		return 0, fmt.Errorf("could not write content type: %w", err)
	}
	if err := writeBytes(w, dataType[:]); err != nil {
		return 0, fmt.Errorf("could not write chunk type: %w", err)
	}
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(dataSize))); err != nil {
		return 0, fmt.Errorf("could not write chunk size: %w", err)
	}
	if err := writeBytes(w, binary.BigEndian.AppendUint16(nil, palVersion)); err != nil {
		return 0, fmt.Errorf("could not write palette version: %w", err)
	}
	if err := writeBytes(w, binary.LittleEndian.AppendUint16(nil, uint16(len(m)))); err != nil {
		return 0, fmt.Errorf("could not write number of colors: %w", err)
	}

	buf := make([]byte, 0, len(m)*4)
	for _, c := range m {
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}
	if err := writeBytes(w, buf); err != nil {
		return 0, fmt.Errorf("could not write colors: %w", err)
	}

	return int64(len(m)), nil
}

// ReadRIFF loads a colormap from a RIFF PAL document. The table must hold
// exactly maxIteration+1 colors and end with black.
func ReadRIFF(r io.Reader, maxIteration int) (Colormap, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	for {
		id, _, data, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("no palette chunk found")
			}
			return nil, fmt.Errorf("could not read chunk: %w", err)
		}
		if id != dataType {
			continue
		}

		m, err := readColors(data)
		if err != nil {
			return nil, err
		}
		if len(m) != maxIteration+1 {
			return nil, fmt.Errorf("palette has %d colors, need %d", len(m), maxIteration+1)
		}
		if m[maxIteration] != (RGB{}) {
			return nil, fmt.Errorf("last palette color must be black, got %v", m[maxIteration])
		}
		return m, nil
	}
}

func readColors(r io.Reader) (Colormap, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}

	if ver := binary.BigEndian.Uint16(buf[:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %d", ver)
	}

	count := int(binary.LittleEndian.Uint16(buf[2:]))
	raw := make([]byte, count*4)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("could not read %d colors: %w", count, err)
	}

	m := make(Colormap, count)
	for i := range m {
		m[i] = RGB{R: raw[i*4], G: raw[i*4+1], B: raw[i*4+2]}
	}
	return m, nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
