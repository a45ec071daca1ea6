package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Default image size.
const (
	DefaultImageWidth  = 24 * vg.Centimeter
	DefaultImageHeight = 8 * vg.Centimeter
)

// WritePlot encodes p in format (png, svg, pdf, ...) to output.
func WritePlot(
	p *plot.Plot,
	width, height vg.Length,
	output io.Writer,
	format string,
) error {
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}

	_, err = w.WriteTo(output)

	return err
}

func combineErrors(errs ...error) (err error) {
	for _, e := range errs {
		switch {
		case e == nil:
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}

	return err
}

// WriteClosePlot writes p and closes output, reporting both failures.
func WriteClosePlot(
	p *plot.Plot,
	width, height vg.Length,
	output io.WriteCloser,
	format string,
) (err error) {
	defer func() {
		err = combineErrors(err, output.Close())
	}()

	return WritePlot(p, width, height, output, format)
}

// SavePlot writes p to path. The format comes from the file extension.
func SavePlot(p *plot.Plot, width, height vg.Length, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("render: %s has no image extension", path)
	}

	output, err := os.Create(path)
	if err != nil {
		return err
	}

	return WriteClosePlot(p, width, height, output, format)
}

// ParseHexColor reads "#rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("render: bad color %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: bad color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

func mustHexColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}

	return c
}
