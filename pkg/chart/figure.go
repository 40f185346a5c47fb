// Package chart renders histograms, box plots and scatter matrices of
// frame.Table columns with gonum/plot.
//
// Every chart function returns a Figure: a grid of plots drawn onto one
// image when written.
//
//	fig, err := chart.Histogram(t, "age", chart.HistOptions{Bins: 20})
//	if err != nil {
//	    return err
//	}
//	err = fig.Save("age.png")
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default figure size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Figure is a rows x cols grid of plots. Cells may be nil.
type Figure struct {
	Plots  [][]*plot.Plot
	Width  vg.Length
	Height vg.Length
}

func newFigure(rows, cols int) *Figure {
	f := &Figure{
		Plots:  make([][]*plot.Plot, rows),
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	for i := range f.Plots {
		f.Plots[i] = make([]*plot.Plot, cols)
	}
	return f
}

// Dims returns the number of grid rows and columns.
func (f *Figure) Dims() (rows, cols int) {
	if len(f.Plots) == 0 {
		return 0, 0
	}
	return len(f.Plots), len(f.Plots[0])
}

// At returns the plot in grid cell (row, col).
func (f *Figure) At(row, col int) *plot.Plot {
	return f.Plots[row][col]
}

// SetSize sets the output size in inches. Non-positive values keep the
// current size.
func (f *Figure) SetSize(widthIn, heightIn float64) {
	if widthIn > 0 {
		f.Width = vg.Length(widthIn) * vg.Inch
	}
	if heightIn > 0 {
		f.Height = vg.Length(heightIn) * vg.Inch
	}
}

// WriteTo writes the figure to w as PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	return f.Encode(w, "png")
}

// Encode writes the figure to w in the given format, "png" or "jpeg".
func (f *Figure) Encode(w io.Writer, format string) (int64, error) {
	img := f.render()
	switch strings.ToLower(format) {
	case "png":
		return vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: img}.WriteTo(w)
	}
	return 0, fmt.Errorf("unsupported image format %q", format)
}

// Save writes the figure to path. The format follows the extension:
// .jpg and .jpeg give JPEG, anything else PNG.
func (f *Figure) Save(path string) (err error) {
	format := "png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		format = "jpeg"
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = f.Encode(out, format)
	return err
}

func (f *Figure) render() *vgimg.Canvas {
	img := vgimg.New(f.Width, f.Height)
	dc := draw.New(img)
	rows, cols := f.Dims()
	if rows == 1 && cols == 1 {
		if p := f.Plots[0][0]; p != nil {
			p.Draw(dc)
		}
		return img
	}

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
		PadX:      vg.Points(6),
		PadY:      vg.Points(6),
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if p := f.Plots[i][j]; p != nil {
				p.Draw(tiles.At(dc, j, i))
			}
		}
	}
	return img
}
