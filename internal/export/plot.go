// Package export renders saved runs to PNG or SVG plots.
package export

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/san-kum/shakerbed/internal/bed"
	"github.com/san-kum/shakerbed/internal/tilt"
)

const (
	plotWidthIn  = 8.0
	plotHeightIn = 6.0
	pngDPI       = 300
)

var (
	ErrNoSeries = errors.New("export: nothing to plot")
	ErrFormat   = errors.New("export: unsupported format, want .png or .svg")
)

// SaveSeries plots metric time-series lines (agitation and spread) to
// path. The format follows the file extension.
func SaveSeries(path, title string, times, agitation, spread []float64) error {
	if len(times) == 0 {
		return ErrNoSeries
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "value"
	p.Legend.Top = true
	style(p)

	agit, err := plotter.NewLine(xys(times, agitation))
	if err != nil {
		return err
	}
	agit.LineStyle.Width = vg.Points(1.5)

	spr, err := plotter.NewLine(xys(times, spread))
	if err != nil {
		return err
	}
	spr.LineStyle.Width = vg.Points(1.5)
	spr.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(agit, spr)
	p.Legend.Add("agitation", agit)
	p.Legend.Add("spread", spr)

	return save(p, path)
}

// SaveScatter plots the final pellet positions inside the bed rim.
func SaveScatter(path, title string, positions []tilt.Vec2) error {
	if len(positions) == 0 {
		return ErrNoSeries
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	style(p)

	rim, err := plotter.NewLine(rimCircle())
	if err != nil {
		return err
	}
	rim.LineStyle.Width = vg.Points(1)

	pts := make(plotter.XYs, len(positions))
	for i, pos := range positions {
		pts[i].X = pos.X
		pts[i].Y = pos.Y
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(rim, scatter)

	// keep the bed round on screen
	p.X.Min, p.X.Max = -bed.Radius*1.1, bed.Radius*1.1
	p.Y.Min, p.Y.Max = -bed.Radius*1.1, bed.Radius*1.1

	return save(p, path)
}

func rimCircle() plotter.XYs {
	const segments = 128
	pts := make(plotter.XYs, segments+1)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		pts[i].X = bed.Radius * math.Cos(a)
		pts[i].Y = bed.Radius * math.Sin(a)
	}
	return pts
}

func xys(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func style(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.TextStyle.Font.Size = vg.Points(11)
	p.Y.Label.TextStyle.Font.Size = vg.Points(11)
	p.X.Padding = vg.Points(5)
	p.Y.Padding = vg.Points(5)
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	w := vg.Length(plotWidthIn) * vg.Inch
	h := vg.Length(plotHeightIn) * vg.Inch

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(pngDPI))
		p.Draw(draw.New(c))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		png := vgimg.PngCanvas{Canvas: c}
		if _, err := png.WriteTo(f); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	case ".svg":
		c := vgsvg.New(w, h)
		p.Draw(draw.New(c))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := c.WriteTo(f); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrFormat, path)
}
