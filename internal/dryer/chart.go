package dryer

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart renders the moisture series as an ASCII chart for the terminal.
func Chart(res *Result, width, height int) string {
	if len(res.PetMoisture) < 2 {
		return ""
	}
	return asciigraph.Plot(res.PetMoisture,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("resin moisture % vs minutes"),
	)
}

// WriteCSV writes the minute-by-minute series.
func WriteCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"minute", "moisture_pct", "cartridge_a_pct", "cartridge_b_pct"}); err != nil {
		return err
	}
	for i := range res.Times {
		row := []string{
			strconv.FormatFloat(res.Times[i], 'f', 0, 64),
			strconv.FormatFloat(res.PetMoisture[i], 'f', 4, 64),
			strconv.FormatFloat(res.CartridgeA[i], 'f', 4, 64),
			strconv.FormatFloat(res.CartridgeB[i], 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// SavePNG plots moisture and both cartridge loads over process time.
func SavePNG(path string, res *Result) error {
	p := plot.New()
	p.Title.Text = "drying cycle"
	p.X.Label.Text = "minutes"
	p.Y.Label.Text = "percent"
	p.Legend.Top = true

	lines := []struct {
		name   string
		values []float64
		dashes []vg.Length
	}{
		{"resin moisture", res.PetMoisture, nil},
		{"cartridge A load", res.CartridgeA, []vg.Length{vg.Points(4), vg.Points(2)}},
		{"cartridge B load", res.CartridgeB, []vg.Length{vg.Points(1), vg.Points(2)}},
	}
	for _, l := range lines {
		pts := make(plotter.XYs, len(l.values))
		for i, v := range l.values {
			pts[i].X = res.Times[i]
			pts[i].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Dashes = l.dashes
		p.Add(line)
		p.Legend.Add(l.name, line)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(8*vg.Inch, 6*vg.Inch),
		vgimg.UseDPI(300),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	_, err = png.WriteTo(f)
	return err
}
