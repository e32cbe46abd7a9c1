package images

import (
	"bytes"
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/soocke/vision-overlay-go/domain/motion"
)

// pngDPI is the resolution used by the plot PNG backend.
const pngDPI = 96

// RenderMotionChart plots velocity and acceleration against elapsed time and
// returns the chart as PNG bytes of roughly w x h pixels.
func RenderMotionChart(samples []motion.Sample, w, h int) ([]byte, error) {
	if w < 1 || h < 1 {
		return nil, errors.New("invalid chart size")
	}
	p := plot.New()
	p.Title.Text = "Motion"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "units/s"
	p.Legend.Top = true

	if len(samples) > 0 {
		vel := make(plotter.XYs, len(samples))
		acc := make(plotter.XYs, len(samples))
		for i, s := range samples {
			t := s.Elapsed.Seconds()
			vel[i].X, vel[i].Y = t, s.Velocity
			acc[i].X, acc[i].Y = t, s.Acceleration
		}
		vl, err := plotter.NewLine(vel)
		if err != nil {
			return nil, err
		}
		vl.LineStyle.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
		vl.LineStyle.Width = vg.Points(1.5)
		al, err := plotter.NewLine(acc)
		if err != nil {
			return nil, err
		}
		al.LineStyle.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
		al.LineStyle.Width = vg.Points(1)
		p.Add(vl, al)
		p.Legend.Add("velocity", vl)
		p.Legend.Add("acceleration", al)
	}

	wt, err := p.WriterTo(vg.Length(w)*vg.Inch/pngDPI, vg.Length(h)*vg.Inch/pngDPI, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
