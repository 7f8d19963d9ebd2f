// Package plot draws exploitability curves.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/lox/pokercfr/internal/fileutil"
	"github.com/lox/pokercfr/sdk/solver"
)

// ErrNoSamples is returned when there is nothing to draw.
var ErrNoSamples = errors.New("no exploitability samples")

// Options control the chart size and caption.
type Options struct {
	Width  int
	Height int
	Title  string
}

const margin = 60

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 500
	}
	if o.Title == "" {
		o.Title = "Exploitability"
	}
	return o
}

// Render draws exploitability against iterations as a line chart.
func Render(samples []solver.ExploitabilitySample, opts Options) (*gg.Context, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	opts = opts.withDefaults()
	w, h := float64(opts.Width), float64(opts.Height)

	maxIter := float64(samples[len(samples)-1].Iteration)
	maxValue := 0.0
	for _, s := range samples {
		maxValue = math.Max(maxValue, s.Exploitability)
	}
	if maxIter <= 0 {
		maxIter = 1
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	x := func(iter int) float64 { return margin + float64(iter)/maxIter*(w-2*margin) }
	y := func(v float64) float64 { return h - margin - v/maxValue*(h-2*margin) }

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Axes.
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1.5)
	dc.DrawLine(margin, h-margin, w-margin, h-margin)
	dc.DrawLine(margin, margin, margin, h-margin)
	dc.Stroke()

	dc.SetRGB(0.4, 0.4, 0.4)
	for i := 0; i <= 4; i++ {
		v := maxValue * float64(i) / 4
		dc.DrawStringAnchored(fmt.Sprintf("%.3f", v), margin-8, y(v), 1, 0.5)
	}
	dc.DrawStringAnchored("0", margin, h-margin+16, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%d", int(maxIter)), w-margin, h-margin+16, 0.5, 0.5)
	dc.DrawStringAnchored("iterations", w/2, h-margin/3, 0.5, 0.5)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(opts.Title, w/2, margin/2, 0.5, 0.5)

	// Curve.
	dc.SetRGB255(0x7D, 0x56, 0xF4)
	dc.SetLineWidth(2)
	dc.MoveTo(x(samples[0].Iteration), y(samples[0].Exploitability))
	for _, s := range samples[1:] {
		dc.LineTo(x(s.Iteration), y(s.Exploitability))
	}
	dc.Stroke()
	for _, s := range samples {
		dc.DrawCircle(x(s.Iteration), y(s.Exploitability), 3)
	}
	dc.Fill()

	return dc, nil
}

// WritePNG renders the chart and encodes it to w.
func WritePNG(w io.Writer, samples []solver.ExploitabilitySample, opts Options) error {
	dc, err := Render(samples, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders the chart to path atomically.
func SavePNG(path string, samples []solver.ExploitabilitySample, opts Options) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WritePNG(w, samples, opts)
	})
}
