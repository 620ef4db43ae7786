// Package plot renders a salary series as a histogram with a density curve.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/Sternrassler/vacancy-report/pkg/logging"
	"github.com/rs/zerolog"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultBins   = 60
	DefaultPath   = "salary_histogram.png"
	DefaultTitle  = "Salary distribution"
	DefaultXLabel = "Average salary (RUR/month)"

	// densitySamples is the resolution of the density curve.
	densitySamples = 400
)

// ErrEmptySeries is returned when there is nothing to plot.
var ErrEmptySeries = errors.New("empty salary series")

// HistogramSink draws a fixed-bin histogram with a Gaussian density curve
// scaled to counts and writes it as an image file.
type HistogramSink struct {
	Path   string
	Bins   int
	Width  vg.Length
	Height vg.Length
	Title  string
	XLabel string

	logger zerolog.Logger
}

// NewHistogramSink returns a sink with default geometry writing to path.
func NewHistogramSink(path string) *HistogramSink {
	if path == "" {
		path = DefaultPath
	}
	return &HistogramSink{
		Path:   path,
		Bins:   DefaultBins,
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
		Title:  DefaultTitle,
		XLabel: DefaultXLabel,
		logger: logging.NewLogger("plot"),
	}
}

// Render writes the plot to s.Path. The image format follows the file
// extension.
func (s *HistogramSink) Render(series []float64) error {
	p, err := s.Plot(series)
	if err != nil {
		return err
	}
	if err := p.Save(s.Width, s.Height, s.Path); err != nil {
		return fmt.Errorf("save plot %s: %w", s.Path, err)
	}

	s.logger.Info().Str("path", s.Path).Int("points", len(series)).Int("bins", s.bins()).Msg("Plot written")
	return nil
}

// WriteTo encodes the plot in format ("png", "svg", "pdf", ...) to w.
func (s *HistogramSink) WriteTo(w io.Writer, series []float64, format string) (int64, error) {
	p, err := s.Plot(series)
	if err != nil {
		return 0, err
	}
	wt, err := p.WriterTo(s.Width, s.Height, format)
	if err != nil {
		return 0, fmt.Errorf("encode plot as %s: %w", format, err)
	}
	return wt.WriteTo(w)
}

// Plot builds the plot without writing it.
func (s *HistogramSink) Plot(series []float64) (*gonumplot.Plot, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	p := gonumplot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	hist, err := plotter.NewHist(plotter.Values(series), s.bins())
	if err != nil {
		return nil, fmt.Errorf("build histogram: %w", err)
	}
	hist.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 160}
	p.Add(hist)

	if bw := ScottBandwidth(series); bw > 0 {
		density := GaussianKDE(series, bw)
		scale := float64(len(series)) * hist.Width

		curve := plotter.NewFunction(func(x float64) float64 {
			return density(x) * scale
		})
		curve.XMin = hist.Bins[0].Min - 3*bw
		curve.XMax = hist.Bins[len(hist.Bins)-1].Max + 3*bw
		curve.Samples = densitySamples
		curve.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
		curve.Width = vg.Points(2)
		p.Add(curve)
		p.Legend.Add("density", curve)
	} else {
		s.logger.Debug().Int("points", len(series)).Msg("Density curve skipped for degenerate series")
	}

	return p, nil
}

func (s *HistogramSink) bins() int {
	if s.Bins <= 0 {
		return DefaultBins
	}
	return s.Bins
}
