package plot

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ScottBandwidth returns sd * n^(-1/5) using the sample standard deviation.
// It is zero for fewer than two points or a constant series.
func ScottBandwidth(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	sd := stat.StdDev(series, nil)
	if math.IsNaN(sd) || sd == 0 {
		return 0
	}
	return sd * math.Pow(float64(len(series)), -0.2)
}

// GaussianKDE returns the kernel density estimate of series with bandwidth
// bw. The result integrates to one.
func GaussianKDE(series []float64, bw float64) func(float64) float64 {
	norm := 1 / (float64(len(series)) * bw * math.Sqrt(2*math.Pi))
	return func(x float64) float64 {
		var sum float64
		for _, xi := range series {
			u := (x - xi) / bw
			sum += math.Exp(-0.5 * u * u)
		}
		return sum * norm
	}
}
