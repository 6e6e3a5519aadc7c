package hmm

import "math"

// Gaussian is a single multivariate Gaussian emission with diagonal covariance.
type Gaussian struct {
	Mean     []float64 // [dim]
	Variance []float64 // [dim] diagonal covariance

	// Pre-computed values
	logNormConst float64
	invVariance  []float64
}

// Precompute recalculates the cached normalization constant and inverse variances.
// Must be called after updating Mean or Variance.
func (g *Gaussian) Precompute() {
	dim := len(g.Mean)
	sumLog := 0.0
	for _, v := range g.Variance {
		sumLog += math.Log(v)
	}
	g.logNormConst = float64(dim)/2.0*math.Log(2*math.Pi) + 0.5*sumLog
	if len(g.invVariance) != dim {
		g.invVariance = make([]float64, dim)
	}
	for i, v := range g.Variance {
		g.invVariance[i] = 1.0 / v
	}
}

// LogProb computes the log density of x under this Gaussian.
func (g *Gaussian) LogProb(x []float64) float64 {
	maha := 0.0
	for i, xi := range x {
		diff := xi - g.Mean[i]
		maha += diff * diff * g.invVariance[i]
	}
	return -0.5*maha - g.logNormConst
}

func newGaussian(mean, variance []float64) Gaussian {
	g := Gaussian{
		Mean:     append([]float64(nil), mean...),
		Variance: append([]float64(nil), variance...),
	}
	g.Precompute()
	return g
}
