package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed critical z-value for a confidence level
// given in percent (0 to 100).
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidence / 100)) / 2
	return dist.Quantile(area)
}
