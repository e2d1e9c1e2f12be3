// Package stats holds the running aggregates reported after batch
// solves: per-deal numeric series (moves, nodes, elapsed) and the
// overall solve rate.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates one numeric series without storing it, using
// Welford's algorithm for the mean and variance.
type Statistic struct {
	count int
	last  float64
	sum   float64
	min   float64
	max   float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.sum += val
	s.count++
	if s.count == 1 {
		s.min = val
		s.max = val
		s.oldM = val
		s.newM = val
		s.oldS = 0
		return
	}
	if val < s.min {
		s.min = val
	}
	if val > s.max {
		s.max = val
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.count)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
}

// The read-only accessors take value receivers so they work on the
// copies handed out by aggregate getters, not just on addressable
// values.
func (s Statistic) Count() int    { return s.count }
func (s Statistic) Last() float64 { return s.last }
func (s Statistic) Sum() float64  { return s.sum }
func (s Statistic) Min() float64  { return s.min }
func (s Statistic) Max() float64  { return s.max }

func (s Statistic) Mean() float64 {
	if s.count > 0 {
		return s.newM
	}
	return 0.0
}

func (s Statistic) Variance() float64 {
	if s.count <= 1 {
		return 0.0
	}
	return s.newS / float64(s.count-1)
}

func (s Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s Statistic) StandardError() float64 {
	if s.count == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.count))
}

// ConfidenceInterval returns the mean's interval at the given
// confidence level, expressed in percent (e.g. 95).
func (s Statistic) ConfidenceInterval(confidence float64) (lo, hi float64) {
	m := s.Mean()
	half := ZVal(confidence) * s.StandardError()
	return m - half, m + half
}

// Proportion tracks a success rate over trials, e.g. solved deals out
// of deals attempted.
type Proportion struct {
	successes int
	trials    int
}

func (p *Proportion) Record(success bool) {
	p.trials++
	if success {
		p.successes++
	}
}

func (p Proportion) Successes() int { return p.successes }
func (p Proportion) Trials() int    { return p.trials }

func (p Proportion) Rate() float64 {
	if p.trials == 0 {
		return 0.0
	}
	return float64(p.successes) / float64(p.trials)
}

// ConfidenceInterval returns the normal-approximation interval for the
// rate, clamped to [0, 1]. Confidence is in percent.
func (p Proportion) ConfidenceInterval(confidence float64) (lo, hi float64) {
	if p.trials == 0 {
		return 0.0, 0.0
	}
	r := p.Rate()
	half := ZVal(confidence) * math.Sqrt(r*(1-r)/float64(p.trials))
	lo, hi = r-half, r+half
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	return lo, hi
}
