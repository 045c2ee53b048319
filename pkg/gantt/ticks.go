package gantt

import "math"

// targetTicks is how many auto ticks we aim for on the time axis.
const targetTicks = 8

// AutoTicks returns evenly spaced "nice" tick positions covering [0, max].
func AutoTicks(max float64) []float64 {
	if max <= 0 {
		return []float64{0}
	}
	step := niceStep(max / targetTicks)
	n := int(math.Floor(max/step + 1e-9))
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		// Multiply rather than accumulate to avoid drift.
		ticks = append(ticks, roundTo(float64(i)*step, step))
	}
	return ticks
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 2.5:
		return 2.5 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

func roundTo(v, step float64) float64 {
	if step == math.Trunc(step) {
		return math.Round(v)
	}
	digits := math.Max(math.Ceil(-math.Log10(step)), 0) + 1
	p := math.Pow(10, digits)
	return math.Round(v*p) / p
}
