package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// flatMatchPercent is reported when every candidate scores the same. 80 avoids
// both a divide-by-zero and misleading 0% or 100% badges for an equivalent set.
const flatMatchPercent = 80

// normalizeScores rescales raw scores to match percentages with min-max
// normalization over the current candidate set.
func normalizeScores(raw []float64) []int {
	if len(raw) == 0 {
		return nil
	}
	min, max := floats.Min(raw), floats.Max(raw)
	out := make([]int, len(raw))
	if max-min < 1e-9 {
		for i := range out {
			out[i] = flatMatchPercent
		}
		return out
	}
	for i, r := range raw {
		out[i] = int(math.Round(100 * (r - min) / (max - min)))
	}
	return out
}
