package ml

import (
	"sort"
)

const minNewtonDenominator = 1e-150

// stump is a depth-1 regression tree. A negative feature means the node did not split.
type stump struct {
	Feature     int
	Threshold   float64
	Left        float64
	Right       float64
	Improvement float64
}

func (s stump) value(features []float64) float64 {
	if s.Feature < 0 || features[s.Feature] <= s.Threshold {
		return s.Left
	}
	return s.Right
}

type splitCandidate struct {
	feature     int
	threshold   float64
	improvement float64
	found       bool
}

// fitStump picks the split with the largest Friedman MSE improvement on the
// residuals. Ties keep the lowest feature index and then the lowest threshold.
func fitStump(features [][]float64, residuals []float64, probabilities []float64) stump {
	best := splitCandidate{}
	featureCount := len(features[0])
	order := make([]int, len(features))

	for feature := 0; feature < featureCount; feature++ {
		for index := range order {
			order[index] = index
		}
		sort.SliceStable(order, func(i, j int) bool {
			return features[order[i]][feature] < features[order[j]][feature]
		})

		totalSum := 0.0
		for _, residual := range residuals {
			totalSum += residual
		}
		total := float64(len(order))

		leftSum := 0.0
		for position := 0; position < len(order)-1; position++ {
			leftSum += residuals[order[position]]
			current := features[order[position]][feature]
			next := features[order[position+1]][feature]
			if current == next {
				continue
			}

			leftCount := float64(position + 1)
			rightCount := total - leftCount
			diff := leftSum/leftCount - (totalSum-leftSum)/rightCount
			improvement := leftCount * rightCount / total * diff * diff
			if !best.found || improvement > best.improvement {
				best = splitCandidate{
					feature:     feature,
					threshold:   midpoint(current, next),
					improvement: improvement,
					found:       true,
				}
			}
		}
	}

	if !best.found {
		leaf := newtonLeaf(residuals, probabilities, nil)
		return stump{Feature: -1, Left: leaf, Right: leaf}
	}

	leftMembers := make([]bool, len(features))
	for index, row := range features {
		leftMembers[index] = row[best.feature] <= best.threshold
	}
	return stump{
		Feature:     best.feature,
		Threshold:   best.threshold,
		Left:        newtonLeaf(residuals, probabilities, func(index int) bool { return leftMembers[index] }),
		Right:       newtonLeaf(residuals, probabilities, func(index int) bool { return !leftMembers[index] }),
		Improvement: best.improvement,
	}
}

func midpoint(lower float64, upper float64) float64 {
	threshold := lower + (upper-lower)/2
	if threshold >= upper {
		return lower
	}
	return threshold
}

// newtonLeaf is the one-step Newton update for binomial deviance over the leaf's members.
func newtonLeaf(residuals []float64, probabilities []float64, member func(int) bool) float64 {
	numerator := 0.0
	denominator := 0.0
	for index, residual := range residuals {
		if member != nil && !member(index) {
			continue
		}
		numerator += residual
		denominator += probabilities[index] * (1 - probabilities[index])
	}
	if denominator < minNewtonDenominator {
		return 0
	}
	return numerator / denominator
}
