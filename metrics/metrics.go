package metrics

import "github.com/pthm-cable/lifesoup/life"

// Floors keep motion metrics above zero so patterns without movement still
// take part in roulette selection.
const (
	movingFloor      = 0.5
	totalMovingFloor = 1.0
)

// cyclePartLimit bounds the period search of each group in CyclePart.
const cyclePartLimit = 50

// Longest scores the number of steps simulated.
func Longest(s RunSummary) float64 {
	return float64(s.Iterations)
}

// LongestCycle scores the cycle length.
func LongestCycle(s RunSummary) float64 {
	return float64(s.CycleLength)
}

// Biggest scores the final live-cell count.
func Biggest(s RunSummary) float64 {
	return float64(s.Final.Len())
}

// MostGrowth scores final size relative to the origin.
func MostGrowth(s RunSummary) float64 {
	if s.Origin.Len() == 0 {
		return 0
	}
	return float64(s.Final.Len()) / float64(s.Origin.Len())
}

// MostShapes counts distance-1 components, duplicates included.
func MostShapes(s RunSummary) float64 {
	return float64(life.Split(s.Final, life.PartDistance).Total())
}

// MostParts counts distance-2 components, duplicates included.
func MostParts(s RunSummary) float64 {
	return float64(life.Split(s.Final, life.GroupDistance).Total())
}

// MostDiffShapes counts distinct distance-1 shapes with more than one cell.
func MostDiffShapes(s RunSummary) float64 {
	n := 0
	for _, t := range life.Split(s.Final, life.PartDistance) {
		if t.Shape.Len() > 1 {
			n++
		}
	}
	return float64(n)
}

// MostDiffParts counts distinct distance-1 signatures with more than one bin.
func MostDiffParts(s RunSummary) float64 {
	return float64(multiBin(life.Profile(s.Final, life.PartDistance)))
}

// MostDiffGroups counts distinct distance-2 signatures with more than one bin.
func MostDiffGroups(s RunSummary) float64 {
	return float64(multiBin(life.Profile(s.Final, life.GroupDistance)))
}

func multiBin(prints life.Fingerprints) int {
	n := 0
	for _, fp := range prints {
		if len(fp.Signature) > 1 {
			n++
		}
	}
	return n
}

// BiggestPart scores the largest distance-1 component.
func BiggestPart(s RunSummary) float64 {
	return float64(largest(life.Split(s.Final, life.PartDistance)))
}

// BiggestGroup scores the largest distance-2 component.
func BiggestGroup(s RunSummary) float64 {
	return float64(largest(life.Split(s.Final, life.GroupDistance)))
}

func largest(census life.Census) int {
	best := 0
	for _, t := range census {
		best = max(best, t.Shape.Len())
	}
	return best
}

// MostMovingParts counts groups that do not return in place within the cycle.
func MostMovingParts(s RunSummary) float64 {
	n := 0
	for _, t := range life.Split(s.Final, life.GroupDistance) {
		if !life.IsStill(t.Shape, s.Rule, s.CycleLength) {
			n += t.Count
		}
	}
	return max(float64(n), movingFloor)
}

// MostNonStill counts parts that change after a single step.
func MostNonStill(s RunSummary) float64 {
	n := 0
	for _, t := range life.Split(s.Final, life.PartDistance) {
		if !life.IsStill(t.Shape, s.Rule, 1) {
			n += t.Count
		}
	}
	return max(float64(n), movingFloor)
}

// BiggestNonStill scores the largest group that is not still within 3 steps.
func BiggestNonStill(s RunSummary) float64 {
	best := 0
	for _, t := range life.Split(s.Final, life.GroupDistance) {
		if !life.IsStill(t.Shape, s.Rule, 3) {
			best = max(best, t.Shape.Len())
		}
	}
	if best == 0 {
		return movingFloor
	}
	return float64(best)
}

// TotalMovingParts sums size² over moving groups.
func TotalMovingParts(s RunSummary) float64 {
	total := 0
	for _, t := range life.Split(s.Final, life.GroupDistance) {
		if !life.IsStill(t.Shape, s.Rule, s.CycleLength) {
			total += t.Shape.Len() * t.Shape.Len() * t.Count
		}
	}
	return max(float64(total), totalMovingFloor)
}

// WeightedParts scores every group: a still group is worth its number of
// parts, a moving group is worth MovingWeight.
func WeightedParts(s RunSummary) float64 {
	var total float64
	for _, t := range life.Split(s.Final, life.GroupDistance) {
		if life.IsStill(t.Shape, s.Rule, s.CycleLength) {
			total += float64(life.Split(t.Shape, life.PartDistance).Total() * t.Count)
		} else {
			total += s.MovingWeight * float64(t.Count)
		}
	}
	return total
}

// CyclePart scores the longest period found among the distinct groups.
func CyclePart(s RunSummary) float64 {
	best := 0
	for _, t := range life.Split(s.Final, life.GroupDistance) {
		best = max(best, life.Cycle(t.Shape, s.Rule, cyclePartLimit))
	}
	return float64(best)
}
