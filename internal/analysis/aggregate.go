package analysis

import (
	"math"
	"sort"

	"riskscope/internal/rules"
	"riskscope/internal/signal"
)

// evaluation is the raw outcome of running the full rule set once.
type evaluation struct {
	contributions []rules.Contribution
	knownWeight   int
	totalWeight   int
}

// evaluate runs every rule against the signals in registry order.
func evaluate(registry []rules.Rule, s signal.AccountSignals) evaluation {
	ev := evaluation{totalWeight: rules.TotalWeight(registry)}
	for _, r := range registry {
		if r.Known(s) {
			ev.knownWeight += r.Weight
		}
		if c := r.Evaluate(s); c != nil {
			ev.contributions = append(ev.contributions, *c)
		}
	}
	return ev
}

// score sums all contributions and clamps to [0, 100]. Negative contributions
// apply in full before clamping, so strong trust signals can cancel several
// risk signals at once.
func (ev evaluation) score() int {
	total := 0
	for _, c := range ev.contributions {
		total += c.ScoreDelta
	}
	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// confidence is the share of rule weight whose inputs were actually supplied,
// as a rounded percentage.
func (ev evaluation) confidence() int {
	if ev.totalWeight == 0 {
		return 0
	}
	return int(math.Round(float64(ev.knownWeight) * 100 / float64(ev.totalWeight)))
}

// reasons returns the fired contributions ordered by absolute score impact,
// largest first. Ties keep registry declaration order, so output is stable
// across runs.
func (ev evaluation) reasons() []Reason {
	ordered := make([]rules.Contribution, len(ev.contributions))
	copy(ordered, ev.contributions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return abs(ordered[i].ScoreDelta) > abs(ordered[j].ScoreDelta)
	})

	out := make([]Reason, 0, len(ordered))
	for _, c := range ordered {
		out = append(out, Reason{
			Category:   string(c.Category),
			ScoreDelta: c.ScoreDelta,
			Detail:     c.Reason,
		})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
