package summary

import (
	"sort"

	lo "github.com/samber/lo"

	"linear-stats/domain/issue"
)

// Contribution is one assignee's ticket count in the contributor ranking.
type Contribution struct {
	Assignee string
	Count    int
}

// Summary is the aggregate view over a batch of per-ticket metrics. It is
// recomputed fresh for every report and never persisted.
type Summary struct {
	Count                 int
	TotalHours            float64
	AverageHours          float64
	MedianHours           float64
	MinHours              float64
	MaxHours              float64
	AverageLeadTimeHours  float64
	AverageCycleTimeHours float64
	Contributions         []Contribution
	Ranked                []issue.Metrics
}

// Aggregate reduces a batch of metrics into a Summary. The input must be
// non-empty; callers short-circuit the empty case with a "no data" message
// before getting here.
func Aggregate(metrics []issue.Metrics) Summary {
	total := lo.SumBy(metrics, func(m issue.Metrics) float64 { return m.DurationHours })

	sorted := make([]issue.Metrics, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DurationHours < sorted[j].DurationHours })

	ranked := make([]issue.Metrics, len(metrics))
	copy(ranked, metrics)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].DurationHours > ranked[j].DurationHours })

	return Summary{
		Count:        len(metrics),
		TotalHours:   total,
		AverageHours: total / float64(len(metrics)),
		// Upper-middle element for even counts, kept for parity with the
		// historical reports.
		MedianHours:           sorted[len(sorted)/2].DurationHours,
		MinHours:              sorted[0].DurationHours,
		MaxHours:              sorted[len(sorted)-1].DurationHours,
		AverageLeadTimeHours:  averagePositive(metrics, func(m issue.Metrics) float64 { return m.LeadTimeHours }),
		AverageCycleTimeHours: averagePositive(metrics, func(m issue.Metrics) float64 { return m.CycleTimeHours }),
		Contributions:         contributions(ranked),
		Ranked:                ranked,
	}
}

// averagePositive averages the picked values that are > 0. Zeros mean a data
// gap (missing created/started timestamp) and stay out of the denominator; if
// nothing qualifies the average is 0, not NaN.
func averagePositive(metrics []issue.Metrics, pick func(issue.Metrics) float64) float64 {
	times := lo.FilterMap(metrics, func(m issue.Metrics, _ int) (float64, bool) {
		h := pick(m)
		return h, h > 0
	})
	if len(times) == 0 {
		return 0
	}
	return lo.Sum(times) / float64(len(times))
}

// contributions counts tickets per assignee over the ranked sequence and
// orders descending by count. Ties keep first-appearance order in ranked.
func contributions(ranked []issue.Metrics) []Contribution {
	counts := map[string]int{}
	var order []string
	for _, m := range ranked {
		if _, seen := counts[m.Assignee]; !seen {
			order = append(order, m.Assignee)
		}
		counts[m.Assignee]++
	}

	res := make([]Contribution, 0, len(order))
	for _, a := range order {
		res = append(res, Contribution{Assignee: a, Count: counts[a]})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Count > res[j].Count })
	return res
}
