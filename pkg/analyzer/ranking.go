package analyzer

import "sort"

// Rank returns a copy of results sorted by ascending DocumentCount. Equal
// counts keep their input order.
func Rank(results []KeywordResult) []KeywordResult {
	ranked := make([]KeywordResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DocumentCount < ranked[j].DocumentCount
	})
	return ranked
}

// FilterBySaturation keeps results whose Saturation is at most max
func FilterBySaturation(results []KeywordResult, max float64) []KeywordResult {
	return filter(results, func(r KeywordResult) bool {
		return r.Saturation <= max
	})
}

// FilterByMinMonthlySearch keeps results with at least min monthly searches
func FilterByMinMonthlySearch(results []KeywordResult, min int) []KeywordResult {
	return filter(results, func(r KeywordResult) bool {
		return r.MonthlySearch >= min
	})
}

// Limit returns at most n results; n <= 0 returns all of them
func Limit(results []KeywordResult, n int) []KeywordResult {
	if n <= 0 || n >= len(results) {
		return results
	}
	return results[:n]
}

func filter(results []KeywordResult, keep func(KeywordResult) bool) []KeywordResult {
	out := make([]KeywordResult, 0, len(results))
	for _, r := range results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
