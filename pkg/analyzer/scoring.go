package analyzer

import "strconv"

// Score builds the result for one keyword. Negative counts are treated as 0.
func Score(keyword string, monthlySearch, documentCount int) KeywordResult {
	if monthlySearch < 0 {
		monthlySearch = 0
	}
	if documentCount < 0 {
		documentCount = 0
	}

	return KeywordResult{
		Keyword:       keyword,
		MonthlySearch: monthlySearch,
		DocumentCount: documentCount,
		Saturation:    Saturation(monthlySearch, documentCount),
		Tier:          TierFor(documentCount),
	}
}

// Saturation is documentCount / monthlySearch rounded to two decimals, or 0
// when there is no search volume. Rounding goes through the shortest decimal
// form of the exact quotient, half to even, so 123/200 gives 0.61 and 1/8
// gives 0.12.
func Saturation(monthlySearch, documentCount int) float64 {
	if monthlySearch <= 0 {
		return 0
	}
	return round2(float64(documentCount) / float64(monthlySearch))
}

func round2(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}

// TierFor classifies a document count
func TierFor(documentCount int) Tier {
	switch {
	case documentCount <= EasyMaxDocuments:
		return TierEasy
	case documentCount <= ModerateMaxDocuments:
		return TierModerate
	case documentCount <= HardMaxDocuments:
		return TierHard
	default:
		return TierVeryHard
	}
}
