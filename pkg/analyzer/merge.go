package analyzer

import "keyword-radar/pkg/normalizer"

// MergeVolumes assigns every keyword the volume of the matching provider
// label, or 0. A label equal to the keyword wins; otherwise labels are joined
// on their compact key and the lexicographically smallest label wins.
func MergeVolumes(keywords []string, provider map[string]int) []int {
	index := make(map[string]string, len(provider))
	for label := range provider {
		key := normalizer.CompactKey(label)
		if current, ok := index[key]; !ok || label < current {
			index[key] = label
		}
	}

	volumes := make([]int, len(keywords))
	for i, kw := range keywords {
		if v, ok := provider[kw]; ok {
			volumes[i] = v
			continue
		}
		if label, ok := index[normalizer.CompactKey(kw)]; ok {
			volumes[i] = provider[label]
		}
	}
	return volumes
}
