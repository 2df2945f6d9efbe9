package analyzer

import (
	"keyword-radar/pkg/api"
	"keyword-radar/pkg/metrics"
)

const outcomeOK = "ok"

// collapseVolume turns a failed batch into an empty contribution
func (a *Analyzer) collapseVolume(batch []string, found map[string]int, err error) map[string]int {
	if err != nil {
		a.logFailure(api.SourceVolume, err, map[string]interface{}{"batch_size": len(batch)})
		return nil
	}
	metrics.RecordLookup(api.SourceVolume, outcomeOK)
	return found
}

// collapseCount turns a failed or negative count into 0
func (a *Analyzer) collapseCount(keyword string, count int, err error) int {
	if err != nil {
		a.logFailure(api.SourceDocuments, err, map[string]interface{}{"keyword": keyword})
		return 0
	}
	metrics.RecordLookup(api.SourceDocuments, outcomeOK)
	if count < 0 {
		return 0
	}
	return count
}

// collapseSuggestions turns a failure into an empty list and caps the rest
// at maxTerms, keeping provider order.
func (a *Analyzer) collapseSuggestions(keyword string, terms []string, maxTerms int, err error) []string {
	if err != nil {
		a.logFailure(api.SourceSuggestion, err, map[string]interface{}{"keyword": keyword})
		return []string{}
	}
	metrics.RecordLookup(api.SourceSuggestion, outcomeOK)

	if maxTerms > 0 && len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

func (a *Analyzer) logFailure(source string, err error, fields map[string]interface{}) {
	kind := api.KindOf(err)
	metrics.RecordLookup(source, kind.String())

	fields["source"] = source
	fields["kind"] = kind.String()
	entry := a.log.WithFields(fields).WithError(err)

	switch kind {
	case api.KindCanceled, api.KindUnavailable:
		entry.Debug("Lookup skipped, using default")
	default:
		entry.Warn("Lookup failed, using default")
	}
}
