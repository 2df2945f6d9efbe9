package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LowVolumePlaceholder replaces the provider's "< 10" sentinel so that a
// tiny but real volume stays distinguishable from "not found".
const LowVolumePlaceholder = 5

const lowVolumeSentinel = "< 10"

// KeywordstoolResponse is the raw search-ad keywordstool payload
type KeywordstoolResponse struct {
	KeywordList []KeywordstoolItem `json:"keywordList"`
}

// KeywordstoolItem is one related keyword row. The monthly counts are
// numbers, or the string "< 10" for very small volumes.
type KeywordstoolItem struct {
	RelKeyword         string          `json:"relKeyword"`
	MonthlyPcQcCnt     json.RawMessage `json:"monthlyPcQcCnt"`
	MonthlyMobileQcCnt json.RawMessage `json:"monthlyMobileQcCnt"`
}

// KeywordstoolParser converts keywordstool payloads into volume maps
type KeywordstoolParser struct{}

// NewKeywordstoolParser creates a new parser
func NewKeywordstoolParser() *KeywordstoolParser {
	return &KeywordstoolParser{}
}

// ParseResponse returns label (spaces removed) -> PC + mobile volume.
// Rows with an empty label or a zero total are skipped; a later row with the
// same label overwrites an earlier one.
func (p *KeywordstoolParser) ParseResponse(body []byte) (map[string]int, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty response body from keywordstool")
	}

	var resp KeywordstoolResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode keywordstool response: %w (response: %s)", err, truncate(body, 200))
	}

	volumes := make(map[string]int, len(resp.KeywordList))
	for _, item := range resp.KeywordList {
		label := strings.ReplaceAll(item.RelKeyword, " ", "")
		if label == "" {
			continue
		}

		pc, err := p.parseCount(item.MonthlyPcQcCnt)
		if err != nil {
			return nil, fmt.Errorf("failed to decode monthlyPcQcCnt for %q: %w", item.RelKeyword, err)
		}
		mobile, err := p.parseCount(item.MonthlyMobileQcCnt)
		if err != nil {
			return nil, fmt.Errorf("failed to decode monthlyMobileQcCnt for %q: %w", item.RelKeyword, err)
		}

		if total := pc + mobile; total > 0 {
			volumes[label] = total
		}
	}

	return volumes, nil
}

// parseCount accepts a JSON number, a numeric string, the "< 10" sentinel,
// null or a missing field.
func (p *KeywordstoolParser) parseCount(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		switch {
		case s == "":
			return 0, nil
		case s == lowVolumeSentinel || strings.ReplaceAll(s, " ", "") == "<10":
			return LowVolumePlaceholder, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("unexpected count %q", s)
		}
		return clampCount(n), nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return clampCount(int(f)), nil
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
