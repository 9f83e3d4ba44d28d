package scimago

import (
	"fmt"
	"strings"

	"journalrank/pkg/htmlutil"

	"github.com/antzucaro/matchr"
)

// MatchStrategy decides whether a listing row title refers to the queried journal.
type MatchStrategy string

const (
	MatchExact  MatchStrategy = "exact"
	MatchPrefix MatchStrategy = "prefix"
	// MatchSubstring accepts any title containing the query, a short query can
	// therefore match an unrelated journal that appears earlier in the listing.
	MatchSubstring MatchStrategy = "substring"
	// MatchSimilar accepts titles whose Jaro-Winkler similarity to the query is
	// at least similarThreshold.
	MatchSimilar MatchStrategy = "similar"
)

const similarThreshold = 0.92

var MatchStrategies = []MatchStrategy{MatchExact, MatchPrefix, MatchSubstring, MatchSimilar}

func ParseMatchStrategy(s string) (MatchStrategy, error) {
	for _, m := range MatchStrategies {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown match strategy %q", s)
}

func normalizeTitle(s string) string {
	return strings.ToLower(htmlutil.NormalizeText(s))
}

func (m MatchStrategy) Match(query, title string) bool {
	query = normalizeTitle(query)
	title = normalizeTitle(title)
	if query == "" {
		return false
	}

	switch m {
	case MatchExact:
		return title == query
	case MatchPrefix:
		return strings.HasPrefix(title, query)
	case MatchSubstring:
		return strings.Contains(title, query)
	case MatchSimilar:
		return matchr.JaroWinkler(query, title, false) >= similarThreshold
	default:
		return false
	}
}
