package search

import (
	"github.com/jihyekwon/scrapbook/pkg/stringsutil"
)

// ParseTerms splits a raw comma-separated query into search terms.
// Parts are trimmed and empty parts dropped, so ", ,rust , go" parses
// to ["rust", "go"]. An empty result means "no search performed".
func ParseTerms(raw string) []string {
	return stringsutil.SplitTrimmed(raw, ",")
}
