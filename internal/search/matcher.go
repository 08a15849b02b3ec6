package search

import (
	"strings"

	"github.com/jihyekwon/scrapbook/internal/domain"
)

// MatchResult reports which fields of a post matched at least one term.
type MatchResult struct {
	Title   bool
	Keyword bool
	Content bool
}

// Any reports whether the post matched on any field.
func (m MatchResult) Any() bool {
	return m.Title || m.Keyword || m.Content
}

// Match applies every term to a post using case-insensitive substring
// semantics. A field matches when ANY term occurs in it; a keyword match
// means any keyword contains any term.
//
// An empty term list means no search was performed and yields all-false;
// callers must not read that as "no matches".
func Match(post domain.Post, terms []string) MatchResult {
	var res MatchResult
	if len(terms) == 0 {
		return res
	}

	title := strings.ToLower(post.Title)
	content := strings.ToLower(post.Content)

	for _, term := range terms {
		t := strings.ToLower(term)
		if t == "" {
			continue
		}
		if !res.Title && strings.Contains(title, t) {
			res.Title = true
		}
		if !res.Content && strings.Contains(content, t) {
			res.Content = true
		}
		if !res.Keyword {
			for _, k := range post.Keywords {
				if strings.Contains(strings.ToLower(k), t) {
					res.Keyword = true
					break
				}
			}
		}
		if res.Title && res.Content && res.Keyword {
			break
		}
	}
	return res
}
