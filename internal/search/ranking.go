package search

import (
	"sort"

	"github.com/jihyekwon/scrapbook/internal/domain"
)

// Tab selects which result view of an aggregation is displayed.
type Tab string

const (
	TabAll     Tab = "all"
	TabTitle   Tab = "title"
	TabKeyword Tab = "keyword"
)

func (t Tab) Valid() bool {
	switch t {
	case TabAll, TabTitle, TabKeyword:
		return true
	}
	return false
}

// ParseTab maps a raw tab parameter to a Tab, defaulting to TabAll.
func ParseTab(raw string) Tab {
	t := Tab(raw)
	if !t.Valid() {
		return TabAll
	}
	return t
}

// ResultsFor returns the displayed list for a tab. The title and keyword
// tabs keep their union order untouched; the all tab is the ranked merge.
func (r *Result) ResultsFor(tab Tab) []domain.Post {
	switch tab {
	case TabTitle:
		return r.TitleResults
	case TabKeyword:
		return r.KeywordResults
	default:
		return r.rankAll()
	}
}

// rankAll merges the title list with unseen keyword entries and orders
// the merge: matched in both lists, then title-only, then keyword-only,
// ties broken newest-first. The sort is stable so equal-rank posts keep
// their merge order, and a zero CreatedAt sorts as oldest.
func (r *Result) rankAll() []domain.Post {
	merged := make([]domain.Post, 0, len(r.TitleResults)+len(r.KeywordResults))
	merged = append(merged, r.TitleResults...)
	for _, p := range r.KeywordResults {
		if !r.MatchedTitle(p.ID) {
			merged = append(merged, p)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ri, rj := r.rank(merged[i]), r.rank(merged[j])
		if ri != rj {
			return ri < rj
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

func (r *Result) rank(p domain.Post) int {
	inTitle := r.MatchedTitle(p.ID)
	inKeyword := r.MatchedKeyword(p.ID)
	switch {
	case inTitle && inKeyword:
		return 0
	case inTitle:
		return 1
	default:
		return 2
	}
}
