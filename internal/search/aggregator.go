package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/domain"
	"github.com/jihyekwon/scrapbook/internal/storage"
)

// Counts are the per-tab result sizes shown next to the tab labels.
// All counts the deduplicated union of the title and keyword lists.
type Counts struct {
	All     int `json:"all"`
	Title   int `json:"title"`
	Keyword int `json:"keyword"`
}

// Result is one aggregated search over a fixed term list.
//
// TitleResults is the title union followed by content-only matches: a
// content hit without a title hit is surfaced under the title tab as a
// secondary signal rather than a tab of its own. KeywordResults is an
// independent view and may overlap TitleResults.
type Result struct {
	TitleResults   []domain.Post
	KeywordResults []domain.Post
	Counts         Counts

	titleSet   map[uuid.UUID]struct{}
	keywordSet map[uuid.UUID]struct{}
}

// MatchedTitle reports membership in the exposed title list.
func (r *Result) MatchedTitle(id uuid.UUID) bool {
	_, ok := r.titleSet[id]
	return ok
}

// MatchedKeyword reports membership in the keyword list.
func (r *Result) MatchedKeyword(id uuid.UUID) bool {
	_, ok := r.keywordSet[id]
	return ok
}

// Aggregator runs per-term store searches and merges them into the three
// deduplicated buckets. It holds no session state and is safe to share.
type Aggregator struct {
	store storage.Searcher
}

func NewAggregator(store storage.Searcher) *Aggregator {
	return &Aggregator{store: store}
}

// Search aggregates results for the given term list.
//
// An empty term list short-circuits with zero counts and no store calls.
// Any fetch failure fails the whole aggregation: a partial ranking would
// be misleading, and callers must be able to tell "search failed" apart
// from "zero matches".
func (a *Aggregator) Search(ctx context.Context, terms []string) (*Result, error) {
	res := &Result{
		titleSet:   make(map[uuid.UUID]struct{}),
		keywordSet: make(map[uuid.UUID]struct{}),
	}
	if len(terms) == 0 {
		return res, nil
	}

	var (
		titleList   []domain.Post
		contentOnly []domain.Post
		keywordList []domain.Post
		contentSeen = make(map[uuid.UUID]struct{})
	)

	// Per-term unions, first-seen-wins. The title union absorbs content
	// matches: anything already title-matched never lands in contentOnly.
	for _, term := range terms {
		posts, err := a.store.SearchByTitle(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("title search for %q: %w", term, err)
		}
		for _, p := range posts {
			if !usable(p) {
				continue
			}
			if _, seen := res.titleSet[p.ID]; seen {
				continue
			}
			res.titleSet[p.ID] = struct{}{}
			titleList = append(titleList, p)
		}
	}

	for _, term := range terms {
		posts, err := a.store.SearchByContent(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("content search for %q: %w", term, err)
		}
		for _, p := range posts {
			if !usable(p) {
				continue
			}
			if _, seen := res.titleSet[p.ID]; seen {
				continue
			}
			if _, seen := contentSeen[p.ID]; seen {
				continue
			}
			contentSeen[p.ID] = struct{}{}
			contentOnly = append(contentOnly, p)
		}
	}

	for _, term := range terms {
		posts, err := a.store.SearchByKeyword(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("keyword search for %q: %w", term, err)
		}
		for _, p := range posts {
			if !usable(p) {
				continue
			}
			if _, seen := res.keywordSet[p.ID]; seen {
				continue
			}
			res.keywordSet[p.ID] = struct{}{}
			keywordList = append(keywordList, p)
		}
	}

	res.TitleResults = append(titleList, contentOnly...)
	for _, p := range contentOnly {
		res.titleSet[p.ID] = struct{}{}
	}
	res.KeywordResults = keywordList

	all := len(res.TitleResults)
	for _, p := range keywordList {
		if _, dup := res.titleSet[p.ID]; !dup {
			all++
		}
	}
	res.Counts = Counts{
		All:     all,
		Title:   len(res.TitleResults),
		Keyword: len(res.KeywordResults),
	}
	return res, nil
}

func usable(p domain.Post) bool {
	if p.ID == uuid.Nil || !p.WellFormed() {
		slog.Warn("skipping malformed post in search results", "id", p.ID, "title", p.Title)
		return false
	}
	return true
}
