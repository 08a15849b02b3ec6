package search

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/domain"
)

// ViewMode is the session's display state.
type ViewMode string

const (
	ViewResults  ViewMode = "results"
	ViewCollated ViewMode = "collated"
)

var (
	ErrNoSearch    = errors.New("no active search")
	ErrNoSelection = errors.New("selection is empty")
	ErrSearchFail  = errors.New("search failed")
)

// Session holds the per-viewer search state: the active term list, the
// latest aggregation, tab, selection set, and view mode. There is one
// session per viewer and all operations run synchronously, so no locking.
//
// Result delivery is generation-guarded: retyping the query before an
// in-flight fetch resolves bumps the generation, and Apply discards any
// result carrying a stale one.
type Session struct {
	terms []string
	gen   uint64

	result  *Result
	lastErr error

	tab              Tab
	multiSelect      bool
	selection        map[uuid.UUID]struct{}
	showSelectedOnly bool
	viewMode         ViewMode
}

func NewSession() *Session {
	return &Session{
		tab:       TabAll,
		selection: make(map[uuid.UUID]struct{}),
		viewMode:  ViewResults,
	}
}

// SetTerms installs a new term list and returns the generation token the
// matching Apply call must present. Changing terms deterministically
// resets selection, the selected-only filter, and the view mode.
func (s *Session) SetTerms(terms []string) uint64 {
	s.terms = terms
	s.gen++
	s.result = nil
	s.lastErr = nil
	s.resetSelectionState()
	return s.gen
}

// Apply installs an aggregation outcome. A result from a superseded
// SetTerms call is discarded and Apply reports false.
func (s *Session) Apply(gen uint64, res *Result, err error) bool {
	if gen != s.gen {
		return false
	}
	s.result = res
	s.lastErr = err
	return true
}

func (s *Session) Terms() []string    { return s.terms }
func (s *Session) Err() error         { return s.lastErr }
func (s *Session) Result() *Result    { return s.result }
func (s *Session) ViewMode() ViewMode { return s.viewMode }
func (s *Session) Tab() Tab           { return s.tab }

func (s *Session) SetTab(tab Tab) {
	if tab.Valid() {
		s.tab = tab
	}
}

// SetMultiSelect toggles multi-select mode. Leaving the mode resets the
// selection, the selected-only filter, and the view mode.
func (s *Session) SetMultiSelect(on bool) {
	if s.multiSelect && !on {
		s.resetSelectionState()
	}
	s.multiSelect = on
}

func (s *Session) MultiSelect() bool { return s.multiSelect }

// VisibleResults is the list currently on screen: the active tab's
// ranked list, restricted to the selection when the selected-only filter
// is active. Nil until a result has been applied.
func (s *Session) VisibleResults() []domain.Post {
	if s.result == nil || s.lastErr != nil {
		return nil
	}
	results := s.result.ResultsFor(s.tab)
	if !s.showSelectedOnly {
		return results
	}
	filtered := make([]domain.Post, 0, len(s.selection))
	for _, p := range results {
		if _, ok := s.selection[p.ID]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Toggle flips one post's selection membership.
func (s *Session) Toggle(id uuid.UUID) {
	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
		return
	}
	s.selection[id] = struct{}{}
}

// SelectAll selects every visible post, or clears the selection when the
// visible list is already fully selected.
func (s *Session) SelectAll() {
	visible := s.VisibleResults()
	if len(visible) > 0 && len(s.selection) == len(visible) {
		allSelected := true
		for _, p := range visible {
			if _, ok := s.selection[p.ID]; !ok {
				allSelected = false
				break
			}
		}
		if allSelected {
			s.Clear()
			return
		}
	}
	s.selection = make(map[uuid.UUID]struct{}, len(visible))
	for _, p := range visible {
		s.selection[p.ID] = struct{}{}
	}
}

func (s *Session) Clear() {
	s.selection = make(map[uuid.UUID]struct{})
}

func (s *Session) Selected(id uuid.UUID) bool {
	_, ok := s.selection[id]
	return ok
}

func (s *Session) SelectionCount() int { return len(s.selection) }

func (s *Session) SetShowSelectedOnly(on bool) { s.showSelectedOnly = on }
func (s *Session) ShowSelectedOnly() bool      { return s.showSelectedOnly }

// Collate switches to the collated view and materializes the selected
// posts, full bodies included, in the current ranked order. It is a
// read-only projection over the applied result.
func (s *Session) Collate() ([]domain.Post, error) {
	if s.lastErr != nil {
		return nil, ErrSearchFail
	}
	if len(s.terms) == 0 || s.result == nil {
		return nil, ErrNoSearch
	}
	if len(s.selection) == 0 {
		return nil, ErrNoSelection
	}

	ranked := s.result.ResultsFor(s.tab)
	collated := make([]domain.Post, 0, len(s.selection))
	for _, p := range ranked {
		if _, ok := s.selection[p.ID]; ok {
			collated = append(collated, p)
		}
	}
	s.viewMode = ViewCollated
	return collated, nil
}

// Back returns from the collated view to the result list.
func (s *Session) Back() {
	s.viewMode = ViewResults
}

func (s *Session) resetSelectionState() {
	s.selection = make(map[uuid.UUID]struct{})
	s.showSelectedOnly = false
	s.viewMode = ViewResults
}
