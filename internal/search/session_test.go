package search

import (
	"testing"

	"github.com/jihyekwon/scrapbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithResult(t *testing.T, posts ...domain.Post) *Session {
	t.Helper()
	s := NewSession()
	gen := s.SetTerms([]string{"go"})
	require.True(t, s.Apply(gen, resultOf(posts, nil), nil))
	return s
}

func TestSessionApplyDiscardsStaleGeneration(t *testing.T) {
	s := NewSession()

	stale := s.SetTerms([]string{"go"})
	fresh := s.SetTerms([]string{"rust"})

	staleRes := resultOf([]domain.Post{newPost("go", "x")}, nil)
	assert.False(t, s.Apply(stale, staleRes, nil))
	assert.Nil(t, s.Result())

	freshRes := resultOf([]domain.Post{newPost("rust", "x")}, nil)
	assert.True(t, s.Apply(fresh, freshRes, nil))
	assert.Equal(t, freshRes, s.Result())
}

func TestSessionSetTermsResetsSelectionState(t *testing.T) {
	p := newPost("go", "x")
	s := sessionWithResult(t, p)

	s.SetMultiSelect(true)
	s.Toggle(p.ID)
	s.SetShowSelectedOnly(true)
	_, err := s.Collate()
	require.NoError(t, err)
	require.Equal(t, ViewCollated, s.ViewMode())

	s.SetTerms([]string{"rust"})

	assert.Zero(t, s.SelectionCount())
	assert.False(t, s.ShowSelectedOnly())
	assert.Equal(t, ViewResults, s.ViewMode())
	assert.Nil(t, s.Result())
}

func TestSessionToggle(t *testing.T) {
	p := newPost("go", "x")
	s := sessionWithResult(t, p)

	s.Toggle(p.ID)
	assert.True(t, s.Selected(p.ID))
	s.Toggle(p.ID)
	assert.False(t, s.Selected(p.ID))
}

func TestSessionSelectAll(t *testing.T) {
	a := newPost("go a", "x")
	b := newPost("go b", "x")
	s := sessionWithResult(t, a, b)

	t.Run("selects every visible post", func(t *testing.T) {
		s.SelectAll()
		assert.Equal(t, 2, s.SelectionCount())
		assert.True(t, s.Selected(a.ID))
		assert.True(t, s.Selected(b.ID))
	})

	t.Run("acts as a toggle when all are selected", func(t *testing.T) {
		s.SelectAll()
		assert.Zero(t, s.SelectionCount())
	})

	t.Run("partial selection selects the rest", func(t *testing.T) {
		s.Toggle(a.ID)
		s.SelectAll()
		assert.Equal(t, 2, s.SelectionCount())
	})
}

func TestSessionVisibleResults(t *testing.T) {
	a := newPost("go a", "x")
	b := newPost("go b", "x")
	s := sessionWithResult(t, a, b)

	assert.Len(t, s.VisibleResults(), 2)

	s.Toggle(b.ID)
	s.SetShowSelectedOnly(true)
	visible := s.VisibleResults()
	require.Len(t, visible, 1)
	assert.Equal(t, b.ID, visible[0].ID)

	s.SetShowSelectedOnly(false)
	assert.Len(t, s.VisibleResults(), 2)
}

func TestSessionVisibleResultsNilOnFailure(t *testing.T) {
	s := NewSession()
	assert.Nil(t, s.VisibleResults())

	gen := s.SetTerms([]string{"go"})
	require.True(t, s.Apply(gen, nil, ErrSearchFail))
	assert.Nil(t, s.VisibleResults())
}

func TestSessionCollate(t *testing.T) {
	t.Run("materializes selection in ranked order", func(t *testing.T) {
		a := newPost("go a", "x")
		a.CreatedAt = at(5)
		b := newPost("go b", "x")
		b.CreatedAt = at(3)
		c := newPost("go c", "x")
		c.CreatedAt = at(1)
		s := sessionWithResult(t, a, b, c)

		s.Toggle(c.ID)
		s.Toggle(a.ID)

		collated, err := s.Collate()
		require.NoError(t, err)
		require.Len(t, collated, 2)
		assert.Equal(t, a.ID, collated[0].ID)
		assert.Equal(t, c.ID, collated[1].ID)
		assert.Equal(t, ViewCollated, s.ViewMode())

		s.Back()
		assert.Equal(t, ViewResults, s.ViewMode())
	})

	t.Run("needs an active search", func(t *testing.T) {
		s := NewSession()
		_, err := s.Collate()
		assert.ErrorIs(t, err, ErrNoSearch)
	})

	t.Run("needs a successful result", func(t *testing.T) {
		s := NewSession()
		gen := s.SetTerms([]string{"go"})
		require.True(t, s.Apply(gen, nil, ErrSearchFail))

		_, err := s.Collate()
		assert.ErrorIs(t, err, ErrSearchFail)
	})

	t.Run("needs a non-empty selection", func(t *testing.T) {
		s := sessionWithResult(t, newPost("go", "x"))
		_, err := s.Collate()
		assert.ErrorIs(t, err, ErrNoSelection)
	})
}

func TestSessionExitMultiSelectResets(t *testing.T) {
	p := newPost("go", "x")
	s := sessionWithResult(t, p)

	s.SetMultiSelect(true)
	s.Toggle(p.ID)
	s.SetShowSelectedOnly(true)

	s.SetMultiSelect(false)

	assert.Zero(t, s.SelectionCount())
	assert.False(t, s.ShowSelectedOnly())
	assert.Equal(t, ViewResults, s.ViewMode())
}

func TestSessionSetTab(t *testing.T) {
	s := NewSession()
	assert.Equal(t, TabAll, s.Tab())

	s.SetTab(TabKeyword)
	assert.Equal(t, TabKeyword, s.Tab())

	s.SetTab(Tab("bogus"))
	assert.Equal(t, TabKeyword, s.Tab())
}
