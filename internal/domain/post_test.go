package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("article").Valid())
	assert.False(t, Category("Idea").Valid())
}

func TestCreatePostValidate(t *testing.T) {
	t.Run("valid idea post", func(t *testing.T) {
		c := CreatePost{
			Title:    "  Morning pages  ",
			Content:  "Write three pages before breakfast.",
			Category: CategoryIdea,
			Keywords: []string{" writing ", "habit"},
		}
		require.NoError(t, c.Validate())
		assert.Equal(t, "Morning pages", c.Title)
		assert.Equal(t, []string{"writing", "habit"}, c.Keywords)
	})

	t.Run("title is required", func(t *testing.T) {
		c := CreatePost{Title: "   ", Content: "body", Category: CategoryIdea}
		assert.Error(t, c.Validate())
	})

	t.Run("unknown category", func(t *testing.T) {
		c := CreatePost{Title: "t", Content: "body", Category: "poem"}
		assert.Error(t, c.Validate())
	})

	t.Run("content required for non-video", func(t *testing.T) {
		c := CreatePost{Title: "t", Category: CategoryQuote}
		assert.Error(t, c.Validate())
	})

	t.Run("video may omit content", func(t *testing.T) {
		c := CreatePost{
			Title:     "t",
			Category:  CategoryVideo,
			VideoURLs: []string{"https://example.com/v1"},
		}
		assert.NoError(t, c.Validate())
	})

	t.Run("video needs at least one url", func(t *testing.T) {
		c := CreatePost{Title: "t", Content: "body", Category: CategoryVideo}
		assert.Error(t, c.Validate())
	})

	t.Run("urls rejected off video posts", func(t *testing.T) {
		c := CreatePost{
			Title:     "t",
			Content:   "body",
			Category:  CategoryIdea,
			VideoURLs: []string{"https://example.com/v1"},
		}
		assert.Error(t, c.Validate())
	})

	t.Run("too many video urls", func(t *testing.T) {
		urls := make([]string, MaxVideoURLs+1)
		for i := range urls {
			urls[i] = "https://example.com/v"
		}
		c := CreatePost{Title: "t", Category: CategoryVideo, VideoURLs: urls}
		assert.Error(t, c.Validate())
	})

	t.Run("duplicate keyword", func(t *testing.T) {
		c := CreatePost{
			Title:    "t",
			Content:  "body",
			Category: CategoryIdea,
			Keywords: []string{"go", " go "},
		}
		assert.Error(t, c.Validate())
	})

	t.Run("blank keyword", func(t *testing.T) {
		c := CreatePost{
			Title:    "t",
			Content:  "body",
			Category: CategoryIdea,
			Keywords: []string{"go", "  "},
		}
		assert.Error(t, c.Validate())
	})

	t.Run("too many keywords", func(t *testing.T) {
		keywords := make([]string, MaxKeywords+1)
		for i := range keywords {
			keywords[i] = string(rune('a' + i))
		}
		c := CreatePost{Title: "t", Content: "body", Category: CategoryIdea, Keywords: keywords}
		assert.Error(t, c.Validate())
	})
}

func TestPostVideoURLs(t *testing.T) {
	video := Post{
		Title:    "talk",
		Category: CategoryVideo,
		Video:    &VideoDetails{URLs: []string{"https://example.com/v1"}},
	}
	urls, ok := video.VideoURLs()
	assert.True(t, ok)
	assert.Equal(t, []string{"https://example.com/v1"}, urls)

	idea := Post{Title: "note", Category: CategoryIdea}
	urls, ok = idea.VideoURLs()
	assert.False(t, ok)
	assert.Nil(t, urls)
}

func TestUpdatePostEmpty(t *testing.T) {
	assert.True(t, UpdatePost{}.Empty())

	title := "t"
	assert.False(t, UpdatePost{Title: &title}.Empty())
}

func TestUpdatePostApplyTo(t *testing.T) {
	base := Post{
		Title:    "old title",
		Content:  "old content",
		Category: CategoryIdea,
		Keywords: []string{"old"},
	}

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		title := "  new title  "
		updated, err := UpdatePost{Title: &title}.ApplyTo(base)
		require.NoError(t, err)
		assert.Equal(t, "new title", updated.Title)
		assert.Equal(t, "old content", updated.Content)
		assert.Equal(t, CategoryIdea, updated.Category)
		assert.Equal(t, []string{"old"}, updated.Keywords)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		title := "   "
		_, err := UpdatePost{Title: &title}.ApplyTo(base)
		assert.Error(t, err)
	})

	t.Run("switching to video needs urls", func(t *testing.T) {
		category := CategoryVideo
		_, err := UpdatePost{Category: &category}.ApplyTo(base)
		assert.Error(t, err)

		urls := []string{"https://example.com/v1"}
		updated, err := UpdatePost{Category: &category, VideoURLs: &urls}.ApplyTo(base)
		require.NoError(t, err)
		require.NotNil(t, updated.Video)
		assert.Equal(t, urls, updated.Video.URLs)
	})

	t.Run("switching off video drops the payload", func(t *testing.T) {
		videoPost := Post{
			Title:    "talk",
			Category: CategoryVideo,
			Video:    &VideoDetails{URLs: []string{"https://example.com/v1"}},
		}
		category := CategoryOther
		updated, err := UpdatePost{Category: &category}.ApplyTo(videoPost)
		require.NoError(t, err)
		assert.Nil(t, updated.Video)
	})

	t.Run("video keeps existing urls when urls omitted", func(t *testing.T) {
		videoPost := Post{
			Title:    "talk",
			Category: CategoryVideo,
			Video:    &VideoDetails{URLs: []string{"https://example.com/v1"}},
		}
		title := "renamed talk"
		updated, err := UpdatePost{Title: &title}.ApplyTo(videoPost)
		require.NoError(t, err)
		require.NotNil(t, updated.Video)
		assert.Equal(t, []string{"https://example.com/v1"}, updated.Video.URLs)
	})

	t.Run("keywords normalized", func(t *testing.T) {
		keywords := []string{" go ", "go"}
		_, err := UpdatePost{Keywords: &keywords}.ApplyTo(base)
		assert.Error(t, err)
	})
}

func TestPostWellFormed(t *testing.T) {
	assert.True(t, Post{Title: "t", Category: CategoryIdea}.WellFormed())
	assert.False(t, Post{Category: CategoryIdea}.WellFormed())
	assert.False(t, Post{Title: "t", Category: "bogus"}.WellFormed())
}
