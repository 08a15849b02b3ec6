package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/apperr"
)

const (
	MaxKeywords  = 10
	MaxVideoURLs = 5
)

// Category is the fixed set of shelves a post can live under.
type Category string

const (
	CategoryIdea     Category = "idea"
	CategorySentence Category = "sentence"
	CategoryQuote    Category = "quote"
	CategoryVideo    Category = "video"
	CategoryOther    Category = "other"
)

var Categories = []Category{
	CategoryIdea,
	CategorySentence,
	CategoryQuote,
	CategoryVideo,
	CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryIdea, CategorySentence, CategoryQuote, CategoryVideo, CategoryOther:
		return true
	}
	return false
}

// VideoDetails is the payload carried only by video posts.
type VideoDetails struct {
	URLs []string `json:"urls"`
}

// Post is a single collected item. ID and CreatedAt are assigned by the
// store at insert time, never by callers.
//
// Video is the category-discriminated payload: it is non-nil exactly when
// Category == CategoryVideo. Read the URLs through VideoURLs rather than
// dereferencing the field directly.
type Post struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Category  Category      `json:"category"`
	CreatedAt time.Time     `json:"created_at"`
	Keywords  []string      `json:"keywords,omitempty"`
	Video     *VideoDetails `json:"video,omitempty"`
}

// VideoURLs returns the video URL list and whether the post carries one.
func (p Post) VideoURLs() ([]string, bool) {
	if p.Category != CategoryVideo || p.Video == nil {
		return nil, false
	}
	return p.Video.URLs, true
}

// WellFormed reports whether a stored record satisfies the minimal shape
// the search pipeline relies on. Records failing this are skipped from
// result sets rather than crashing aggregation.
func (p Post) WellFormed() bool {
	return p.Title != "" && p.Category.Valid()
}

// CreatePost carries the client-settable fields of a new post.
//
// CreatedAt is normally zero and assigned by the store at insert time.
// The migration utility sets it to carry original timestamps across.
type CreatePost struct {
	Title     string
	Content   string
	Category  Category
	Keywords  []string
	VideoURLs []string
	CreatedAt time.Time
}

// Validate normalizes and checks a create payload in place. Keywords are
// trimmed and deduplicated; the video URL invariant is enforced against
// the category discriminant.
func (c *CreatePost) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return apperr.NewValidation("title is required")
	}
	if !c.Category.Valid() {
		return apperr.NewValidation("unknown category: " + string(c.Category))
	}

	keywords, err := normalizeKeywords(c.Keywords)
	if err != nil {
		return err
	}
	c.Keywords = keywords

	if err := validateVideoURLs(c.Category, c.VideoURLs); err != nil {
		return err
	}
	if c.Content == "" && c.Category != CategoryVideo {
		// Video posts may leave the body empty, everything else needs one.
		return apperr.NewValidation("content is required")
	}
	return nil
}

// UpdatePost is a partial update. Nil fields are left untouched.
type UpdatePost struct {
	Title     *string
	Content   *string
	Category  *Category
	Keywords  *[]string
	VideoURLs *[]string
}

// Empty reports whether the update changes nothing.
func (u UpdatePost) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Category == nil &&
		u.Keywords == nil && u.VideoURLs == nil
}

// ApplyTo merges the update into an existing post and re-validates the
// cross-field invariants. Stores use the result to persist the full row.
func (u UpdatePost) ApplyTo(p Post) (Post, error) {
	if u.Title != nil {
		p.Title = strings.TrimSpace(*u.Title)
		if p.Title == "" {
			return Post{}, apperr.NewValidation("title cannot be empty")
		}
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Category != nil {
		if !u.Category.Valid() {
			return Post{}, apperr.NewValidation("unknown category: " + string(*u.Category))
		}
		p.Category = *u.Category
	}
	if u.Keywords != nil {
		keywords, err := normalizeKeywords(*u.Keywords)
		if err != nil {
			return Post{}, err
		}
		p.Keywords = keywords
	}

	var urls []string
	if u.VideoURLs != nil {
		urls = *u.VideoURLs
	} else if p.Video != nil {
		urls = p.Video.URLs
	}
	if err := validateVideoURLs(p.Category, urls); err != nil {
		return Post{}, err
	}
	if p.Category == CategoryVideo {
		p.Video = &VideoDetails{URLs: urls}
	} else {
		p.Video = nil
	}
	return p, nil
}

func normalizeKeywords(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(raw))
	keywords := make([]string, 0, len(raw))
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, apperr.NewValidation("keywords cannot be empty")
		}
		if _, dup := seen[k]; dup {
			return nil, apperr.NewValidation("duplicate keyword: " + k)
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
	}
	if len(keywords) > MaxKeywords {
		return nil, apperr.NewValidation("too many keywords (max 10)")
	}
	return keywords, nil
}

func validateVideoURLs(category Category, urls []string) error {
	if category != CategoryVideo {
		if len(urls) > 0 {
			return apperr.NewValidation("video URLs are only allowed on video posts")
		}
		return nil
	}
	if len(urls) == 0 {
		return apperr.NewValidation("video posts need at least one URL")
	}
	if len(urls) > MaxVideoURLs {
		return apperr.NewValidation("too many video URLs (max 5)")
	}
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			return apperr.NewValidation("video URLs cannot be empty")
		}
	}
	return nil
}
