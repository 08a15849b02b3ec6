package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/domain"
)

// Post is the wire representation of a post. Video URLs flatten into a
// plain array field the way the original clients expect.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	Keywords  []string  `json:"keywords,omitempty"`
	VideoURLs []string  `json:"video_urls,omitempty"`
}

func FromDomain(p domain.Post) Post {
	out := Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  string(p.Category),
		CreatedAt: p.CreatedAt,
		Keywords:  p.Keywords,
	}
	if urls, ok := p.VideoURLs(); ok {
		out.VideoURLs = urls
	}
	return out
}

func FromDomainList(posts []domain.Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, FromDomain(p))
	}
	return out
}

type CreatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Keywords  []string `json:"keywords"`
	VideoURLs []string `json:"video_urls"`
}

func (r CreatePostRequest) ToDomain() domain.CreatePost {
	return domain.CreatePost{
		Title:     r.Title,
		Content:   r.Content,
		Category:  domain.Category(r.Category),
		Keywords:  r.Keywords,
		VideoURLs: r.VideoURLs,
	}
}

// UpdatePostRequest is a partial update; absent fields stay untouched.
type UpdatePostRequest struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Category  *string   `json:"category"`
	Keywords  *[]string `json:"keywords"`
	VideoURLs *[]string `json:"video_urls"`
}

func (r UpdatePostRequest) ToDomain() domain.UpdatePost {
	update := domain.UpdatePost{
		Title:     r.Title,
		Content:   r.Content,
		Keywords:  r.Keywords,
		VideoURLs: r.VideoURLs,
	}
	if r.Category != nil {
		category := domain.Category(*r.Category)
		update.Category = &category
	}
	return update
}

type BatchDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type BatchDeleteResponse struct {
	Count int64 `json:"count"`
}
