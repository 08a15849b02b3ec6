package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/indices/create"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/apperr"
	"github.com/jihyekwon/scrapbook/internal/domain"
)

// listSize caps how many posts a single query returns. A personal
// collection stays far below this; pagination is out of scope.
const listSize = 10000

// Document is the index representation of a post. Title and content get
// a keyword subfield so substring searches can run as case-insensitive
// wildcards over the whole value instead of per analyzed token.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	Keywords  []string  `json:"keywords,omitempty"`
	VideoURLs []string  `json:"video_urls,omitempty"`
}

// Store is the Elasticsearch post store.
type Store struct {
	client    *elasticsearch.TypedClient
	indexName string
	config    ClientConfig
}

func NewStore(ctx context.Context, config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	store := &Store{
		client:    client,
		indexName: config.IndexName,
		config:    config,
	}
	if err := store.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return store, nil
}

func (s *Store) ensureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	if exists {
		return nil
	}

	title := types.NewTextProperty()
	title.Fields = map[string]types.Property{"raw": types.NewKeywordProperty()}
	content := types.NewTextProperty()
	content.Fields = map[string]types.Property{"raw": types.NewKeywordProperty()}

	_, err = s.client.Indices.Create(s.indexName).
		Request(&create.Request{
			Mappings: &types.TypeMapping{
				Properties: map[string]types.Property{
					"id":         types.NewKeywordProperty(),
					"title":      title,
					"content":    content,
					"category":   types.NewKeywordProperty(),
					"created_at": types.NewDateProperty(),
					"keywords":   types.NewKeywordProperty(),
					"video_urls": types.NewKeywordProperty(),
				},
			},
		}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", s.indexName, err)
	}
	slog.Info("created index", "index", s.indexName)
	return nil
}

func (s *Store) Create(ctx context.Context, data domain.CreatePost) (domain.Post, error) {
	if err := data.Validate(); err != nil {
		return domain.Post{}, err
	}

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	post := domain.Post{
		ID:        uuid.New(),
		Title:     data.Title,
		Content:   data.Content,
		Category:  data.Category,
		CreatedAt: createdAt,
		Keywords:  data.Keywords,
	}
	if data.Category == domain.CategoryVideo {
		post.Video = &domain.VideoDetails{URLs: data.VideoURLs}
	}

	if err := s.index(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, data domain.UpdatePost) (domain.Post, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	updated, err := data.ApplyTo(existing)
	if err != nil {
		return domain.Post{}, err
	}
	if err := s.index(ctx, updated); err != nil {
		return domain.Post{}, err
	}
	return updated, nil
}

func (s *Store) index(ctx context.Context, post domain.Post) error {
	doc := toDocument(post)
	_, err := s.client.Index(s.indexName).
		Id(doc.ID).
		Document(doc).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index post: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	// Resolve existence first so a missing id maps to NotFound instead of
	// a transport-shaped error.
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := s.client.Delete(s.indexName, id.String()).Refresh(refresh.True).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *Store) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}

	res, err := s.client.DeleteByQuery(s.indexName).
		Query(&types.Query{Ids: &types.IdsQuery{Values: values}}).
		Refresh(true).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}
	if res.Deleted == nil {
		return 0, nil
	}
	return *res.Deleted, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	res, err := s.client.Get(s.indexName, id.String()).Do(ctx)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	if !res.Found {
		return domain.Post{}, apperr.NewNotFound("post not found")
	}

	var doc Document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return domain.Post{}, fmt.Errorf("failed to decode post document: %w", err)
	}
	return fromDocument(doc)
}

func (s *Store) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.search(ctx, &types.Query{MatchAll: &types.MatchAllQuery{}})
}

func (s *Store) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Post, error) {
	return s.search(ctx, &types.Query{
		Term: map[string]types.TermQuery{"category": {Value: string(category)}},
	})
}

func (s *Store) SearchByTitle(ctx context.Context, term string) ([]domain.Post, error) {
	return s.search(ctx, wildcardQuery("title.raw", term))
}

func (s *Store) SearchByContent(ctx context.Context, term string) ([]domain.Post, error) {
	return s.search(ctx, wildcardQuery("content.raw", term))
}

func (s *Store) SearchByKeyword(ctx context.Context, term string) ([]domain.Post, error) {
	return s.search(ctx, wildcardQuery("keywords", term))
}

func (s *Store) search(ctx context.Context, query *types.Query) ([]domain.Post, error) {
	sortDesc := sortorder.Desc
	req := s.client.Search().
		Index(s.indexName).
		Query(query).
		Size(listSize).
		Sort(&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				"created_at": {Order: &sortDesc},
			},
		}, &types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				"id": {Order: &sortDesc},
			},
		})

	res, err := req.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	var posts []domain.Post
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode hit: %w", err)
		}
		post, err := fromDocument(doc)
		if err != nil {
			slog.Warn("skipping malformed document", "id", doc.ID, "error", err)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// wildcardQuery builds a case-insensitive substring match on a keyword
// field. Wildcard metacharacters in the term are escaped so they match
// literally.
func wildcardQuery(field, term string) *types.Query {
	escaped := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`).Replace(term)
	value := "*" + escaped + "*"
	caseInsensitive := true
	return &types.Query{
		Wildcard: map[string]types.WildcardQuery{
			field: {Value: &value, CaseInsensitive: &caseInsensitive},
		},
	}
}

func toDocument(post domain.Post) Document {
	doc := Document{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   post.Content,
		Category:  string(post.Category),
		CreatedAt: post.CreatedAt,
		Keywords:  post.Keywords,
	}
	if urls, ok := post.VideoURLs(); ok {
		doc.VideoURLs = urls
	}
	return doc
}

func fromDocument(doc Document) (domain.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("invalid post id %q: %w", doc.ID, err)
	}
	post := domain.Post{
		ID:        id,
		Title:     doc.Title,
		Content:   doc.Content,
		Category:  domain.Category(doc.Category),
		CreatedAt: doc.CreatedAt,
		Keywords:  doc.Keywords,
	}
	if post.Category == domain.CategoryVideo && len(doc.VideoURLs) > 0 {
		post.Video = &domain.VideoDetails{URLs: doc.VideoURLs}
	}
	return post, nil
}
