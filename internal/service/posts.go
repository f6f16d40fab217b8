// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ngl-guild/internal/cache"
	"github.com/olegiv/ngl-guild/internal/content"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/store"
	"github.com/olegiv/ngl-guild/internal/util"
	"github.com/olegiv/ngl-guild/internal/webhook"
)

// AllCategories is the category filter value meaning "no filter".
const AllCategories = "Todos"

// MaxTitleLength is the longest accepted post title in runes.
const MaxTitleLength = 200

// PostInput is the editable content of a post. The document is always
// saved whole.
type PostInput struct {
	Title      string
	Content    string
	Category   string
	Body       content.Document
	ImageURL   string
	YoutubeURL string
	Published  bool
}

// PostService manages blog posts.
type PostService struct {
	db       *sql.DB
	queries  *store.Queries
	audit    *AuditService
	cache    cache.Cacher
	cacheTTL time.Duration
	events   EventSink
	now      func() time.Time
}

// NewPostService creates a PostService. c may be nil to disable render caching.
func NewPostService(db *sql.DB, audit *AuditService, c cache.Cacher, cacheTTL time.Duration) *PostService {
	return &PostService{
		db:       db,
		queries:  store.New(db),
		audit:    audit,
		cache:    c,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// SetEvents sends a post.published event to sink whenever a post
// becomes public.
func (s *PostService) SetEvents(sink EventSink) {
	s.events = sink
}

func (s *PostService) notifyPublished(ctx context.Context, p *model.Post) {
	if s.events == nil {
		return
	}
	s.events.DispatchEvent(ctx, webhook.EventPostPublished, webhook.PostEventData{
		ID:       p.ID,
		Title:    p.Title,
		Category: p.Category,
	})
}

func (in *PostInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.YoutubeURL = strings.TrimSpace(in.YoutubeURL)
	if in.Category == "" {
		in.Category = model.DefaultCategory
	}

	v := validator{}
	v.check(in.Title != "", "title", "O título é obrigatório")
	v.check(len([]rune(in.Title)) <= MaxTitleLength, "title", "O título é muito longo")
	v.check(model.ValidCategory(in.Category), "category", "Categoria inválida")
	v.check(in.ImageURL == "" || util.IsHTTPURL(in.ImageURL), "image_url", "URL da imagem inválida")
	v.check(in.YoutubeURL == "" || util.IsHTTPURL(in.YoutubeURL), "youtube_url", "URL do YouTube inválida")
	return v.err()
}

// postFromRow converts a stored row. A malformed stored document is
// treated as absent so the plain content is shown.
func postFromRow(row store.BlogPost) model.Post {
	body, err := content.FromNullString(row.ContentJSON)
	if err != nil {
		slog.Warn("stored post document is malformed, showing plain content",
			"post_id", row.ID, "error", err)
		body = nil
	}
	return model.Post{
		ID:         row.ID,
		Title:      row.Title,
		Content:    row.Content,
		Category:   row.Category,
		Body:       body,
		ImageURL:   row.ImageUrl,
		YoutubeURL: row.YoutubeUrl,
		Published:  row.Published,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func postsFromRows(rows []store.BlogPost) []model.Post {
	out := make([]model.Post, len(rows))
	for i, r := range rows {
		out[i] = postFromRow(r)
	}
	return out
}

// Create stores a new post and records create_blog_post.
func (s *PostService) Create(ctx context.Context, adminID int64, in PostInput) (*model.Post, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	doc, err := content.NullString(in.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding post document: %w", err)
	}

	now := s.now().UTC()
	var row store.BlogPost
	err = inTx(ctx, s.db, func(q *store.Queries) error {
		row, err = q.CreateBlogPost(ctx, store.CreateBlogPostParams{
			ID:          uuid.NewString(),
			Title:       in.Title,
			Content:     in.Content,
			Category:    in.Category,
			ContentJSON: doc,
			ImageUrl:    in.ImageURL,
			YoutubeUrl:  in.YoutubeURL,
			Published:   in.Published,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		return s.audit.log(ctx, q, AuditRecord{
			AdminID:    adminID,
			Category:   model.AuditCategoryBlog,
			Action:     model.ActionCreatePost,
			TargetType: model.TargetBlogPost,
			TargetID:   row.ID,
			Details:    map[string]string{"title": in.Title},
		})
	})
	if err != nil {
		return nil, err
	}

	p := postFromRow(row)
	if p.Published {
		s.notifyPublished(ctx, &p)
	}
	return &p, nil
}

// Update replaces the post's content and records update_blog_post.
func (s *PostService) Update(ctx context.Context, adminID int64, id string, in PostInput) (*model.Post, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	doc, err := content.NullString(in.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding post document: %w", err)
	}

	var (
		row          store.BlogPost
		wasPublished bool
	)
	err = inTx(ctx, s.db, func(q *store.Queries) error {
		cur, err := q.GetBlogPost(ctx, id)
		if err != nil {
			return notFound(err, "loading post")
		}
		wasPublished = cur.Published
		row, err = q.UpdateBlogPost(ctx, store.UpdateBlogPostParams{
			Title:       in.Title,
			Content:     in.Content,
			Category:    in.Category,
			ContentJSON: doc,
			ImageUrl:    in.ImageURL,
			YoutubeUrl:  in.YoutubeURL,
			Published:   in.Published,
			UpdatedAt:   s.now().UTC(),
			ID:          id,
		})
		if err != nil {
			return notFound(err, "updating post")
		}
		return s.audit.log(ctx, q, AuditRecord{
			AdminID:    adminID,
			Category:   model.AuditCategoryBlog,
			Action:     model.ActionUpdatePost,
			TargetType: model.TargetBlogPost,
			TargetID:   id,
			Details:    map[string]string{"title": in.Title},
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	p := postFromRow(row)
	if p.Published && !wasPublished {
		s.notifyPublished(ctx, &p)
	}
	return &p, nil
}

// TogglePublish flips the published flag and records toggle_publish.
func (s *PostService) TogglePublish(ctx context.Context, adminID int64, id string) (*model.Post, error) {
	var row store.BlogPost
	err := inTx(ctx, s.db, func(q *store.Queries) error {
		cur, err := q.GetBlogPost(ctx, id)
		if err != nil {
			return notFound(err, "loading post")
		}
		row, err = q.SetBlogPostPublished(ctx, store.SetBlogPostPublishedParams{
			Published: !cur.Published,
			UpdatedAt: s.now().UTC(),
			ID:        id,
		})
		if err != nil {
			return notFound(err, "toggling publish")
		}
		return s.audit.log(ctx, q, AuditRecord{
			AdminID:    adminID,
			Category:   model.AuditCategoryBlog,
			Action:     model.ActionTogglePublish,
			TargetType: model.TargetBlogPost,
			TargetID:   id,
			Details: map[string]string{
				"title":     row.Title,
				"published": strconv.FormatBool(row.Published),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	p := postFromRow(row)
	if p.Published {
		s.notifyPublished(ctx, &p)
	}
	return &p, nil
}

// Delete removes the post and records delete_blog_post.
func (s *PostService) Delete(ctx context.Context, adminID int64, id string) error {
	err := inTx(ctx, s.db, func(q *store.Queries) error {
		if err := q.DeleteBlogPost(ctx, id); err != nil {
			return notFound(err, "deleting post")
		}
		return s.audit.log(ctx, q, AuditRecord{
			AdminID:    adminID,
			Category:   model.AuditCategoryBlog,
			Action:     model.ActionDeletePost,
			TargetType: model.TargetBlogPost,
			TargetID:   id,
			Details:    map[string]string{"timestamp": s.now().UTC().Format(time.RFC3339)},
		})
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Get returns any post by id.
func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	row, err := s.queries.GetBlogPost(ctx, id)
	if err != nil {
		return nil, notFound(err, "loading post")
	}
	p := postFromRow(row)
	return &p, nil
}

// GetPublished returns the post only if it is published.
func (s *PostService) GetPublished(ctx context.Context, id string) (*model.Post, error) {
	row, err := s.queries.GetPublishedBlogPost(ctx, id)
	if err != nil {
		return nil, notFound(err, "loading published post")
	}
	p := postFromRow(row)
	return &p, nil
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]model.Post, error) {
	rows, err := s.queries.ListBlogPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return postsFromRows(rows), nil
}

// ListPublished returns published posts, newest first. An empty category
// or AllCategories lists every category.
func (s *PostService) ListPublished(ctx context.Context, category string) ([]model.Post, error) {
	var (
		rows []store.BlogPost
		err  error
	)
	if category == "" || category == AllCategories {
		rows, err = s.queries.ListPublishedBlogPosts(ctx)
	} else {
		rows, err = s.queries.ListPublishedBlogPostsByCategory(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("listing published posts: %w", err)
	}
	return postsFromRows(rows), nil
}

// Count returns the number of posts.
func (s *PostService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountBlogPosts(ctx)
}

func cacheKey(p *model.Post) string {
	return "post:" + p.ID + ":" + strconv.FormatInt(p.UpdatedAt.UnixNano(), 10)
}

// RenderBody returns the post body as HTML: the rendered document, or the
// plain content when the document is absent or empty. Results are cached
// per post revision.
func (s *PostService) RenderBody(ctx context.Context, p *model.Post) (template.HTML, error) {
	key := cacheKey(p)
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, key); err == nil {
			return template.HTML(b), nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("render cache read failed", "post_id", p.ID, "error", err)
		}
	}

	html, err := content.Render(p.Body, p.Content).HTML()
	if err != nil {
		return "", fmt.Errorf("rendering post %s: %w", p.ID, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, []byte(html), s.cacheTTL); err != nil {
			slog.Warn("render cache write failed", "post_id", p.ID, "error", err)
		}
	}
	return html, nil
}

func (s *PostService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, "post:"+id+":"); err != nil {
		slog.Warn("render cache invalidation failed", "post_id", id, "error", err)
	}
}
