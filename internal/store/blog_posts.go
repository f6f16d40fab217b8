// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const blogPostColumns = `id, title, content, category, content_json, image_url, youtube_url,
	published, created_at, updated_at`

func scanBlogPost(row rowScanner) (BlogPost, error) {
	var p BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Category, &p.ContentJSON, &p.ImageUrl,
		&p.YoutubeUrl, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (q *Queries) queryBlogPosts(ctx context.Context, query string, args ...any) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// CreateBlogPostParams holds a new post row.
type CreateBlogPostParams struct {
	ID          string
	Title       string
	Content     string
	Category    string
	ContentJSON sql.NullString
	ImageUrl    string
	YoutubeUrl  string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createBlogPost = `INSERT INTO blog_posts (id, title, content, category, content_json, image_url,
	youtube_url, published, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogPostColumns

// CreateBlogPost inserts a post.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, createBlogPost, arg.ID, arg.Title, arg.Content, arg.Category,
		arg.ContentJSON, arg.ImageUrl, arg.YoutubeUrl, arg.Published, arg.CreatedAt, arg.UpdatedAt)
	return scanBlogPost(row)
}

const getBlogPost = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ?`

// GetBlogPost returns the post with the given id regardless of status.
func (q *Queries) GetBlogPost(ctx context.Context, id string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPost, id))
}

const getPublishedBlogPost = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ? AND published = 1`

// GetPublishedBlogPost returns the post only if it is published.
func (q *Queries) GetPublishedBlogPost(ctx context.Context, id string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getPublishedBlogPost, id))
}

// UpdateBlogPostParams replaces every editable column of a post. The
// document column is always written whole.
type UpdateBlogPostParams struct {
	Title       string
	Content     string
	Category    string
	ContentJSON sql.NullString
	ImageUrl    string
	YoutubeUrl  string
	Published   bool
	UpdatedAt   time.Time
	ID          string
}

const updateBlogPost = `UPDATE blog_posts SET title = ?, content = ?, category = ?, content_json = ?,
	image_url = ?, youtube_url = ?, published = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogPostColumns

// UpdateBlogPost replaces a post's editable columns.
func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost, arg.Title, arg.Content, arg.Category, arg.ContentJSON,
		arg.ImageUrl, arg.YoutubeUrl, arg.Published, arg.UpdatedAt, arg.ID)
	return scanBlogPost(row)
}

// SetBlogPostPublishedParams sets the published flag of a post.
type SetBlogPostPublishedParams struct {
	Published bool
	UpdatedAt time.Time
	ID        string
}

const setBlogPostPublished = `UPDATE blog_posts SET published = ?, updated_at = ? WHERE id = ?
RETURNING ` + blogPostColumns

// SetBlogPostPublished changes the published flag.
func (q *Queries) SetBlogPostPublished(ctx context.Context, arg SetBlogPostPublishedParams) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, setBlogPostPublished, arg.Published, arg.UpdatedAt, arg.ID))
}

const deleteBlogPost = `DELETE FROM blog_posts WHERE id = ?`

// DeleteBlogPost removes a post. Returns ErrNotFound when no row matched.
func (q *Queries) DeleteBlogPost(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	if err != nil {
		return err
	}
	return affectedOne(res)
}

const listBlogPosts = `SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY created_at DESC`

// ListBlogPosts returns all posts, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listBlogPosts)
}

const listPublishedBlogPosts = `SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE published = 1 ORDER BY created_at DESC`

// ListPublishedBlogPosts returns published posts, newest first.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listPublishedBlogPosts)
}

const listPublishedBlogPostsByCategory = `SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE published = 1 AND category = ? ORDER BY created_at DESC`

// ListPublishedBlogPostsByCategory returns published posts of one category, newest first.
func (q *Queries) ListPublishedBlogPostsByCategory(ctx context.Context, category string) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listPublishedBlogPostsByCategory, category)
}

const countBlogPosts = `SELECT COUNT(*) FROM blog_posts`

// CountBlogPosts returns the number of posts.
func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPosts).Scan(&n)
	return n, err
}
