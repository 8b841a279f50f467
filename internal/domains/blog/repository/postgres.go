package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cms-backend/internal/domains/blog"
	"cms-backend/internal/shared/content"
	"cms-backend/pkg/logger"
)

const blogColumns = `id, user_id, title, content, image, is_anonymous, name, avatar,
		tags, section, status, likes, comments, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the blog store backed by Postgres. Likes and
// comments live in JSONB columns on the blog row, so every interaction
// commits atomically with its parent.
func NewPostgresRepository(pool *pgxpool.Pool) blog.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, b *blog.Blog) error {
	const query = `
		INSERT INTO blogs (id, user_id, title, content, image, is_anonymous, name, avatar,
			tags, section, status, likes, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.Title,
		b.Content,
		b.Image,
		b.IsAnonymous,
		b.Name,
		b.Avatar,
		b.Tags,
		b.Section,
		b.Status,
		b.Likes,
		b.Comments,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	// deleted rows must render exactly like absent ones
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1 AND status <> 'deleted'`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*blog.Blog, error) {
	b := &blog.Blog{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&b.Content,
		&b.Image,
		&b.IsAnonymous,
		&b.Name,
		&b.Avatar,
		&b.Tags,
		&b.Section,
		&b.Status,
		&b.Likes,
		&b.Comments,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrBlogNotFound
		}
		logger.Error("findOne: database error", err)
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter blog.Filter) ([]blog.Blog, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + blogColumns + ` FROM blogs WHERE status = 'active'`)

	var args []interface{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		sb.WriteString(` AND user_id = $` + strconv.Itoa(len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		sb.WriteString(` AND $` + strconv.Itoa(len(args)) + ` = ANY(tags)`)
	}
	if filter.Section != "" {
		args = append(args, filter.Section)
		sb.WriteString(` AND section = $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY created_at DESC`)

	return r.queryMany(ctx, sb.String(), args...)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]blog.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *postgresRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]blog.Blog, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("queryMany: database error", err)
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []blog.Blog
	for rows.Next() {
		var b blog.Blog
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Title,
			&b.Content,
			&b.Image,
			&b.IsAnonymous,
			&b.Name,
			&b.Avatar,
			&b.Tags,
			&b.Section,
			&b.Status,
			&b.Likes,
			&b.Comments,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blogs: %w", err)
	}

	return blogs, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *blog.Blog) error {
	// user_id is immutable; likes/comments have their own paths
	const query = `
		UPDATE blogs
		SET title = $2, content = $3, image = $4, is_anonymous = $5,
			name = $6, avatar = $7, tags = $8, section = $9, updated_at = NOW()
		WHERE id = $1 AND status <> 'deleted'
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Content,
		b.Image,
		b.IsAnonymous,
		b.Name,
		b.Avatar,
		b.Tags,
		b.Section,
	)
	if err != nil {
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status content.Status) error {
	// no deleted guard here: repeating a delete stays a no-op, and this
	// is the only mutation that may touch a deleted row
	const query = `UPDATE blogs SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		logger.Error("UpdateStatus: database error", err)
		return fmt.Errorf("failed to update blog status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}

	return nil
}

func (r *postgresRepository) AddLike(ctx context.Context, blogID, userID uuid.UUID) error {
	// Single conditional statement keyed on the user's absence from the
	// sequence. Two racing likes from the same user hit the same row lock;
	// the loser's containment check fails and it affects zero rows.
	const query = `
		UPDATE blogs
		SET likes = jsonb_build_array(jsonb_build_object('user_id', $2::text)) || likes,
			updated_at = NOW()
		WHERE id = $1
			AND status <> 'deleted'
			AND NOT likes @> jsonb_build_array(jsonb_build_object('user_id', $2::text))
	`

	tag, err := r.pool.Exec(ctx, query, blogID, userID.String())
	if err != nil {
		logger.Error("AddLike: database error", err)
		return fmt.Errorf("failed to add like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyLikeFailure(ctx, blogID, blog.ErrAlreadyLiked)
	}

	return nil
}

func (r *postgresRepository) RemoveLike(ctx context.Context, blogID, userID uuid.UUID) error {
	// Re-aggregates every element except the user's, keeping the relative
	// order of the remainder.
	const query = `
		UPDATE blogs
		SET likes = COALESCE(
				(SELECT jsonb_agg(elem ORDER BY ord)
				 FROM jsonb_array_elements(likes) WITH ORDINALITY AS t(elem, ord)
				 WHERE elem->>'user_id' <> $2),
				'[]'::jsonb),
			updated_at = NOW()
		WHERE id = $1
			AND status <> 'deleted'
			AND likes @> jsonb_build_array(jsonb_build_object('user_id', $2::text))
	`

	tag, err := r.pool.Exec(ctx, query, blogID, userID.String())
	if err != nil {
		logger.Error("RemoveLike: database error", err)
		return fmt.Errorf("failed to remove like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyLikeFailure(ctx, blogID, blog.ErrNotLiked)
	}

	return nil
}

// classifyLikeFailure disambiguates a zero-row like mutation: either the
// sequence precondition failed, or the blog is absent/deleted.
func (r *postgresRepository) classifyLikeFailure(ctx context.Context, blogID uuid.UUID, precondition error) error {
	const query = `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1 AND status <> 'deleted')`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, blogID).Scan(&exists); err != nil {
		logger.Error("classifyLikeFailure: database error", err)
		return fmt.Errorf("failed to check blog: %w", err)
	}
	if !exists {
		return blog.ErrBlogNotFound
	}
	return precondition
}

func (r *postgresRepository) ReplaceComments(ctx context.Context, blogID uuid.UUID, comments []blog.Comment) error {
	const query = `
		UPDATE blogs
		SET comments = $2, updated_at = NOW()
		WHERE id = $1 AND status <> 'deleted'
	`

	if comments == nil {
		comments = []blog.Comment{}
	}

	tag, err := r.pool.Exec(ctx, query, blogID, comments)
	if err != nil {
		logger.Error("ReplaceComments: database error", err)
		return fmt.Errorf("failed to update comments: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}

	return nil
}
