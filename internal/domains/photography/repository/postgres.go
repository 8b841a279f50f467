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

	"cms-backend/internal/domains/photography"
	"cms-backend/internal/shared/content"
	"cms-backend/pkg/logger"
)

const photographyColumns = `id, created_by, title, description, images, category, tags,
		status, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the photography store backed by Postgres.
func NewPostgresRepository(pool *pgxpool.Pool) photography.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *photography.Photography) error {
	const query = `
		INSERT INTO photography (id, created_by, title, description, images, category,
			tags, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.CreatedBy,
		p.Title,
		p.Description,
		p.Images,
		p.Category,
		p.Tags,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create photography: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*photography.Photography, error) {
	query := `SELECT ` + photographyColumns + ` FROM photography WHERE id = $1 AND status <> 'deleted'`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*photography.Photography, error) {
	query := `SELECT ` + photographyColumns + ` FROM photography WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*photography.Photography, error) {
	p := &photography.Photography{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.CreatedBy,
		&p.Title,
		&p.Description,
		&p.Images,
		&p.Category,
		&p.Tags,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, photography.ErrPhotographyNotFound
		}
		logger.Error("findOne: database error", err)
		return nil, fmt.Errorf("failed to get photography: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter photography.Filter) ([]photography.Photography, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + photographyColumns + ` FROM photography WHERE status = 'active'`)

	var args []interface{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		sb.WriteString(` AND created_by = $` + strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		sb.WriteString(` AND category = $` + strconv.Itoa(len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		sb.WriteString(` AND $` + strconv.Itoa(len(args)) + ` = ANY(tags)`)
	}
	sb.WriteString(` ORDER BY created_at DESC`)

	return r.queryMany(ctx, sb.String(), args...)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]photography.Photography, error) {
	query := `SELECT ` + photographyColumns + ` FROM photography ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *postgresRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]photography.Photography, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("queryMany: database error", err)
		return nil, fmt.Errorf("failed to list photography: %w", err)
	}
	defer rows.Close()

	var items []photography.Photography
	for rows.Next() {
		var p photography.Photography
		if err := rows.Scan(
			&p.ID,
			&p.CreatedBy,
			&p.Title,
			&p.Description,
			&p.Images,
			&p.Category,
			&p.Tags,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan photography: %w", err)
		}
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read photography: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *photography.Photography) error {
	// created_by is immutable
	const query = `
		UPDATE photography
		SET title = $2, description = $3, images = $4, category = $5, tags = $6,
			updated_at = NOW()
		WHERE id = $1 AND status <> 'deleted'
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Images,
		p.Category,
		p.Tags,
	)
	if err != nil {
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update photography: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return photography.ErrPhotographyNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status content.Status) error {
	const query = `UPDATE photography SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		logger.Error("UpdateStatus: database error", err)
		return fmt.Errorf("failed to update photography status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return photography.ErrPhotographyNotFound
	}

	return nil
}
