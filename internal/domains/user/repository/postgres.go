package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cms-backend/internal/domains/user"
	"cms-backend/internal/shared/authz"
	"cms-backend/pkg/cache"
	"cms-backend/pkg/logger"
)

const (
	basicInfoKeyPrefix = "user:basic:"
	basicInfoTTL       = 10 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates the identity store backed by Postgres, with
// a redis cache in front of the display-profile lookups.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (id, name, email, avatar, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.Avatar,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_users_email" {
			return user.ErrEmailAlreadyExists
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const query = `
		SELECT id, name, email, avatar, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u := &user.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Avatar,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		logger.Error("FindByID: database error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = `
		SELECT id, name, email, avatar, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	u := &user.User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Avatar,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		logger.Error("FindByEmail: database error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]user.User, error) {
	const query = `
		SELECT id, name, email, avatar, password_hash, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("List: database error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.Avatar,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role authz.Role) error {
	const query = `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		logger.Error("UpdateRole: database error", err)
		return fmt.Errorf("failed to update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	// role is part of the cached display profile's source row; drop it
	if err := r.cache.Delete(ctx, basicInfoKeyPrefix+id.String()); err != nil {
		logger.Warn("UpdateRole: cache invalidation failed", map[string]interface{}{"user_id": id.String()})
	}

	return nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		logger.Error("ExistsByEmail: database error", err)
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// BasicInfoByIDs serves the read-time join on likes/comments. Cache hits
// skip the database entirely; misses are fetched in one query and cached.
func (r *postgresRepository) BasicInfoByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.BasicInfo, error) {
	result := make(map[uuid.UUID]user.BasicInfo, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var missing []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var info user.BasicInfo
		found, err := r.cache.Get(ctx, basicInfoKeyPrefix+id.String(), &info)
		if err != nil {
			// cache trouble is not fatal; fall through to the database
			logger.Warn("BasicInfoByIDs: cache read failed", map[string]interface{}{"user_id": id.String()})
		}
		if found {
			result[id] = info
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	const query = `
		SELECT id, name, avatar
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, missing)
	if err != nil {
		logger.Error("BasicInfoByIDs: database error", err)
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var info user.BasicInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user info: %w", err)
		}
		result[info.ID] = info

		if err := r.cache.Set(ctx, basicInfoKeyPrefix+info.ID.String(), info, basicInfoTTL); err != nil {
			logger.Warn("BasicInfoByIDs: cache write failed", map[string]interface{}{"user_id": info.ID.String()})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return result, nil
}
