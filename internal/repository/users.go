package repository

import (
	"context"
	"database/sql"
	"errors"

	"shareit/internal/cache"
	"shareit/internal/database"
	errs "shareit/internal/errors"
	"shareit/internal/logger"
	"shareit/internal/models"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type UserRepository struct {
	db     *database.DB
	valkey *cache.ValkeyClient
}

func NewUserRepository(db *database.DB, valkey *cache.ValkeyClient) *UserRepository {
	return &UserRepository{db: db, valkey: valkey}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return errs.Conflict("user with email %s already exists", user.Email)
		}
		return err
	}

	if r.valkey != nil {
		if cerr := r.valkey.SetUserExists(ctx, user.ID, true); cerr != nil {
			logger.WithContext(ctx).Warn("Failed to prime user cache", "user_id", user.ID, "error", cerr)
		}
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email FROM users WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	query := `SELECT id, name, email FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET name = $1, email = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return errs.Conflict("user with email %s already exists", user.Email)
		}
	}
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return err
	}

	if r.valkey != nil {
		if cerr := r.valkey.InvalidateUser(ctx, id); cerr != nil {
			logger.WithContext(ctx).Warn("Failed to invalidate user cache", "user_id", id, "error", cerr)
		}
	}
	return nil
}

// ExistsByID answers the existence check that fronts nearly every
// operation, consulting the Valkey cache before the database.
func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if r.valkey != nil {
		if exists, hit := r.valkey.GetUserExists(ctx, id); hit {
			return exists, nil
		}
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}

	if r.valkey != nil {
		if cerr := r.valkey.SetUserExists(ctx, id, exists); cerr != nil {
			logger.WithContext(ctx).Warn("Failed to cache user existence", "user_id", id, "error", cerr)
		}
	}
	return exists, nil
}
