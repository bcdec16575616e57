package repository

import (
	"context"
	"database/sql"

	"shareit/internal/database"
	"shareit/internal/models"
)

type ItemRepository struct {
	db *database.DB
}

func NewItemRepository(db *database.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (owner_id, name, description, available, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		item.OwnerID,
		item.Name,
		item.Description,
		item.Available,
		item.RequestID,
	).Scan(&item.ID)
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}
	query := `
		SELECT id, owner_id, name, description, available, request_id
		FROM items
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.RequestID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return item, err
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, available = $3, request_id = $4
		WHERE id = $5`

	_, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.RequestID,
		item.ID,
	)
	return err
}

func (r *ItemRepository) GetAllByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	query := `
		SELECT id, owner_id, name, description, available, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *ItemRepository) GetAllByRequestID(ctx context.Context, requestID int64) ([]models.Item, error) {
	query := `
		SELECT id, owner_id, name, description, available, request_id
		FROM items
		WHERE request_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchByText is the SQL fallback for free-text search, used when
// Elasticsearch is not wired in. Matches name or description, available
// items only.
func (r *ItemRepository) SearchByText(ctx context.Context, text string) ([]models.Item, error) {
	query := `
		SELECT id, owner_id, name, description, available, request_id
		FROM items
		WHERE available = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, text)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *ItemRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		var item models.Item
		err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Name,
			&item.Description,
			&item.Available,
			&item.RequestID,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
