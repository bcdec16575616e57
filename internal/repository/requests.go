package repository

import (
	"context"
	"database/sql"

	"shareit/internal/database"
	"shareit/internal/models"
)

type RequestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, request *models.ItemRequest) error {
	query := `
		INSERT INTO requests (requester_id, description, created)
		VALUES ($1, $2, $3)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		request.RequesterID,
		request.Description,
		request.Created,
	).Scan(&request.ID)
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	request := &models.ItemRequest{}
	query := `
		SELECT id, requester_id, description, created
		FROM requests
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&request.ID,
		&request.RequesterID,
		&request.Description,
		&request.Created,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return request, err
}

func (r *RequestRepository) GetAllByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created
		FROM requests
		WHERE requester_id = $1
		ORDER BY created DESC`

	rows, err := r.db.QueryContext(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetAllOthers lists wish-list entries posted by everyone except userID,
// newest first, paginated.
func (r *RequestRepository) GetAllOthers(ctx context.Context, userID int64, limit, offset int) ([]models.ItemRequest, error) {
	query := `
		SELECT id, requester_id, description, created
		FROM requests
		WHERE requester_id <> $1
		ORDER BY created DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *RequestRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

func scanRequests(rows *sql.Rows) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	for rows.Next() {
		var request models.ItemRequest
		err := rows.Scan(
			&request.ID,
			&request.RequesterID,
			&request.Description,
			&request.Created,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
