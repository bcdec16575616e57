package repository

import (
	"context"

	"shareit/internal/database"
	"shareit/internal/models"
)

type CommentRepository struct {
	db *database.DB
}

func NewCommentRepository(db *database.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (item_id, author_id, text, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		comment.ItemID,
		comment.AuthorID,
		comment.Text,
		comment.Created,
	).Scan(&comment.ID)
}

func (r *CommentRepository) GetAllByItemID(ctx context.Context, itemID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.item_id, c.author_id, c.text, c.created, u.name
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.item_id = $1
		ORDER BY c.created`

	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.ItemID,
			&comment.AuthorID,
			&comment.Text,
			&comment.Created,
			&comment.AuthorName,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}
