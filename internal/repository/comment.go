package repository

import (
	"context"

	"carnetvoyage/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) CommentRepo { return &commentRepo{db: db} }

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	const q = `
		INSERT INTO comments (name, content, article_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, q, c.Name, c.Content, c.ArticleID, c.UserID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	const q = `
		SELECT id, name, content, article_id, user_id, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, q, articleID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var list []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Content, &c.ArticleID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		list = append(list, &c)
	}
	return list, nil
}

func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	const q = `
		SELECT id, name, content, article_id, user_id, created_at
		FROM comments
		WHERE id = $1
	`
	var c models.Comment
	err := r.db.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Content, &c.ArticleID, &c.UserID, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
