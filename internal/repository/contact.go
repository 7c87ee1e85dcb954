package repository

import (
	"context"

	"carnetvoyage/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepo interface {
	Create(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error)
}

type contactRepo struct{ db *pgxpool.Pool }

func NewContactRepo(db *pgxpool.Pool) ContactRepo { return &contactRepo{db: db} }

func (r *contactRepo) Create(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error) {
	const q = `
		INSERT INTO contacts (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, q, m.Name, m.Email, m.Message).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}
