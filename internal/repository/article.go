package repository

import (
	"context"
	"fmt"
	"strings"

	"carnetvoyage/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	GetAll(ctx context.Context, limit, offset int, category string) ([]*models.Article, int, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	IncrementViews(ctx context.Context, id int64) error
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id int64) error
	GetOwnerID(ctx context.Context, id int64) (*int, error)
	GetStats(ctx context.Context) (*models.ArticleStats, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

const articleColumns = `a.id, a.title, a.description, a.content, a.category, a.image,
	a.views, a.user_id, COALESCE(u.username, ''), a.created_at, a.updated_at`

func (r *articleRepo) scan(row interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Content, &a.Category, &a.Image,
		&a.Views, &a.UserID, &a.Author, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (title, description, content, category, image, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, views, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, q,
		a.Title,
		a.Description,
		a.Content,
		a.Category,
		a.Image,
		a.UserID,
	).Scan(&a.ID, &a.Views, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *articleRepo) GetAll(ctx context.Context, limit, offset int, category string) ([]*models.Article, int, error) {
	qBase := `
		SELECT ` + articleColumns + `
		FROM articles a
		LEFT JOIN users u ON u.id = a.user_id
	`
	countBase := `SELECT COUNT(*) FROM articles a`

	var where []string
	var args []interface{}
	i := 1

	if category != "" {
		where = append(where, fmt.Sprintf("a.category = $%d", i))
		args = append(args, category)
		i++
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, countBase+clause, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	sql := qBase + clause + fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var list []*models.Article
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}
	return list, total, nil
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	q := `
		SELECT ` + articleColumns + `
		FROM articles a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	return r.scan(r.db.QueryRow(ctx, q, id))
}

func (r *articleRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	return mapError(err)
}

func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	const q = `
		UPDATE articles
		SET title = $1,
		    description = $2,
		    content = $3,
		    category = $4,
		    image = $5,
		    updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, q, a.Title, a.Description, a.Content, a.Category, a.Image, a.ID)
	return mapError(err)
}

// Delete supprime l'article ; commentaires, likes et favoris suivent par
// ON DELETE CASCADE côté schéma.
func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *articleRepo) GetOwnerID(ctx context.Context, id int64) (*int, error) {
	var ownerID *int
	err := r.db.QueryRow(ctx, `SELECT user_id FROM articles WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	return ownerID, nil
}

func (r *articleRepo) GetStats(ctx context.Context) (*models.ArticleStats, error) {
	const q = `
	SELECT
		(SELECT COUNT(*) FROM articles),
		(SELECT COALESCE(SUM(views), 0) FROM articles),
		(SELECT COUNT(*) FROM likes),
		(SELECT COUNT(*) FROM comments)`

	stats := &models.ArticleStats{ByCategory: map[string]int{}}
	err := r.db.QueryRow(ctx, q).Scan(
		&stats.TotalArticles,
		&stats.TotalViews,
		&stats.TotalLikes,
		&stats.TotalComments,
	)
	if err != nil {
		return nil, mapError(err)
	}

	rows, err := r.db.Query(ctx, `SELECT category, COUNT(*) FROM articles GROUP BY category`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, mapError(err)
		}
		stats.ByCategory[category] = count
	}
	return stats, nil
}
