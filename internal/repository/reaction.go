package repository

import (
	"context"
	"fmt"

	"carnetvoyage/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReactionKey identifie l'auteur d'une réaction : utilisateur authentifié,
// sinon client anonyme repéré par son IP.
type ReactionKey struct {
	UserID    *int
	ClientKey string
}

type ReactionRepo interface {
	ToggleLike(ctx context.Context, articleID int64, key ReactionKey) (bool, error)
	CountLikes(ctx context.Context, articleID int64) (int, error)
	HasLiked(ctx context.Context, articleID int64, key ReactionKey) (bool, error)

	ToggleFavorite(ctx context.Context, articleID int64, key ReactionKey) (bool, error)
	CountFavorites(ctx context.Context, articleID int64) (int, error)
	HasFavorited(ctx context.Context, articleID int64, key ReactionKey) (bool, error)
	ListUserFavorites(ctx context.Context, userID int) ([]*models.Article, error)
	CountUserFavorites(ctx context.Context, userID int) (int, error)
}

type reactionRepo struct{ db *pgxpool.Pool }

func NewReactionRepo(db *pgxpool.Pool) ReactionRepo { return &reactionRepo{db: db} }

const (
	tableLikes     = "likes"
	tableFavorites = "favorites"
)

// toggle est un aller-retour atomique : INSERT ... ON CONFLICT DO NOTHING,
// puis DELETE si la ligne existait déjà. Les index partiels d'unicité sont la
// garantie de correction, pas une lecture préalable.
func (r *reactionRepo) toggle(ctx context.Context, table string, articleID int64, key ReactionKey) (bool, error) {
	insert := fmt.Sprintf(`
		INSERT INTO %s (article_id, user_id, client_key)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`, table)

	tag, err := r.db.Exec(ctx, insert, articleID, key.UserID, key.ClientKey)
	if err != nil {
		return false, mapError(err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	// Déjà présent : on retire.
	if key.UserID != nil {
		del := fmt.Sprintf(`DELETE FROM %s WHERE article_id = $1 AND user_id = $2`, table)
		_, err = r.db.Exec(ctx, del, articleID, *key.UserID)
	} else {
		del := fmt.Sprintf(`DELETE FROM %s WHERE article_id = $1 AND user_id IS NULL AND client_key = $2`, table)
		_, err = r.db.Exec(ctx, del, articleID, key.ClientKey)
	}
	return false, mapError(err)
}

func (r *reactionRepo) count(ctx context.Context, table string, articleID int64) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE article_id = $1`, table)
	var n int
	if err := r.db.QueryRow(ctx, q, articleID).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *reactionRepo) has(ctx context.Context, table string, articleID int64, key ReactionKey) (bool, error) {
	var (
		q    string
		args []interface{}
	)
	if key.UserID != nil {
		q = fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE article_id = $1 AND user_id = $2)`, table)
		args = []interface{}{articleID, *key.UserID}
	} else {
		q = fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE article_id = $1 AND user_id IS NULL AND client_key = $2)`, table)
		args = []interface{}{articleID, key.ClientKey}
	}
	var exists bool
	if err := r.db.QueryRow(ctx, q, args...).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *reactionRepo) ToggleLike(ctx context.Context, articleID int64, key ReactionKey) (bool, error) {
	return r.toggle(ctx, tableLikes, articleID, key)
}

func (r *reactionRepo) CountLikes(ctx context.Context, articleID int64) (int, error) {
	return r.count(ctx, tableLikes, articleID)
}

func (r *reactionRepo) HasLiked(ctx context.Context, articleID int64, key ReactionKey) (bool, error) {
	return r.has(ctx, tableLikes, articleID, key)
}

func (r *reactionRepo) ToggleFavorite(ctx context.Context, articleID int64, key ReactionKey) (bool, error) {
	return r.toggle(ctx, tableFavorites, articleID, key)
}

func (r *reactionRepo) CountFavorites(ctx context.Context, articleID int64) (int, error) {
	return r.count(ctx, tableFavorites, articleID)
}

func (r *reactionRepo) HasFavorited(ctx context.Context, articleID int64, key ReactionKey) (bool, error) {
	return r.has(ctx, tableFavorites, articleID, key)
}

func (r *reactionRepo) ListUserFavorites(ctx context.Context, userID int) ([]*models.Article, error) {
	const q = `
		SELECT a.id, a.title, a.description, a.content, a.category, a.image,
			a.views, a.user_id, COALESCE(u.username, ''), a.created_at, a.updated_at
		FROM favorites f
		JOIN articles a ON a.id = f.article_id
		LEFT JOIN users u ON u.id = a.user_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var list []*models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Content, &a.Category, &a.Image,
			&a.Views, &a.UserID, &a.Author, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		list = append(list, &a)
	}
	return list, nil
}

func (r *reactionRepo) CountUserFavorites(ctx context.Context, userID int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
