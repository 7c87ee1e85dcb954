package repository

import (
	"context"
	"fmt"
	"strings"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Création utilisateur (repo)", zap.String("username", user.Username), zap.String("email", user.Email))
	query := `
	INSERT INTO users (email, username, name, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.Name,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapError(err)
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Erreur de vérification email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		logger.Log.Error("Erreur de vérification username (repo)", zap.Error(err))
	}
	return exists, err
}

const userColumns = `id, email, username, name, password_hash, created_at, updated_at`

func (r *UserRepository) scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int, input *models.UpdateProfileRequest) error {
	logger.Log.Info("Mise à jour du profil (repo)", zap.Int("user_id", id))
	query := `UPDATE users SET`
	var args []interface{}
	argNum := 1

	if input.Username != nil {
		query += fmt.Sprintf(" username = $%d,", argNum)
		args = append(args, *input.Username)
		argNum++
	}
	if input.Name != nil {
		query += fmt.Sprintf(" name = $%d,", argNum)
		args = append(args, *input.Name)
		argNum++
	}

	if len(args) == 0 {
		return nil
	}

	query = strings.TrimSuffix(query, ",") + fmt.Sprintf(", updated_at = NOW() WHERE id = $%d", argNum)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Erreur de mise à jour du profil (repo)", zap.Error(err), zap.Int("user_id", id))
	}
	return mapError(err)
}

func (r *UserRepository) GetUserStats(ctx context.Context, userID int) (*models.UserStats, error) {
	const query = `
	SELECT
		(SELECT COUNT(*) FROM articles WHERE user_id = $1),
		(SELECT COALESCE(SUM(views), 0) FROM articles WHERE user_id = $1),
		(SELECT COUNT(*) FROM comments WHERE user_id = $1),
		(SELECT COUNT(*) FROM likes WHERE user_id = $1),
		(SELECT COUNT(*) FROM favorites WHERE user_id = $1)`

	var s models.UserStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.Articles,
		&s.TotalViews,
		&s.Comments,
		&s.Likes,
		&s.Favorites,
	)
	if err != nil {
		logger.Log.Error("Erreur stats utilisateur (repo)", zap.Int("user_id", userID), zap.Error(err))
		return nil, mapError(err)
	}
	return &s, nil
}
