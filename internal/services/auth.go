package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/utils"
	"carnetvoyage/internal/validation"

	"go.uber.org/zap"
)

type UserRepo interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, input *models.UpdateProfileRequest) error
	GetUserStats(ctx context.Context, userID int) (*models.UserStats, error)
}

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*models.User, error) {
	logger.Log.Info("Inscription (service)", zap.String("username", input.Username), zap.String("email", input.Email))

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validation.IsValidEmail(email) {
		return nil, invalid("Adresse email invalide")
	}
	if !validation.IsValidUsername(input.Username) {
		return nil, invalid("Le nom d'utilisateur doit contenir 3 à 20 caractères alphanumériques ou _")
	}
	if !validation.IsValidName(input.Name) {
		return nil, invalid("Nom invalide")
	}
	if pw := validation.ValidatePassword(input.Password); !pw.IsValid {
		return nil, invalid(pw.Errors[0])
	}

	if taken, err := s.repo.IsEmailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, invalid("Cette adresse email est déjà enregistrée")
	}
	if taken, err := s.repo.IsUsernameTaken(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, invalid("Ce nom d'utilisateur est déjà pris")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		logger.Log.Error("Erreur de hachage du mot de passe", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     input.Username,
		Name:         validation.SanitizeString(input.Name, 50),
		PasswordHash: hashed,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("Cette adresse email ou ce nom d'utilisateur est déjà enregistré")
		}
		logger.Log.Error("Erreur de création utilisateur", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Utilisateur inscrit (service)", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Log.Info("Tentative de connexion (service)", zap.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Mot de passe incorrect (service)", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	logger.Log.Info("Connexion réussie (service)", zap.Int("user_id", user.ID))
	return user, nil
}

// IssueToken génère l'access-token du compte.
func (s *AuthService) IssueToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	return utils.GenerateToken(secret, user.ID, ttl)
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
