package services

import (
	"context"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/validation"

	"go.uber.org/zap"
)

type UserService struct {
	repo UserRepo
}

func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.PublicUser, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, input *models.UpdateProfileRequest) (*models.PublicUser, error) {
	logger.Log.Info("Mise à jour du profil (service)", zap.Int("user_id", userID))

	if input.Username != nil {
		if !validation.IsValidUsername(*input.Username) {
			return nil, invalid("Le nom d'utilisateur doit contenir 3 à 20 caractères alphanumériques ou _")
		}
		current, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if current.Username != *input.Username {
			if taken, err := s.repo.IsUsernameTaken(ctx, *input.Username); err != nil {
				return nil, err
			} else if taken {
				return nil, invalid("Ce nom d'utilisateur est déjà pris")
			}
		}
	}
	if input.Name != nil {
		if !validation.IsValidName(*input.Name) {
			return nil, invalid("Nom invalide")
		}
		clean := validation.SanitizeString(*input.Name, 50)
		input.Name = &clean
	}

	if err := s.repo.UpdateProfile(ctx, userID, input); err != nil {
		logger.Log.Error("Erreur de mise à jour du profil (service)", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserService) GetStats(ctx context.Context, userID int) (*models.UserStats, error) {
	return s.repo.GetUserStats(ctx, userID)
}
