package services

import (
	"context"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"

	"go.uber.org/zap"
)

type ReactionService struct {
	repo repository.ReactionRepo
}

func NewReactionService(repo repository.ReactionRepo) *ReactionService {
	return &ReactionService{repo: repo}
}

func (s *ReactionService) ToggleLike(ctx context.Context, articleID int64, key repository.ReactionKey) (*models.ToggleLikeResponse, error) {
	log := logger.WithCtx(ctx)

	liked, err := s.repo.ToggleLike(ctx, articleID, key)
	if err != nil {
		log.Error("Erreur de toggle like (repo)", zap.Int64("article_id", articleID), zap.Error(err))
		return nil, err
	}

	count, err := s.repo.CountLikes(ctx, articleID)
	if err != nil {
		return nil, err
	}

	log.Info("Like basculé", zap.Int64("article_id", articleID), zap.Bool("liked", liked))
	return &models.ToggleLikeResponse{Liked: liked, Count: count}, nil
}

// GetLikes retourne le compteur et l'état pour l'appelant courant.
func (s *ReactionService) GetLikes(ctx context.Context, articleID int64, key repository.ReactionKey) (*models.ToggleLikeResponse, error) {
	count, err := s.repo.CountLikes(ctx, articleID)
	if err != nil {
		return nil, err
	}
	liked, err := s.repo.HasLiked(ctx, articleID, key)
	if err != nil {
		return nil, err
	}
	return &models.ToggleLikeResponse{Liked: liked, Count: count}, nil
}

func (s *ReactionService) ToggleFavorite(ctx context.Context, articleID int64, key repository.ReactionKey) (*models.ToggleFavoriteResponse, error) {
	log := logger.WithCtx(ctx)

	favorited, err := s.repo.ToggleFavorite(ctx, articleID, key)
	if err != nil {
		log.Error("Erreur de toggle favori (repo)", zap.Int64("article_id", articleID), zap.Error(err))
		return nil, err
	}

	count, err := s.repo.CountFavorites(ctx, articleID)
	if err != nil {
		return nil, err
	}

	log.Info("Favori basculé", zap.Int64("article_id", articleID), zap.Bool("favorited", favorited))
	return &models.ToggleFavoriteResponse{Favorited: favorited, Count: count}, nil
}

func (s *ReactionService) ListUserFavorites(ctx context.Context, userID int) ([]*models.Article, error) {
	return s.repo.ListUserFavorites(ctx, userID)
}

func (s *ReactionService) CountUserFavorites(ctx context.Context, userID int) (int, error) {
	return s.repo.CountUserFavorites(ctx, userID)
}
