package services

import (
	"context"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/validation"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ArticleService interface {
	Create(ctx context.Context, userID int, req models.CreateArticleRequest) (*models.Article, error)
	GetAll(ctx context.Context, limit, offset int, category string) ([]*models.Article, int, error)
	GetByID(ctx context.Context, id int64, countView bool) (*models.Article, error)
	Update(ctx context.Context, id int64, userID int, req models.CreateArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64, userID int) error
	GetStats(ctx context.Context) (*models.ArticleStats, error)
}

type articleService struct {
	repo   repository.ArticleRepo
	policy *bluemonday.Policy
}

func NewArticleService(repo repository.ArticleRepo) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &articleService{repo: repo, policy: p}
}

// validate contrôle les champs d'une requête de création/édition et retourne
// la version nettoyée.
func (s *articleService) validate(req models.CreateArticleRequest) (models.CreateArticleRequest, error) {
	if r := validation.ValidateArticleTitle(req.Title); !r.IsValid {
		return req, invalid(r.Error)
	} else {
		req.Title = r.Sanitized
	}
	if r := validation.ValidateArticleDescription(req.Description); !r.IsValid {
		return req, invalid(r.Error)
	} else {
		req.Description = r.Sanitized
	}
	if r := validation.ValidateArticleContent(req.Content); !r.IsValid {
		return req, invalid(r.Error)
	} else {
		req.Content = s.policy.Sanitize(r.Sanitized)
	}
	if !validation.IsValidCategory(req.Category) {
		return req, invalid("Catégorie invalide")
	}
	if !validation.IsValidImageURL(req.Image) {
		return req, invalid("URL d'image invalide")
	}
	return req, nil
}

func (s *articleService) Create(ctx context.Context, userID int, req models.CreateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Création d'article",
		zap.Int("user_id", userID),
		zap.String("category", req.Category),
	)

	req, err := s.validate(req)
	if err != nil {
		log.Warn("Validation d'article refusée", zap.Error(err))
		return nil, err
	}

	a := &models.Article{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Image:       req.Image,
		UserID:      &userID,
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		log.Error("Erreur de création d'article (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Article créé", zap.Int64("id", created.ID))
	return created, nil
}

func (s *articleService) GetAll(ctx context.Context, limit, offset int, category string) ([]*models.Article, int, error) {
	if category != "" && !validation.IsValidCategory(category) {
		return nil, 0, invalid("Catégorie invalide")
	}
	return s.repo.GetAll(ctx, limit, offset, category)
}

func (s *articleService) GetByID(ctx context.Context, id int64, countView bool) (*models.Article, error) {
	log := logger.WithCtx(ctx)

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Article introuvable (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if countView {
		// Compteur best-effort : une erreur n'empêche pas la lecture.
		if err := s.repo.IncrementViews(ctx, id); err != nil {
			log.Warn("Incrément de vues en échec", zap.Int64("id", id), zap.Error(err))
		} else {
			a.Views++
		}
	}

	return a, nil
}

func (s *articleService) requireOwner(ctx context.Context, id int64, userID int) error {
	ownerID, err := s.repo.GetOwnerID(ctx, id)
	if err != nil {
		return err
	}
	if ownerID == nil || *ownerID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *articleService) Update(ctx context.Context, id int64, userID int, req models.CreateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Mise à jour d'article", zap.Int64("id", id), zap.Int("user_id", userID))

	if err := s.requireOwner(ctx, id, userID); err != nil {
		return nil, err
	}

	req, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Title = req.Title
	a.Description = req.Description
	a.Content = req.Content
	a.Category = req.Category
	a.Image = req.Image

	if err := s.repo.Update(ctx, a); err != nil {
		log.Error("Erreur de mise à jour d'article (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return a, nil
}

func (s *articleService) Delete(ctx context.Context, id int64, userID int) error {
	log := logger.WithCtx(ctx)
	log.Info("Suppression d'article", zap.Int64("id", id), zap.Int("user_id", userID))

	if err := s.requireOwner(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Erreur de suppression d'article (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *articleService) GetStats(ctx context.Context) (*models.ArticleStats, error) {
	return s.repo.GetStats(ctx)
}
