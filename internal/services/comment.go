package services

import (
	"context"
	"unicode/utf8"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/validation"

	"go.uber.org/zap"
)

const commentMaxLen = 1000

type CommentService struct {
	repo     repository.CommentRepo
	articles repository.ArticleRepo
}

func NewCommentService(repo repository.CommentRepo, articles repository.ArticleRepo) *CommentService {
	return &CommentService{repo: repo, articles: articles}
}

// Create accepte les commentaires anonymes : userID est nil quand l'appelant
// n'est pas connecté, le nom affiché reste obligatoire.
func (s *CommentService) Create(ctx context.Context, userID *int, req models.CreateCommentRequest) (*models.Comment, error) {
	log := logger.WithCtx(ctx)

	name := validation.SanitizeString(req.Name, 50)
	if name == "" || !validation.IsValidName(name) {
		return nil, invalid("Nom invalide")
	}

	content := validation.SanitizeString(req.Content, commentMaxLen)
	if utf8.RuneCountInString(content) < 1 {
		return nil, invalid("Le commentaire ne peut pas être vide")
	}

	c := &models.Comment{
		Name:      name,
		Content:   content,
		ArticleID: req.ArticleID,
		UserID:    userID,
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		log.Error("Erreur de création de commentaire (repo)",
			zap.Int64("article_id", req.ArticleID), zap.Error(err))
		return nil, err
	}

	log.Info("Commentaire créé", zap.Int64("id", created.ID), zap.Int64("article_id", created.ArticleID))
	return created, nil
}

func (s *CommentService) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	return s.repo.ListByArticle(ctx, articleID)
}

// Delete autorise l'auteur du commentaire ou, pour la modération, l'auteur de
// l'article commenté.
func (s *CommentService) Delete(ctx context.Context, id int64, userID int) error {
	log := logger.WithCtx(ctx)

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	allowed := c.UserID != nil && *c.UserID == userID
	if !allowed {
		ownerID, err := s.articles.GetOwnerID(ctx, c.ArticleID)
		if err != nil {
			return err
		}
		allowed = ownerID != nil && *ownerID == userID
	}
	if !allowed {
		log.Warn("Suppression de commentaire refusée", zap.Int64("id", id), zap.Int("user_id", userID))
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Erreur de suppression de commentaire (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("Commentaire supprimé", zap.Int64("id", id))
	return nil
}
