package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/validation"

	"go.uber.org/zap"
)

const (
	contactMessageMinLen = 10
	contactMessageMaxLen = 2000
)

type ContactService struct {
	repo repository.ContactRepo
}

func NewContactService(repo repository.ContactRepo) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	log := logger.WithCtx(ctx)

	name := validation.SanitizeString(req.Name, 50)
	if name == "" || !validation.IsValidName(name) {
		return nil, invalid("Nom invalide")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, invalid("Adresse email invalide")
	}

	message := validation.SanitizeString(req.Message, contactMessageMaxLen)
	if utf8.RuneCountInString(message) < contactMessageMinLen {
		return nil, invalid("Le message doit contenir au moins 10 caractères")
	}

	m := &models.ContactMessage{Name: name, Email: email, Message: message}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		log.Error("Erreur d'enregistrement du message de contact (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Message de contact reçu", zap.Int64("id", created.ID))
	return created, nil
}
