package handlers

import (
	"errors"
	"net/http"

	"carnetvoyage/internal/config"
	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/middleware"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"

	"go.uber.org/zap"
)

// respondError traduit une erreur de service en réponse HTTP. Les 500 sont
// logués côté serveur et le détail n'est exposé qu'en mode dev.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *services.ValidationError

	switch {
	case errors.As(err, &vErr):
		helpers.Error(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.Error(w, http.StatusUnauthorized, "Email ou mot de passe incorrect")
	case errors.Is(err, services.ErrForbidden):
		helpers.ErrorCode(w, http.StatusForbidden, middleware.CodeForbidden, "Accès refusé")
	case errors.Is(err, repository.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Ressource introuvable")
	default:
		logger.WithCtx(r.Context()).Error("Erreur serveur", zap.Error(err),
			zap.String("path", r.URL.Path), zap.String("method", r.Method))

		msg := "Erreur interne du serveur"
		if cfg, cfgErr := config.LoadConfig(); cfgErr == nil && cfg.Env == "dev" {
			msg = err.Error()
		}
		helpers.Error(w, http.StatusInternalServerError, msg)
	}
}
