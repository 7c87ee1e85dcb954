package handlers

import (
	"encoding/json"
	"net/http"

	"carnetvoyage/internal/middleware"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Profile godoc
// @Summary Profil de l'utilisateur connecté
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.PublicUser
// @Router /api/users/profile [get]
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.ErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenMissing, "Token d'authentification manquant")
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Mise à jour du profil
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.UpdateProfileRequest true "Champs à modifier"
// @Success 200 {object} models.PublicUser
// @Failure 400 {string} string "Erreur de validation"
// @Router /api/users/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.ErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenMissing, "Token d'authentification manquant")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "JSON invalide")
		return
	}

	profile, err := h.svc.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, profile)
}

// Stats godoc
// @Summary Statistiques de l'utilisateur connecté
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.UserStats
// @Router /api/users/stats [get]
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.ErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenMissing, "Token d'authentification manquant")
		return
	}

	stats, err := h.svc.GetStats(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, stats)
}
