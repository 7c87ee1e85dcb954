package handlers

import (
	"encoding/json"
	"net/http"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"

	"go.uber.org/zap"
)

type ContactHandler struct {
	svc *services.ContactService
}

func NewContactHandler(svc *services.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit godoc
// @Summary Envoi d'un message de contact
// @Tags contact
// @Accept json
// @Produce json
// @Param input body models.ContactRequest true "Message"
// @Success 201 {string} string "Message envoyé"
// @Failure 400 {string} string "Erreur de validation"
// @Router /api/contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("JSON invalide dans Contact", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "JSON invalide")
		return
	}

	if _, err := h.svc.Submit(r.Context(), req); err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, "Message envoyé, merci !")
}
