package handlers

import (
	"encoding/json"
	"net/http"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/middleware"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"

	"go.uber.org/zap"
)

type CommentHandler struct {
	svc *services.CommentService
}

func NewCommentHandler(svc *services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create godoc
// @Summary Dépôt d'un commentaire (anonyme autorisé)
// @Tags comments
// @Accept json
// @Produce json
// @Param input body models.CreateCommentRequest true "Commentaire"
// @Success 201 {object} models.Comment
// @Failure 400 {string} string "Erreur de validation"
// @Router /api/comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("JSON invalide dans Create commentaire", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "JSON invalide")
		return
	}

	// Commentaire signé si l'appelant est connecté, anonyme sinon.
	var userID *int
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		userID = &id
	}

	c, err := h.svc.Create(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, c)
}

// ListByArticle godoc
// @Summary Commentaires d'un article
// @Tags comments
// @Produce json
// @Param id path int true "ID de l'article"
// @Success 200 {array} models.Comment
// @Router /api/comments/article/{id} [get]
func (h *CommentHandler) ListByArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	list, err := h.svc.ListByArticle(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Comment{}
	}

	helpers.JSON(w, http.StatusOK, list)
}

// Delete godoc
// @Summary Suppression d'un commentaire (auteur ou auteur de l'article)
// @Tags comments
// @Security ApiKeyAuth
// @Param id path int true "ID du commentaire"
// @Success 200 {string} string "Commentaire supprimé"
// @Failure 403 {string} string "Accès refusé"
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.ErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenMissing, "Token d'authentification manquant")
		return
	}

	id, okID := pathID(r, "id")
	if !okID {
		helpers.Error(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, "Commentaire supprimé")
}
