package handlers

import (
	"net/http"

	"carnetvoyage/internal/middleware"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"
)

type ReactionHandler struct {
	svc *services.ReactionService
}

func NewReactionHandler(svc *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

// reactionKey identifie l'appelant : utilisateur connecté, sinon IP cliente.
func reactionKey(r *http.Request) repository.ReactionKey {
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		return repository.ReactionKey{UserID: &id}
	}
	return repository.ReactionKey{ClientKey: middleware.ClientIP(r)}
}

// ToggleLike godoc
// @Summary Bascule le like de l'appelant sur un article
// @Tags likes
// @Produce json
// @Param articleId path int true "ID de l'article"
// @Success 200 {object} models.ToggleLikeResponse
// @Failure 404 {string} string "Article introuvable"
// @Router /api/likes/toggle/{articleId} [post]
func (h *ReactionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "articleId")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	resp, err := h.svc.ToggleLike(r.Context(), id, reactionKey(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, resp)
}

// GetLikes godoc
// @Summary Compteur de likes et état pour l'appelant
// @Tags likes
// @Produce json
// @Param articleId path int true "ID de l'article"
// @Success 200 {object} models.ToggleLikeResponse
// @Router /api/likes/{articleId} [get]
func (h *ReactionHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "articleId")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	resp, err := h.svc.GetLikes(r.Context(), id, reactionKey(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, resp)
}

// ToggleFavorite godoc
// @Summary Bascule le favori de l'appelant sur un article
// @Tags favorites
// @Produce json
// @Param articleId path int true "ID de l'article"
// @Success 200 {object} models.ToggleFavoriteResponse
// @Failure 404 {string} string "Article introuvable"
// @Router /api/favorites/toggle/{articleId} [post]
func (h *ReactionHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "articleId")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	resp, err := h.svc.ToggleFavorite(r.Context(), id, reactionKey(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, resp)
}

// UserFavorites godoc
// @Summary Articles favoris de l'utilisateur connecté
// @Tags favorites
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Article
// @Router /api/favorites/user [get]
func (h *ReactionHandler) UserFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.ErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenMissing, "Token d'authentification manquant")
		return
	}

	list, err := h.svc.ListUserFavorites(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Article{}
	}

	helpers.JSON(w, http.StatusOK, list)
}

// FavoritesCount godoc
// @Summary Nombre de favoris de l'utilisateur connecté
// @Tags favorites
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/favorites/count [get]
func (h *ReactionHandler) FavoritesCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.ErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenMissing, "Token d'authentification manquant")
		return
	}

	count, err := h.svc.CountUserFavorites(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]int{"count": count})
}
