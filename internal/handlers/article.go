package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/middleware"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

type articleListResponse struct {
	Articles []*models.Article `json:"articles"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

func pathID(r *http.Request, name string) (int64, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetAll godoc
// @Summary Liste paginée des articles
// @Tags articles
// @Produce json
// @Param page query int false "Page (défaut 1)"
// @Param limit query int false "Taille de page (défaut 10, max 50)"
// @Param category query string false "Filtre par catégorie"
// @Success 200 {object} articleListResponse
// @Router /api/articles [get]
func (h *ArticleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}
	category := r.URL.Query().Get("category")

	articles, total, err := h.svc.GetAll(r.Context(), limit, (page-1)*limit, category)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	helpers.JSON(w, http.StatusOK, articleListResponse{
		Articles: articles,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

// GetByID godoc
// @Summary Détail d'un article (incrémente le compteur de vues)
// @Tags articles
// @Produce json
// @Param id path int true "ID de l'article"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "Article introuvable"
// @Router /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	a, err := h.svc.GetByID(r.Context(), id, true)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, a)
}

// Create godoc
// @Summary Création d'un article
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateArticleRequest true "Article"
// @Success 201 {object} models.Article
// @Failure 400 {string} string "Erreur de validation"
// @Router /api/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.ErrorCode(w, http.StatusUnauthorized, middleware.CodeTokenMissing, "Token d'authentification manquant")
		return
	}

	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("JSON invalide dans Create article", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "JSON invalide")
		return
	}

	a, err := h.svc.Create(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, a)
}

// Update godoc
// @Summary Mise à jour d'un article (propriétaire uniquement)
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID de l'article"
// @Param input body models.CreateArticleRequest true "Article"
// @Success 200 {object} models.Article
// @Failure 403 {string} string "Accès refusé"
// @Router /api/articles/{id} [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "JSON invalide")
		return
	}

	a, err := h.svc.Update(r.Context(), id, userID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, a)
}

// Delete godoc
// @Summary Suppression d'un article (propriétaire uniquement)
// @Tags articles
// @Security ApiKeyAuth
// @Param id path int true "ID de l'article"
// @Success 200 {string} string "Article supprimé"
// @Failure 403 {string} string "Accès refusé"
// @Router /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	helpers.JSON(w, http.StatusOK, "Article supprimé")
}

// Stats godoc
// @Summary Statistiques globales des articles
// @Tags articles
// @Produce json
// @Success 200 {object} models.ArticleStats
// @Router /api/articles/stats/all [get]
func (h *ArticleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, stats)
}
