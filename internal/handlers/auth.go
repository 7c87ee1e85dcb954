package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"carnetvoyage/internal/config"
	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

func (h *AuthHandler) issue(user *models.User) (string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}
	ttl, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		ttl = 24 * time.Hour
	}
	return h.authService.IssueToken(user, cfg.JWTSecret, ttl)
}

// Register godoc
// @Summary Inscription d'un nouveau compte
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Données d'inscription"
// @Success 201 {object} authResponse
// @Failure 400 {string} string "Erreur de validation"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("JSON invalide dans Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "JSON invalide")
		return
	}

	user, err := h.authService.RegisterUser(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := h.issue(user)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, authResponse{Token: token, User: user.Public()})
}

// Login godoc
// @Summary Connexion
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Identifiants"
// @Success 200 {object} authResponse
// @Failure 401 {string} string "Email ou mot de passe incorrect"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("JSON invalide dans Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "JSON invalide")
		return
	}

	user, err := h.authService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := h.issue(user)
	if err != nil {
		respondError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
}
