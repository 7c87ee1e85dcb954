package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"carnetvoyage/internal/config"
	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/services"
	helpers "carnetvoyage/internal/utils/helpers"

	"go.uber.org/zap"
)

type SeedHandler struct {
	authService *services.AuthService
	articleSvc  services.ArticleService
}

func NewSeedHandler(authService *services.AuthService, articleSvc services.ArticleService) *SeedHandler {
	return &SeedHandler{authService: authService, articleSvc: articleSvc}
}

var seedArticles = []models.CreateArticleRequest{
	{
		Title:       "Trois jours à Lisbonne",
		Description: "Itinéraire et bonnes adresses pour un week-end prolongé dans la capitale portugaise",
		Category:    "destinations",
		Content: "<p>De l'Alfama à Belém, Lisbonne se découvre à pied et en tramway. " +
			"Premier jour : ruelles du vieux quartier, miradouros au coucher du soleil, " +
			"puis dîner de poisson grillé près du port. Deuxième jour : Belém, ses pasteis " +
			"et le monastère des Hiéronymites. Troisième jour : LX Factory et les quais.</p>",
	},
	{
		Title:       "Préparer un trek au Népal",
		Description: "Matériel, acclimatation et permis : tout ce qu'il faut anticiper avant de partir",
		Category:    "conseils",
		Content: "<p>Un trek en haute altitude ne s'improvise pas. Comptez deux jours " +
			"d'acclimatation au-dessus de 3500 m, un duvet confort -10°C et des chaussures " +
			"déjà rodées. Les permis TIMS et d'entrée de parc s'obtiennent à Katmandou ; " +
			"prévoyez des photos d'identité et des espèces.</p>",
	},
	{
		Title:       "Fêtes de Gion à Kyoto",
		Description: "Un mois de processions et de chars somptueux au cœur de l'été japonais",
		Category:    "culture",
		Content: "<p>Chaque mois de juillet, le festival de Gion transforme Kyoto. Les " +
			"yamaboko, chars de plusieurs tonnes tirés à la corde, défilent dans une foule " +
			"en yukata. Réservez votre hébergement des mois à l'avance et visez les soirées " +
			"yoiyama, quand les lanternes s'allument sur les chars à l'arrêt.</p>",
	},
}

// Seed godoc
// @Summary Insère un jeu de données de démonstration
// @Description Protégé par l'en-tête X-Seed-Key ; 404 si SEED_SECRET_KEY n'est pas configurée.
// @Tags seed
// @Produce json
// @Param X-Seed-Key header string true "Clé de seed"
// @Success 201 {string} string "Données insérées"
// @Failure 403 {string} string "Clé invalide"
// @Router /api/seed [post]
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	cfg, err := config.LoadConfig()
	if err != nil || strings.TrimSpace(cfg.SeedSecretKey) == "" {
		// Endpoint invisible tant que la clé n'est pas configurée.
		http.NotFound(w, r)
		return
	}

	key := r.Header.Get("X-Seed-Key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.SeedSecretKey)) != 1 {
		logger.WithCtx(r.Context()).Warn("Seed: clé invalide")
		helpers.ErrorCode(w, http.StatusForbidden, "FORBIDDEN", "Clé de seed invalide")
		return
	}

	user, err := h.authService.RegisterUser(r.Context(), services.RegisterInput{
		Email:    "demo@carnetvoyage.fr",
		Username: "demo_voyageur",
		Password: "Demo!Voyage2024",
		Name:     "Voyageur Démo",
	})
	if err != nil {
		// Seed déjà passé : le compte existe, on s'arrête là.
		respondError(w, r, err)
		return
	}

	created := 0
	for _, req := range seedArticles {
		if _, err := h.articleSvc.Create(r.Context(), user.ID, req); err != nil {
			logger.WithCtx(r.Context()).Error("Seed: création d'article en échec", zap.Error(err))
			continue
		}
		created++
	}

	logger.WithCtx(r.Context()).Info("Seed terminé", zap.Int("articles", created))
	helpers.JSON(w, http.StatusCreated, map[string]int{"articles": created})
}
