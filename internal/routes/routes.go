package routes

import (
	"net/http"

	"carnetvoyage/internal/handlers"
	"carnetvoyage/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RateLimits regroupe les limiteurs par groupe de routes.
type RateLimits struct {
	Login    *middleware.RateLimit
	Register *middleware.RateLimit
	API      *middleware.RateLimit
}

func InitRoutes(
	router *mux.Router,
	auth *middleware.Auth,
	limits RateLimits,
	authHandler *handlers.AuthHandler,
	articleHandler *handlers.ArticleHandler,
	commentHandler *handlers.CommentHandler,
	reactionHandler *handlers.ReactionHandler,
	userHandler *handlers.UserHandler,
	contactHandler *handlers.ContactHandler,
	seedHandler *handlers.SeedHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Metrics)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limits.API.Handler)

	api.HandleFunc("/health", handlers.Health).Methods("GET")

	// --- Auth, limiteurs dédiés anti brute-force ---
	api.Handle("/auth/register",
		limits.Register.Handler(http.HandlerFunc(authHandler.Register))).Methods("POST")
	api.Handle("/auth/login",
		limits.Login.Handler(http.HandlerFunc(authHandler.Login))).Methods("POST")

	// --- Articles publics ---
	api.HandleFunc("/articles", articleHandler.GetAll).Methods("GET")
	api.HandleFunc("/articles/stats/all", articleHandler.Stats).Methods("GET")
	api.HandleFunc("/articles/{id:[0-9]+}", articleHandler.GetByID).Methods("GET")

	// --- Commentaires : dépôt anonyme autorisé ---
	api.Handle("/comments",
		auth.Optional(http.HandlerFunc(commentHandler.Create))).Methods("POST")
	api.HandleFunc("/comments/article/{id:[0-9]+}", commentHandler.ListByArticle).Methods("GET")
	api.Handle("/comments/{id:[0-9]+}",
		auth.Authenticate(http.HandlerFunc(commentHandler.Delete))).Methods("DELETE")

	// --- Likes et favoris : anonyme accepté, identifié par IP ---
	api.Handle("/likes/toggle/{articleId:[0-9]+}",
		auth.Optional(http.HandlerFunc(reactionHandler.ToggleLike))).Methods("POST")
	api.Handle("/likes/{articleId:[0-9]+}",
		auth.Optional(http.HandlerFunc(reactionHandler.GetLikes))).Methods("GET")
	api.Handle("/favorites/toggle/{articleId:[0-9]+}",
		auth.Optional(http.HandlerFunc(reactionHandler.ToggleFavorite))).Methods("POST")

	// --- Contact ---
	api.HandleFunc("/contact", contactHandler.Submit).Methods("POST")

	// --- Seed (protégé par X-Seed-Key) ---
	api.HandleFunc("/seed", seedHandler.Seed).Methods("POST")

	// --- Routes protégées JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Authenticate)

	protected.HandleFunc("/articles", articleHandler.Create).Methods("POST")
	protected.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Update).Methods("PUT")
	protected.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/favorites/user", reactionHandler.UserFavorites).Methods("GET")
	protected.HandleFunc("/favorites/count", reactionHandler.FavoritesCount).Methods("GET")

	protected.HandleFunc("/users/profile", userHandler.Profile).Methods("GET")
	protected.HandleFunc("/users/profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/users/stats", userHandler.Stats).Methods("GET")
}
