package main

import (
	"net/http"

	_ "carnetvoyage/docs"
	"carnetvoyage/internal/app"
	"carnetvoyage/internal/config"
	"carnetvoyage/internal/logger"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Taille maximale d'un corps de requête. Les articles font au plus 10 000
// caractères, aucune raison d'accepter plus gros.
const maxBodyBytes = 10 << 20

// @title Carnet de Voyage API
// @version 1.0
// @description API du blog de voyage : articles, commentaires, likes, favoris.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Log, cfg.LogLevel)
	defer logger.Log.Sync()

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		logger.Log.Warn(w)
	}
	if err != nil {
		logger.Log.Fatal("config invalide", zap.Error(err))
	}

	router, err := app.InitApp(cfg)
	if err != nil {
		logger.Log.Fatal("initialisation impossible", zap.Error(err))
	}

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Seed-Key"},
	})

	handler := http.MaxBytesHandler(corsMiddleware.Handler(router), maxBodyBytes)

	logger.Log.Info("serveur démarré",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("db", cfg.GetDSNSafe()),
	)

	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Log.Fatal("arrêt du serveur", zap.Error(err))
	}
}
