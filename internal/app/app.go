package app

import (
	"time"

	"carnetvoyage/internal/config"
	"carnetvoyage/internal/db"
	"carnetvoyage/internal/handlers"
	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/middleware"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/routes"
	"carnetvoyage/internal/services"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Dépôts
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepo(conn)
	commentRepo := repository.NewCommentRepo(conn)
	reactionRepo := repository.NewReactionRepo(conn)
	contactRepo := repository.NewContactRepo(conn)

	// Services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	articleSvc := services.NewArticleService(articleRepo)
	commentSvc := services.NewCommentService(commentRepo, articleRepo)
	reactionSvc := services.NewReactionService(reactionRepo)
	contactSvc := services.NewContactService(contactRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleSvc)
	commentHandler := handlers.NewCommentHandler(commentSvc)
	reactionHandler := handlers.NewReactionHandler(reactionSvc)
	userHandler := handlers.NewUserHandler(userService)
	contactHandler := handlers.NewContactHandler(contactSvc)
	seedHandler := handlers.NewSeedHandler(authService, articleSvc)

	auth := middleware.NewAuth(cfg.JWTSecret, userRepo)

	store := newCounterStore(cfg)

	limits := routes.RateLimits{
		Login:    middleware.NewRateLimit(store, "login", 5, 15*time.Minute),
		Register: middleware.NewRateLimit(store, "register", 3, 60*time.Minute),
		API:      middleware.NewRateLimit(store, "api", 100, 15*time.Minute),
	}

	router := mux.NewRouter()
	routes.InitRoutes(router, auth, limits,
		authHandler, articleHandler, commentHandler, reactionHandler,
		userHandler, contactHandler, seedHandler)

	return router, nil
}

// newCounterStore choisit Redis si configuré, sinon un compteur en mémoire
// nettoyé périodiquement.
func newCounterStore(cfg *config.Config) middleware.CounterStore {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logger.Log.Info("rate-limit sur Redis", zap.String("addr", cfg.RedisAddr))
		return middleware.NewRedisStore(client, "ratelimit")
	}

	mem := middleware.NewMemoryStore()
	startStoreSweeper(mem)
	logger.Log.Info("rate-limit en mémoire")
	return mem
}

func startStoreSweeper(mem *middleware.MemoryStore) {
	c := cron.New()
	// Les fenêtres expirées s'accumulent sinon à raison d'une entrée par IP.
	if _, err := c.AddFunc("@every 5m", mem.Sweep); err != nil {
		logger.Log.Error("planification du nettoyage impossible", zap.Error(err))
		return
	}
	c.Start()
}
