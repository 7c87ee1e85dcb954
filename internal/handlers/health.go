package handlers

import (
	"net/http"
	"time"

	"carnetvoyage/internal/config"
	helpers "carnetvoyage/internal/utils/helpers"
)

var startTime = time.Now()

type healthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

// Health godoc
// @Summary Sonde de vivacité
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /api/health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	env := "prod"
	if cfg, err := config.LoadConfig(); err == nil {
		env = cfg.Env
	}

	helpers.JSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(startTime).Seconds(),
		Environment: env,
	})
}
