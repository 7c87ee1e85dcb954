package middleware

import (
	"net/http"
	"runtime/debug"

	"carnetvoyage/internal/logger"
	helpers "carnetvoyage/internal/utils/helpers"

	"go.uber.org/zap"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := []zap.Field{
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				}
				if rid, ok := logger.RequestID(r.Context()); ok {
					fields = append(fields, zap.String("request_id", rid))
				}
				logger.Log.Error("panic récupéré", fields...)

				helpers.Error(w, http.StatusInternalServerError, "Erreur interne du serveur")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
