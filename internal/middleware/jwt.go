package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"carnetvoyage/internal/logger"
	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
	helpers "carnetvoyage/internal/utils/helpers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Codes machine renvoyés avec les erreurs 401/403/500 d'authentification.
const (
	CodeTokenMissing = "AUTH_TOKEN_MISSING"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeUserNotFound = "USER_NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeAuthError    = "AUTH_ERROR"
)

// UserProvider charge l'utilisateur référencé par le token. Les comptes
// supprimés ou révoqués sont ainsi rejetés même avec un token encore valide.
type UserProvider interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

type Auth struct {
	secret string
	users  UserProvider
}

func NewAuth(secret string, users UserProvider) *Auth {
	return &Auth{secret: secret, users: users}
}

type authFailure struct {
	status int
	code   string
	msg    string
}

// authenticate déroule les trois étapes : extraction du Bearer, vérification
// de signature/expiration, chargement de l'utilisateur.
func (a *Auth) authenticate(r *http.Request) (*models.PublicUser, *authFailure) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, &authFailure{http.StatusUnauthorized, CodeTokenMissing, "Token d'authentification manquant"}
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(a.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &authFailure{http.StatusUnauthorized, CodeTokenExpired, "Token expiré"}
		}
		return nil, &authFailure{http.StatusUnauthorized, CodeInvalidToken, "Token invalide"}
	}
	if !token.Valid {
		return nil, &authFailure{http.StatusUnauthorized, CodeInvalidToken, "Token invalide"}
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, &authFailure{http.StatusUnauthorized, CodeInvalidToken, "Token invalide"}
	}

	user, err := a.users.GetUserByID(r.Context(), int(rawID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &authFailure{http.StatusUnauthorized, CodeUserNotFound, "Utilisateur introuvable"}
		}
		logger.WithCtx(r.Context()).Error("Auth: échec du chargement utilisateur", zap.Error(err))
		return nil, &authFailure{http.StatusInternalServerError, CodeAuthError, "Erreur d'authentification"}
	}

	return user.Public(), nil
}

// Authenticate exige un Bearer token valide et décore le contexte avec
// l'utilisateur chargé.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		user, fail := a.authenticate(r)
		if fail != nil {
			if fail.status == http.StatusUnauthorized {
				logger.WithCtx(r.Context()).Warn("Auth: requête rejetée", zap.String("code", fail.code))
			}
			helpers.ErrorCode(w, fail.status, fail.code, fail.msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional tente l'authentification mais laisse passer la requête en anonyme
// sur n'importe quel échec. Utilisé pour les likes et commentaires anonymes.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, fail := a.authenticate(r); fail == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// OwnershipOption configure RequireOwnership.
type OwnershipOption func(*ownershipConfig)

type ownershipConfig struct {
	allowMissingParam bool
}

// AllowMissingParam fait passer la requête quand la route ne porte pas le
// paramètre attendu. Opt-in explicite : par défaut l'absence du paramètre est
// une erreur de câblage des routes et vaut 400.
func AllowMissingParam() OwnershipOption {
	return func(c *ownershipConfig) { c.allowMissingParam = true }
}

// RequireOwnership n'autorise que l'utilisateur dont l'id égale le paramètre
// de route nommé. Doit être monté derrière Authenticate.
func RequireOwnership(param string, opts ...OwnershipOption) func(http.Handler) http.Handler {
	cfg := &ownershipConfig{}
	for _, o := range opts {
		o(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, present := mux.Vars(r)[param]
			if !present {
				if cfg.allowMissingParam {
					next.ServeHTTP(w, r)
					return
				}
				logger.WithCtx(r.Context()).Error("Ownership: paramètre de route absent", zap.String("param", param))
				helpers.Error(w, http.StatusBadRequest, "Requête invalide")
				return
			}

			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				helpers.ErrorCode(w, http.StatusUnauthorized, CodeTokenMissing, "Token d'authentification manquant")
				return
			}

			if raw != strconv.Itoa(userID) {
				helpers.ErrorCode(w, http.StatusForbidden, CodeForbidden, "Accès refusé")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
