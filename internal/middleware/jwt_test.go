package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
	"carnetvoyage/internal/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret-de-test"

type stubUserProvider struct {
	user *models.User
	err  error
}

func (s *stubUserProvider) GetUserByID(_ context.Context, _ int) (*models.User, error) {
	return s.user, s.err
}

func okHandler(t *testing.T, wantUserID int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, id)
		w.WriteHeader(http.StatusOK)
	})
}

func decodeAuthError(t *testing.T, rec *httptest.ResponseRecorder) (code string) {
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestAuthenticate(t *testing.T) {
	user := &models.User{ID: 42, Email: "luc@exemple.fr", Username: "luc"}

	tests := []struct {
		name       string
		authHeader string
		provider   *stubUserProvider
		wantStatus int
		wantCode   string
	}{
		{
			name:       "sans en-tête",
			authHeader: "",
			provider:   &stubUserProvider{user: user},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeTokenMissing,
		},
		{
			name:       "mauvais schéma",
			authHeader: "Basic abc",
			provider:   &stubUserProvider{user: user},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeTokenMissing,
		},
		{
			name: "mauvais secret",
			authHeader: func() string {
				tok, _ := utils.GenerateToken("autre-secret", 42, time.Hour)
				return "Bearer " + tok
			}(),
			provider:   &stubUserProvider{user: user},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeInvalidToken,
		},
		{
			name: "token expiré",
			authHeader: func() string {
				tok, _ := utils.GenerateToken(testSecret, 42, -time.Minute)
				return "Bearer " + tok
			}(),
			provider:   &stubUserProvider{user: user},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeTokenExpired,
		},
		{
			name: "utilisateur supprimé",
			authHeader: func() string {
				tok, _ := utils.GenerateToken(testSecret, 42, time.Hour)
				return "Bearer " + tok
			}(),
			provider:   &stubUserProvider{err: repository.ErrNotFound},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAuth(testSecret, tt.provider)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/users/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			called := false
			auth.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			})).ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeAuthError(t, rec))
		})
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	user := &models.User{ID: 42, Email: "luc@exemple.fr", Username: "luc"}
	auth := NewAuth(testSecret, &stubUserProvider{user: user})

	tok, err := utils.GenerateToken(testSecret, 42, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	auth.Authenticate(okHandler(t, 42)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticatePreflight(t *testing.T) {
	auth := NewAuth(testSecret, &stubUserProvider{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/articles", nil)

	auth.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("le handler ne doit pas être appelé sur un preflight")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOptional(t *testing.T) {
	user := &models.User{ID: 7, Email: "ana@exemple.fr", Username: "ana"}
	auth := NewAuth(testSecret, &stubUserProvider{user: user})

	t.Run("token valide décore le contexte", func(t *testing.T) {
		tok, err := utils.GenerateToken(testSecret, 7, time.Hour)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/comments", nil)
		req.Header.Set("Authorization", "Bearer "+tok)

		auth.Optional(okHandler(t, 7)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("token invalide passe en anonyme", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/comments", nil)
		req.Header.Set("Authorization", "Bearer nimporte.quoi.ici")

		auth.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := UserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireOwnership(t *testing.T) {
	newRouter := func(opts ...OwnershipOption) (*mux.Router, *bool) {
		called := false
		r := mux.NewRouter()
		r.Handle("/users/{id}", RequireOwnership("id", opts...)(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})))
		r.Handle("/users", RequireOwnership("id", opts...)(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})))
		return r, &called
	}

	withUser := func(req *http.Request, id int) *http.Request {
		u := &models.PublicUser{ID: id}
		return req.WithContext(WithUser(req.Context(), u))
	}

	t.Run("propriétaire", func(t *testing.T) {
		router, called := newRouter()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/users/42", nil), 42))
		assert.True(t, *called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("autre utilisateur", func(t *testing.T) {
		router, called := newRouter()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/users/42", nil), 7))
		assert.False(t, *called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, CodeForbidden, decodeAuthError(t, rec))
	})

	t.Run("paramètre absent vaut 400 par défaut", func(t *testing.T) {
		router, called := newRouter()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/users", nil), 42))
		assert.False(t, *called)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("paramètre absent toléré avec AllowMissingParam", func(t *testing.T) {
		router, called := newRouter(AllowMissingParam())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/users", nil), 42))
		assert.True(t, *called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("sans authentification préalable", func(t *testing.T) {
		router, called := newRouter()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/users/42", nil))
		assert.False(t, *called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
