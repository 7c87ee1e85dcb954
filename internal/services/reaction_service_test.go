package services

import (
	"context"
	"fmt"
	"testing"

	"carnetvoyage/internal/models"
	"carnetvoyage/internal/repository"
)

// Dépôt factice : une réaction = (article, identité) dans un set.
type mockReactionRepo struct {
	likes     map[string]bool
	favorites map[string]bool
}

func newMockReactionRepo() *mockReactionRepo {
	return &mockReactionRepo{likes: make(map[string]bool), favorites: make(map[string]bool)}
}

func reactionID(articleID int64, key repository.ReactionKey) string {
	if key.UserID != nil {
		return fmt.Sprintf("%d:user:%d", articleID, *key.UserID)
	}
	return fmt.Sprintf("%d:anon:%s", articleID, key.ClientKey)
}

func toggleIn(set map[string]bool, id string) bool {
	if set[id] {
		delete(set, id)
		return false
	}
	set[id] = true
	return true
}

func (m *mockReactionRepo) ToggleLike(_ context.Context, articleID int64, key repository.ReactionKey) (bool, error) {
	return toggleIn(m.likes, reactionID(articleID, key)), nil
}

func (m *mockReactionRepo) CountLikes(_ context.Context, _ int64) (int, error) {
	return len(m.likes), nil
}

func (m *mockReactionRepo) HasLiked(_ context.Context, articleID int64, key repository.ReactionKey) (bool, error) {
	return m.likes[reactionID(articleID, key)], nil
}

func (m *mockReactionRepo) ToggleFavorite(_ context.Context, articleID int64, key repository.ReactionKey) (bool, error) {
	return toggleIn(m.favorites, reactionID(articleID, key)), nil
}

func (m *mockReactionRepo) CountFavorites(_ context.Context, _ int64) (int, error) {
	return len(m.favorites), nil
}

func (m *mockReactionRepo) HasFavorited(_ context.Context, articleID int64, key repository.ReactionKey) (bool, error) {
	return m.favorites[reactionID(articleID, key)], nil
}

func (m *mockReactionRepo) ListUserFavorites(_ context.Context, _ int) ([]*models.Article, error) {
	return nil, nil
}

func (m *mockReactionRepo) CountUserFavorites(_ context.Context, _ int) (int, error) {
	return len(m.favorites), nil
}

func userKey(id int) repository.ReactionKey {
	return repository.ReactionKey{UserID: &id}
}

func TestToggleLike(t *testing.T) {
	service := NewReactionService(newMockReactionRepo())
	ctx := context.Background()

	res, err := service.ToggleLike(ctx, 1, userKey(42))
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if !res.Liked || res.Count != 1 {
		t.Errorf("premier toggle : attendu liked=true count=1, reçu liked=%v count=%d", res.Liked, res.Count)
	}

	res, err = service.ToggleLike(ctx, 1, userKey(42))
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if res.Liked || res.Count != 0 {
		t.Errorf("second toggle : attendu liked=false count=0, reçu liked=%v count=%d", res.Liked, res.Count)
	}
}

func TestToggleLikeAnonymous(t *testing.T) {
	service := NewReactionService(newMockReactionRepo())
	ctx := context.Background()

	anon := repository.ReactionKey{ClientKey: "203.0.113.5"}

	res, err := service.ToggleLike(ctx, 1, anon)
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if !res.Liked {
		t.Error("le like anonyme doit être accepté")
	}

	// Une autre IP anonyme compte séparément.
	res, err = service.ToggleLike(ctx, 1, repository.ReactionKey{ClientKey: "203.0.113.9"})
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if res.Count != 2 {
		t.Errorf("deux likes anonymes attendus, reçu count=%d", res.Count)
	}
}

func TestGetLikes(t *testing.T) {
	service := NewReactionService(newMockReactionRepo())
	ctx := context.Background()

	if _, err := service.ToggleLike(ctx, 1, userKey(42)); err != nil {
		t.Fatalf("préparation : %v", err)
	}

	res, err := service.GetLikes(ctx, 1, userKey(42))
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if !res.Liked || res.Count != 1 {
		t.Errorf("attendu liked=true count=1, reçu liked=%v count=%d", res.Liked, res.Count)
	}

	res, err = service.GetLikes(ctx, 1, userKey(7))
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if res.Liked {
		t.Error("un autre utilisateur ne doit pas être vu comme ayant liké")
	}
}

func TestToggleFavorite(t *testing.T) {
	service := NewReactionService(newMockReactionRepo())
	ctx := context.Background()

	res, err := service.ToggleFavorite(ctx, 3, userKey(42))
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if !res.Favorited || res.Count != 1 {
		t.Errorf("attendu favorited=true count=1, reçu favorited=%v count=%d", res.Favorited, res.Count)
	}

	res, err = service.ToggleFavorite(ctx, 3, userKey(42))
	if err != nil {
		t.Fatalf("erreur inattendue : %v", err)
	}
	if res.Favorited || res.Count != 0 {
		t.Errorf("attendu favorited=false count=0, reçu favorited=%v count=%d", res.Favorited, res.Count)
	}
}
