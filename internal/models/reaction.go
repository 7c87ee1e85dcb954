package models

import "time"

// Like et Favorite portent la même forme : un utilisateur (ou un client
// anonyme identifié par son IP) réagit au plus une fois par article.
// L'unicité est garantie par des index partiels côté base :
//   UNIQUE (article_id, user_id)     WHERE user_id IS NOT NULL
//   UNIQUE (article_id, client_key)  WHERE user_id IS NULL
type Like struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	UserID    *int      `json:"user_id,omitempty"`
	ClientKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"article_id"`
	UserID    *int      `json:"user_id,omitempty"`
	ClientKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
	Count     int  `json:"count"`
}
