package models

import "time"

// Catégories autorisées pour un article.
const (
	CategoryDestinations = "destinations"
	CategoryCulture      = "culture"
	CategoryAventure     = "aventure"
	CategoryConseils     = "conseils"
)

type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Views       int       `json:"views"`
	UserID      *int      `json:"user_id,omitempty"`
	Author      string    `json:"author,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// swagger:model CreateArticleRequest
type CreateArticleRequest struct {
	Title       string `json:"title"       example:"Trois jours à Lisbonne"`
	Description string `json:"description" example:"Itinéraire et bonnes adresses pour un week-end prolongé"`
	Content     string `json:"content"     example:"<p>Jour 1 : l'Alfama...</p>"`
	Category    string `json:"category"    example:"destinations"`
	Image       string `json:"image"       example:"https://cdn.example.com/lisbonne.jpg"`
}

type ArticleStats struct {
	TotalArticles int            `json:"total_articles"`
	TotalViews    int            `json:"total_views"`
	TotalLikes    int            `json:"total_likes"`
	TotalComments int            `json:"total_comments"`
	ByCategory    map[string]int `json:"by_category"`
}
