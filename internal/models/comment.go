package models

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	ArticleID int64     `json:"article_id"`
	UserID    *int      `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Name      string `json:"name"       example:"Claire"`
	Content   string `json:"content"    example:"Merci pour les adresses, très utile !"`
	ArticleID int64  `json:"article_id" example:"12"`
}
