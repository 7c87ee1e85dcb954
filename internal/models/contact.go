package models

import "time"

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRequest struct {
	Name    string `json:"name"    example:"Julien"`
	Email   string `json:"email"   example:"julien@example.com"`
	Message string `json:"message" example:"Bonjour, serait-il possible de proposer un article invité ?"`
}
