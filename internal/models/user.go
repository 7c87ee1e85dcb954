package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser — forme renvoyée par l'API : jamais de hash de mot de passe.
type PublicUser struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Name     *string `json:"name,omitempty"`
}

type UserStats struct {
	Articles   int `json:"articles"`
	Comments   int `json:"comments"`
	Likes      int `json:"likes"`
	Favorites  int `json:"favorites"`
	TotalViews int `json:"total_views"`
}
