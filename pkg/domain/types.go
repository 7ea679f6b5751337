package domain

import "time"

// Item is a single row of the items table.
type Item struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// User is the authenticated identity as reported by the remote auth
// service. Only the fields the UI needs are decoded.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Credentials carry a sign-in or sign-up form submission.
type Credentials struct {
	Email    string `mapstructure:"email" json:"email"`
	Password string `mapstructure:"password" json:"password"`
}

// ItemForm carries the add/edit item form submission.
type ItemForm struct {
	Name  string `mapstructure:"name"`
	Notes string `mapstructure:"notes"`
}
