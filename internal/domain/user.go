package domain

import "time"

// User Model
type User struct {
	ID           string    `json:"id"`        // UUID primary key
	Username     string    `json:"username"`  // Display name, not unique
	Email        string    `json:"email"`     // Unique login key
	PasswordHash string    `json:"-"`         // bcrypt hash, never serialised
	Bio          string    `json:"bio"`       // Optional free text
	CreatedAt    time.Time `json:"createdAt"` // Registration time
}

// Owner is the public identity of a recipe's author
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Owner projects the user to its public identity
func (u *User) Owner() *Owner {
	return &Owner{ID: u.ID, Username: u.Username, Email: u.Email}
}
