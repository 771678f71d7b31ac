package model

import "time"

// User represents a registered account together with its profile image.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Filename     string
	PublicID     string
	ImageURL     string
	CreatedAt    time.Time
}
