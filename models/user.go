package models

import "time"

type User struct {
	UserID            string     `json:"userid" bson:"userid"`
	Username          string     `json:"username" bson:"username"`
	Email             string     `json:"email" bson:"email"`
	Password          string     `json:"-" bson:"password"`
	Role              []string   `json:"role" bson:"role"`
	Bio               string     `json:"bio,omitempty" bson:"bio,omitempty"`
	RefreshToken      string     `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry     time.Time  `json:"-" bson:"refresh_expiry,omitempty"`
	PasswordChangedAt *time.Time `json:"-" bson:"password_changed_at,omitempty"`
	LastLogin         time.Time  `json:"-" bson:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
}

const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)
