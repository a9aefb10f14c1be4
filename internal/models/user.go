package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account document in the MongoDB users collection.
type User struct {
	ID           primitive.ObjectID `json:"id"           bson:"_id,omitempty"`
	Username     string             `json:"username"     bson:"username"`
	Email        string             `json:"email"        bson:"email"`
	Password     string             `json:"-"            bson:"password"` // bcrypt hash, never serialize
	ProfileImage *string            `json:"profileImage" bson:"profile_image"`
	Collection   []string           `json:"collection"   bson:"collection"`
	CreatedAt    time.Time          `json:"created_at"   bson:"created_at"`
}

// Profile is the public view of a user returned by the auth endpoints.
type Profile struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profileImage"`
}

// Profile strips the private fields from a user.
func (u *User) Profile() Profile {
	return Profile{
		Username:     u.Username,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

// RegisterRequest is the JSON body for POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both /register and /login.
type AuthResponse struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profileImage"`
	Token        string  `json:"token"`
}
