package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username"` // Unique index, see UserRepository.EnsureIndexes
	Name         string               `json:"name" bson:"name"`
	PasswordHash string               `json:"-" bson:"password_hash"`
	Posts        []primitive.ObjectID `json:"posts" bson:"posts"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
}

// UserCompact is the owner projection embedded in post responses
type UserCompact struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// UserResponse is a user with its posts populated
type UserResponse struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name,omitempty"`
	Posts    []PostCompact `json:"posts"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
	}
}

// ToResponse populates the user's post references from posts, keyed by id.
// References to posts missing from the map are skipped.
func (u *User) ToResponse(posts map[primitive.ObjectID]Post) UserResponse {
	resp := UserResponse{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Posts:    make([]PostCompact, 0, len(u.Posts)),
	}
	for _, id := range u.Posts {
		if p, ok := posts[id]; ok {
			resp.Posts = append(resp.Posts, p.ToCompact())
		}
	}
	return resp
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"required,min=3"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
