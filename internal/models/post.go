package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Author    string             `json:"author,omitempty" bson:"author,omitempty"`
	URL       string             `json:"url" bson:"url"`
	Likes     int                `json:"likes" bson:"likes"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner,omitempty"` // User who created the post
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PostResponse is the public shape of a post, with the owner populated
type PostResponse struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Author string       `json:"author,omitempty"`
	URL    string       `json:"url"`
	Likes  int          `json:"likes"`
	Owner  *UserCompact `json:"owner,omitempty"`
}

// PostCompact is the projection of a post embedded in user responses
type PostCompact struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// ToResponse builds the public post. owner may be nil when the user no longer exists.
func (p *Post) ToResponse(owner *User) PostResponse {
	resp := PostResponse{
		ID:     p.ID.Hex(),
		Title:  p.Title,
		Author: p.Author,
		URL:    p.URL,
		Likes:  p.Likes,
	}
	if owner != nil {
		compact := owner.ToCompact()
		resp.Owner = &compact
	}
	return resp
}

// ToCompact returns the post fields shown under a user's post list
func (p *Post) ToCompact() PostCompact {
	return PostCompact{
		ID:     p.ID.Hex(),
		Title:  p.Title,
		Author: p.Author,
		URL:    p.URL,
		Likes:  p.Likes,
	}
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url" validate:"required"`
	Likes  *int   `json:"likes" validate:"omitempty,min=0"` // Defaults to 0 when absent
}

// UpdatePostRequest defines the request body for replacing a post.
// Every field is required; a partial body leaves the stored post untouched.
type UpdatePostRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	URL    string `json:"url" validate:"required"`
	Likes  *int   `json:"likes" validate:"required,min=0"`
}
