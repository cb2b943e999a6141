package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fullstackdevx/fso-part4/internal/logger"
	"github.com/fullstackdevx/fso-part4/internal/middleware"
	"github.com/fullstackdevx/fso-part4/internal/models"
	"github.com/fullstackdevx/fso-part4/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository // To populate owners and keep their post lists in sync
	log            *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, log *slog.Logger) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		log:            logger.Module(log, "http/posts"),
	}
}

// RegisterPostRoutes registers post-related routes; auth guards creation and deletion
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost, auth)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost, auth)
}

// GetPosts returns every post with its owner populated
func (h *PostHandler) GetPosts(c echo.Context) error {
	ctx := c.Request().Context()

	posts, err := h.postRepository.GetAllPosts(ctx)
	if err != nil {
		return repositoryError(err)
	}

	resp, err := h.populate(ctx, posts)
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return repositoryError(err)
	}

	resp, err := h.populateOne(ctx, post)
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// CreatePost creates a new post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	owner, err := h.userRepository.GetUserByID(ctx, userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token: user no longer exists")
		}
		return repositoryError(err)
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post := &models.Post{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Owner:  owner.ID,
	}
	if req.Likes != nil {
		post.Likes = *req.Likes
	}

	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return repositoryError(err)
	}
	if err := h.userRepository.AddPost(ctx, owner.ID, post.ID); err != nil {
		// Undo the insert so the post never exists without its owner reference
		if delErr := h.postRepository.DeletePost(ctx, post.ID.Hex()); delErr != nil {
			h.log.Error("failed to roll back post after owner update failed",
				slog.String("post_id", post.ID.Hex()),
				slog.Any("error", delErr),
			)
		}
		return repositoryError(err)
	}

	h.log.Info("post created", slog.String("post_id", post.ID.Hex()), slog.String("user_id", owner.ID.Hex()))
	return c.JSON(http.StatusCreated, post.ToResponse(owner))
}

// UpdatePost replaces the title, author, url and likes of a post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return repositoryError(err)
	}

	post.Title = req.Title
	post.Author = req.Author
	post.URL = req.URL
	post.Likes = *req.Likes

	if err := h.postRepository.UpdatePost(ctx, postID, post); err != nil {
		return repositoryError(err)
	}

	resp, err := h.populateOne(ctx, post)
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeletePost deletes a post; only its owner may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")

	userID, err := middleware.UserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return repositoryError(err)
	}

	// Ensure the user deleting the post is the owner
	if post.Owner != userID {
		h.log.Info("rejected delete by non-owner", slog.String("post_id", postID), slog.String("user_id", userID.Hex()))
		return echo.NewHTTPError(http.StatusBadRequest, "only the creator can delete a post")
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		return repositoryError(err)
	}
	if err := h.userRepository.RemovePost(ctx, userID, post.ID); err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return repositoryError(err)
	}

	h.log.Info("post deleted", slog.String("post_id", postID))
	return c.NoContent(http.StatusNoContent)
}

// populate attaches each post's owner, fetching all owners in one query
func (h *PostHandler) populate(ctx context.Context, posts []models.Post) ([]models.PostResponse, error) {
	ownerIDs := make([]primitive.ObjectID, 0, len(posts))
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range posts {
		if !p.Owner.IsZero() && !seen[p.Owner] {
			seen[p.Owner] = true
			ownerIDs = append(ownerIDs, p.Owner)
		}
	}

	users, err := h.userRepository.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	owners := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		owners[users[i].ID] = &users[i]
	}

	resp := make([]models.PostResponse, len(posts))
	for i := range posts {
		resp[i] = posts[i].ToResponse(owners[posts[i].Owner])
	}
	return resp, nil
}

func (h *PostHandler) populateOne(ctx context.Context, post *models.Post) (models.PostResponse, error) {
	resp, err := h.populate(ctx, []models.Post{*post})
	if err != nil {
		return models.PostResponse{}, err
	}
	return resp[0], nil
}
