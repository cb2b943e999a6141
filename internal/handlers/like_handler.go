package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fullstackdevx/fso-part4/internal/logger"
	"github.com/fullstackdevx/fso-part4/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository // To populate the owner in the response
	log            *slog.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, log *slog.Logger) *LikeHandler {
	return &LikeHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		log:            logger.Module(log, "http/likes"),
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/posts/:id/likes", h.LikePost, auth)
	g.GET("/posts/:id/likes", h.GetLikesCount)
}

// LikePost adds one like to a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := h.postRepository.IncrementLikes(ctx, c.Param("id"))
	if err != nil {
		return repositoryError(err)
	}

	owner, err := h.userRepository.GetUserByID(ctx, post.Owner.Hex())
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return repositoryError(err)
	}

	h.log.Debug("post liked", slog.String("post_id", post.ID.Hex()), slog.Int("likes", post.Likes))
	return c.JSON(http.StatusOK, post.ToResponse(owner))
}

// GetLikesCount returns the like count of a post
func (h *LikeHandler) GetLikesCount(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": post.ID.Hex(), "likes": post.Likes})
}
