package handlers

import (
	"net/http"

	"github.com/fullstackdevx/fso-part4/internal/repositories"
	"github.com/fullstackdevx/fso-part4/internal/stats"
	"github.com/labstack/echo/v4"
)

// StatsHandler serves aggregate statistics over all stored posts
type StatsHandler struct {
	postRepository repositories.PostRepository
}

func NewStatsHandler(postRepo repositories.PostRepository) *StatsHandler {
	return &StatsHandler{postRepository: postRepo}
}

func (h *StatsHandler) RegisterStatsRoutes(g *echo.Group) {
	g.GET("/stats", h.GetSummary)
	g.GET("/stats/total-likes", h.GetTotalLikes)
	g.GET("/stats/favorite", h.GetFavorite)
	g.GET("/stats/top-author", h.GetTopAuthor)
}

func (h *StatsHandler) GetSummary(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, stats.Summarize(posts))
}

func (h *StatsHandler) GetTotalLikes(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total_likes": stats.TotalLikes(posts)})
}

func (h *StatsHandler) GetFavorite(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return repositoryError(err)
	}
	// The repository never returns a nil slice, so this is always a record
	return c.JSON(http.StatusOK, stats.FavoritePost(posts))
}

func (h *StatsHandler) GetTopAuthor(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, stats.TopAuthor(posts))
}
