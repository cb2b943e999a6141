package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fullstackdevx/fso-part4/internal/logger"
	"github.com/fullstackdevx/fso-part4/internal/models"
	"github.com/fullstackdevx/fso-part4/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository // To populate each user's posts
	bcryptCost     int
	log            *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, bcryptCost int, log *slog.Logger) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		bcryptCost:     bcryptCost,
		log:            logger.Module(log, "http/users"),
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.CreateUser)
	g.GET("/users", h.GetUsers)
	g.GET("/users/:id", h.GetUser)
}

// CreateUser registers a user with a hashed password
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to hash password").SetInternal(err)
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return repositoryError(err)
	}

	h.log.Info("user created", slog.String("user_id", user.ID.Hex()))
	return c.JSON(http.StatusCreated, user.ToResponse(nil))
}

// GetUsers lists every user with their posts populated
func (h *UserHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userRepository.GetUsers(ctx)
	if err != nil {
		return repositoryError(err)
	}

	resp, err := h.populate(ctx, users)
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUser retrieves one user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, c.Param("id"))
	if err != nil {
		return repositoryError(err)
	}

	resp, err := h.populate(ctx, []models.User{*user})
	if err != nil {
		return repositoryError(err)
	}
	return c.JSON(http.StatusOK, resp[0])
}

func (h *UserHandler) populate(ctx context.Context, users []models.User) ([]models.UserResponse, error) {
	var postIDs []primitive.ObjectID
	for _, u := range users {
		postIDs = append(postIDs, u.Posts...)
	}

	posts, err := h.postRepository.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	resp := make([]models.UserResponse, len(users))
	for i := range users {
		resp[i] = users[i].ToResponse(byID)
	}
	return resp, nil
}
