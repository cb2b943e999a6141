package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fullstackdevx/fso-part4/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errMockFailure = errors.New("mock: repository failure")

var (
	_ PostRepository = (*MockPostRepository)(nil)
	_ UserRepository = (*MockUserRepository)(nil)
	_ PostRepository = (*MongoPostRepository)(nil)
	_ UserRepository = (*MongoUserRepository)(nil)
)

// MockPostRepository keeps posts in memory, in insertion order, for tests.
type MockPostRepository struct {
	mu         sync.Mutex
	Posts      []models.Post
	ShouldFail bool // flag to simulate storage failures
}

// NewMockPostRepository initializes an empty in-memory post store
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{}
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errMockFailure
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	m.Posts = append(m.Posts, *post)
	return nil
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.indexOf(id)
	if err != nil {
		return nil, err
	}
	post := m.Posts[i]
	return &post, nil
}

func (m *MockPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, errMockFailure
	}
	return append([]models.Post{}, m.Posts...), nil
}

func (m *MockPostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, errMockFailure
	}
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	posts := []models.Post{}
	for _, p := range m.Posts {
		if wanted[p.ID] {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.indexOf(id)
	if err != nil {
		return err
	}
	stored := &m.Posts[i]
	stored.Title = post.Title
	stored.Author = post.Author
	stored.URL = post.URL
	stored.Likes = post.Likes
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.indexOf(id)
	if err != nil {
		return err
	}
	m.Posts = append(m.Posts[:i], m.Posts[i+1:]...)
	return nil
}

func (m *MockPostRepository) IncrementLikes(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.indexOf(id)
	if err != nil {
		return nil, err
	}
	m.Posts[i].Likes++
	post := m.Posts[i]
	return &post, nil
}

// indexOf must be called with mu held
func (m *MockPostRepository) indexOf(id string) (int, error) {
	if m.ShouldFail {
		return -1, errMockFailure
	}
	objID, err := ParseID(id)
	if err != nil {
		return -1, err
	}
	for i, p := range m.Posts {
		if p.ID == objID {
			return i, nil
		}
	}
	return -1, ErrPostNotFound
}

// MockUserRepository keeps users in memory for tests.
type MockUserRepository struct {
	mu         sync.Mutex
	Users      []models.User
	ShouldFail bool
}

// NewMockUserRepository initializes an empty in-memory user store
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errMockFailure
	}
	for _, u := range m.Users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	m.Users = append(m.Users, *user)
	return nil
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return m.findOne(func(u models.User) bool { return u.ID == objID })
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.findOne(func(u models.User) bool { return u.Username == username })
}

func (m *MockUserRepository) findOne(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, errMockFailure
	}
	for _, u := range m.Users {
		if match(u) {
			user := cloneUser(u)
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, errMockFailure
	}
	users := make([]models.User, len(m.Users))
	for i, u := range m.Users {
		users[i] = cloneUser(u)
	}
	return users, nil
}

func (m *MockUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, errMockFailure
	}
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	users := []models.User{}
	for _, u := range m.Users {
		if wanted[u.ID] {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

// cloneUser copies u so callers never share the Posts backing array with the store
func cloneUser(u models.User) models.User {
	u.Posts = append([]primitive.ObjectID{}, u.Posts...)
	return u
}

func (m *MockUserRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return m.update(userID, func(u *models.User) {
		for _, id := range u.Posts {
			if id == postID {
				return
			}
		}
		u.Posts = append(u.Posts, postID)
	})
}

func (m *MockUserRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return m.update(userID, func(u *models.User) {
		kept := make([]primitive.ObjectID, 0, len(u.Posts))
		for _, id := range u.Posts {
			if id != postID {
				kept = append(kept, id)
			}
		}
		u.Posts = kept
	})
}

func (m *MockUserRepository) update(userID primitive.ObjectID, apply func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errMockFailure
	}
	for i := range m.Users {
		if m.Users[i].ID == userID {
			apply(&m.Users[i])
			return nil
		}
	}
	return ErrUserNotFound
}
