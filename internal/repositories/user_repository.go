package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fullstackdevx/fso-part4/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	AddPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique username index
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// CreateUser inserts a new user; a duplicate username yields ErrUsernameTaken
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// GetUsers retrieves all users
func (r *MongoUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.D{})
}

// GetUsersByIDs retrieves the users whose ids are listed
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoUserRepository) find(ctx context.Context, filter interface{}) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// AddPost records postID in the user's post list
func (r *MongoUserRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updatePosts(ctx, userID, bson.M{"$addToSet": bson.M{"posts": postID}})
}

// RemovePost drops postID from the user's post list
func (r *MongoUserRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updatePosts(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
}

func (r *MongoUserRepository) updatePosts(ctx context.Context, userID primitive.ObjectID, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("update posts of user %s: %w", userID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
