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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) (*models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	return &post, nil
}

// GetAllPosts retrieves every post in insertion order
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.find(ctx, bson.D{}, findOptions)
}

// GetPostsByIDs retrieves the posts whose ids are listed
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
}

func (r *MongoPostRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// UpdatePost replaces the editable fields of an existing post
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := ParseID(id)
	if err != nil {
		return err
	}

	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":      post.Title,
			"author":     post.Author,
			"url":        post.URL,
			"likes":      post.Likes,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("update post %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// IncrementLikes adds one like to a post and returns the updated document
func (r *MongoPostRepository) IncrementLikes(ctx context.Context, id string) (*models.Post, error) {
	objID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$inc": bson.M{"likes": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("increment likes of post %s: %w", id, err)
	}
	return &post, nil
}
