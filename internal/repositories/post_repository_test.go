package repositories

import (
	"context"
	"testing"

	"github.com/fullstackdevx/fso-part4/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const postsNS = "bloglist.posts"

func postDoc(id, owner primitive.ObjectID, title string, likes int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "author", Value: "Michael Chan"},
		{Key: "url", Value: "https://reactpatterns.com/"},
		{Key: "likes", Value: likes},
		{Key: "owner", Value: owner},
	}
}

func commandError() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"})
}

func TestMongoPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id and timestamps", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &models.Post{Title: "React patterns", URL: "https://reactpatterns.com/", Likes: 7}
		require.NoError(mt, repo.CreatePost(ctx, post))
		assert.False(mt, post.ID.IsZero())
		assert.False(mt, post.CreatedAt.IsZero())
		assert.Equal(mt, post.CreatedAt, post.UpdatedAt)
	})

	mt.Run("create wraps driver errors", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(commandError())

		err := repo.CreatePost(ctx, &models.Post{Title: "t", URL: "u"})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert post")
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, postDoc(id, owner, "React patterns", 7)))

		post, err := repo.GetPostByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, post.ID)
		assert.Equal(mt, owner, post.Owner)
		assert.Equal(mt, "React patterns", post.Title)
		assert.Equal(mt, 7, post.Likes)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		_, err := repo.GetPostByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrPostNotFound)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)

		_, err := repo.GetPostByID(ctx, "123")
		assert.ErrorIs(mt, err, ErrInvalidID)
		assert.ErrorIs(mt, repo.UpdatePost(ctx, "123", &models.Post{}), ErrInvalidID)
		assert.ErrorIs(mt, repo.DeletePost(ctx, "123"), ErrInvalidID)
		_, err = repo.IncrementLikes(ctx, "123")
		assert.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("get all decodes every document", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		owner := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch,
			postDoc(primitive.NewObjectID(), owner, "React patterns", 7),
			postDoc(primitive.NewObjectID(), owner, "Go To Statement Considered Harmful", 5),
		))

		posts, err := repo.GetAllPosts(ctx)
		require.NoError(mt, err)
		require.Len(mt, posts, 2)
		assert.Equal(mt, "React patterns", posts[0].Title)
		assert.Equal(mt, 5, posts[1].Likes)
	})

	mt.Run("get all on empty collection is an empty slice", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		posts, err := repo.GetAllPosts(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, posts)
		assert.Empty(mt, posts)
	})

	mt.Run("get all wraps driver errors", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(commandError())

		_, err := repo.GetAllPosts(ctx)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find posts")
	})

	mt.Run("get by ids skips the query for no ids", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)

		posts, err := repo.GetPostsByIDs(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, posts)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		post := &models.Post{Title: "t", URL: "u", Likes: 2}
		require.NoError(mt, repo.UpdatePost(ctx, primitive.NewObjectID().Hex(), post))
		assert.False(mt, post.UpdatedAt.IsZero())
	})

	mt.Run("update of missing post", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdatePost(ctx, primitive.NewObjectID().Hex(), &models.Post{})
		assert.ErrorIs(mt, err, ErrPostNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.DeletePost(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("delete of missing post", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.DeletePost(ctx, primitive.NewObjectID().Hex()), ErrPostNotFound)
	})

	mt.Run("increment likes returns the updated document", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: postDoc(id, owner, "React patterns", 8)},
		))

		post, err := repo.IncrementLikes(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, post.ID)
		assert.Equal(mt, 8, post.Likes)
	})

	mt.Run("increment likes of missing post", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := repo.IncrementLikes(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrPostNotFound)
	})
}
