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

const usersNS = "bloglist.users"

func userDoc(id primitive.ObjectID, username string, posts ...primitive.ObjectID) bson.D {
	if posts == nil {
		posts = []primitive.ObjectID{}
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: username},
		{Key: "name", Value: "Superuser"},
		{Key: "password_hash", Value: "hash"},
		{Key: "posts", Value: posts},
	}
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.EnsureIndexes(ctx))
	})

	mt.Run("create initializes posts", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.User{Username: "root", PasswordHash: "hash"}
		require.NoError(mt, repo.CreateUser(ctx, user))
		assert.False(mt, user.ID.IsZero())
		assert.NotNil(mt, user.Posts)
	})

	mt.Run("duplicate username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: bloglist.users index: username_1",
		}))

		err := repo.CreateUser(ctx, &models.User{Username: "root"})
		assert.ErrorIs(mt, err, ErrUsernameTaken)
	})

	mt.Run("create wraps other driver errors", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(commandError())

		err := repo.CreateUser(ctx, &models.User{Username: "root"})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrUsernameTaken)
		assert.Contains(mt, err.Error(), "insert user")
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		id, postID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, userDoc(id, "root", postID)))

		user, err := repo.GetUserByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "root", user.Username)
		assert.Equal(mt, "hash", user.PasswordHash)
		assert.Equal(mt, []primitive.ObjectID{postID}, user.Posts)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.GetUserByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrUserNotFound)
	})

	mt.Run("get by malformed id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.GetUserByID(ctx, "not-an-id")
		assert.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("get by username not found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(mt, err, ErrUserNotFound)
	})

	mt.Run("list users", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
			userDoc(primitive.NewObjectID(), "root"),
			userDoc(primitive.NewObjectID(), "mluukkai"),
		))

		users, err := repo.GetUsers(ctx)
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "mluukkai", users[1].Username)
	})

	mt.Run("list by ids skips the query for no ids", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		users, err := repo.GetUsersByIDs(ctx, []primitive.ObjectID{})
		require.NoError(mt, err)
		assert.Empty(mt, users)
	})

	mt.Run("list wraps driver errors", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(commandError())

		_, err := repo.GetUsersByIDs(ctx, []primitive.ObjectID{primitive.NewObjectID()})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find users")
	})

	mt.Run("add and remove post", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		matched := mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1})
		mt.AddMockResponses(matched, matched)

		userID, postID := primitive.NewObjectID(), primitive.NewObjectID()
		assert.NoError(mt, repo.AddPost(ctx, userID, postID))
		assert.NoError(mt, repo.RemovePost(ctx, userID, postID))
	})

	mt.Run("add post to missing user", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.AddPost(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrUserNotFound)
	})
}
