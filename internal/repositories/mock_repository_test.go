package repositories

import (
	"context"
	"testing"

	"github.com/fullstackdevx/fso-part4/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMockUserRepositoryReturnsIndependentPostLists(t *testing.T) {
	ctx := context.Background()
	repo := NewMockUserRepository()

	user := &models.User{Username: "root", Posts: make([]primitive.ObjectID, 0, 4)}
	require.NoError(t, repo.CreateUser(ctx, user))
	first := primitive.NewObjectID()
	require.NoError(t, repo.AddPost(ctx, user.ID, first))

	all, err := repo.GetUsers(ctx)
	require.NoError(t, err)
	byIDs, err := repo.GetUsersByIDs(ctx, []primitive.ObjectID{user.ID})
	require.NoError(t, err)
	one, err := repo.GetUserByID(ctx, user.ID.Hex())
	require.NoError(t, err)

	// Writes to the store must not show through earlier reads, and vice versa
	second := primitive.NewObjectID()
	require.NoError(t, repo.AddPost(ctx, user.ID, second))
	all[0].Posts[0] = primitive.NilObjectID
	byIDs[0].Posts = append(byIDs[0].Posts, primitive.NewObjectID())

	assert.Equal(t, []primitive.ObjectID{first}, byIDs[0].Posts[:1])
	assert.Len(t, one.Posts, 1)

	stored, err := repo.GetUserByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{first, second}, stored.Posts)
}
