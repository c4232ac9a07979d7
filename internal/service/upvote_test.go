package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/backend/internal/models"
)

func TestCreateUpvoteOncePerUser(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	r := f.recipe(t, alice)

	upvote, err := f.upvotes.CreateUpvote(context.Background(), bob.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, upvote.UserID)
	assert.Equal(t, r.ID, upvote.RecipeID)

	_, err = f.upvotes.CreateUpvote(context.Background(), bob.ID, r.ID)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "You have already voted on this.", verr.Error())

	counts, err := f.recipes.UpvoteCounts(context.Background(), []uint{r.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[r.ID])

	// a different user may still upvote
	_, err = f.upvotes.CreateUpvote(context.Background(), alice.ID, r.ID)
	require.NoError(t, err)
	counts, err = f.recipes.UpvoteCounts(context.Background(), []uint{r.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[r.ID])
}

func TestCreateUpvoteMissingRecipe(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.upvotes.CreateUpvote(context.Background(), alice.ID, 404)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "recipe", nf.Resource)
}

func TestUpvoteUniqueIndex(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	r := f.recipe(t, alice)

	require.NoError(t, f.db.Create(&models.Upvote{UserID: alice.ID, RecipeID: r.ID}).Error)
	assert.Error(t, f.db.Create(&models.Upvote{UserID: alice.ID, RecipeID: r.ID}).Error)
}
