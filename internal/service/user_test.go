package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/backend/internal/models"
)

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carrot := f.ingredient(t, "Carrot", 25)

	aliceRecipe := f.recipe(t, alice, carrot.ID)
	bobRecipe := f.recipe(t, bob, carrot.ID)

	// alice upvotes bob's recipe, bob upvotes alice's recipe
	_, err := f.upvotes.CreateUpvote(context.Background(), alice.ID, bobRecipe.ID)
	require.NoError(t, err)
	_, err = f.upvotes.CreateUpvote(context.Background(), bob.ID, aliceRecipe.ID)
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteUser(context.Background(), alice.ID))

	var recipes []models.Recipe
	require.NoError(t, f.db.Find(&recipes).Error)
	require.Len(t, recipes, 1)
	assert.Equal(t, bobRecipe.ID, recipes[0].ID)

	var upvotes int64
	f.db.Model(&models.Upvote{}).Count(&upvotes)
	assert.Zero(t, upvotes)

	var ingredients int64
	f.db.Model(&models.Ingredient{}).Count(&ingredients)
	assert.Equal(t, int64(1), ingredients)

	_, err = f.users.GetUser(context.Background(), alice.ID)
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))

	err = f.users.DeleteUser(context.Background(), alice.ID)
	assert.True(t, errors.As(err, &nf))
}
