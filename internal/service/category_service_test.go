package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/testutil"
)

func TestCategoryCreateDefaultsAndValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	category, err := svc.Create(ctx, user, CategoryInput{Name: "Work"})
	require.NoError(t, err)
	assert.Equal(t, "#007AFF", category.Color)
	assert.Equal(t, "📁", category.Icon)

	_, err = svc.Create(ctx, user, CategoryInput{Name: ""})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(ctx, user, CategoryInput{Name: "Home", Color: "red"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(ctx, user, CategoryInput{Name: "Home", Color: "#ff00"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	custom, err := svc.Create(ctx, user, CategoryInput{Name: "Home", Color: "#FF0000", Icon: "🏠"})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", custom.Color)
	assert.Equal(t, "🏠", custom.Icon)
}

func TestCategoryDuplicateNameConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	alice := &model.User{Username: "alice", PasswordHash: "x"}
	bob := &model.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	_, err := svc.Create(ctx, alice, CategoryInput{Name: "Work", Color: "#FF0000"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice, CategoryInput{Name: "Work"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Bob can reuse the name.
	_, err = svc.Create(ctx, bob, CategoryInput{Name: "Work"})
	require.NoError(t, err)
}

func TestCategoryUpdatePartial(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	category, err := svc.Create(ctx, user, CategoryInput{Name: "Work"})
	require.NoError(t, err)

	color := "#00FF00"
	updated, err := svc.Update(ctx, user, category.ID, CategoryUpdate{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", updated.Color)
	assert.Equal(t, "Work", updated.Name)

	bad := "green"
	_, err = svc.Update(ctx, user, category.ID, CategoryUpdate{Color: &bad})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
