package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	u := mustCreate(t, store, registration())
	svc := NewCatalogService(store)

	list, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	added, err := svc.Add(ctx, u.ID, models.ServiceData{
		Name:        " Roof repair ",
		Category:    "Roofing",
		Description: "Leaks fixed",
		Price:       "25,000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Roof repair", added.Name)

	updated, err := svc.Update(ctx, u.ID, added.ID, models.ServicePatch{Price: strPtr("30,000")})
	require.NoError(t, err)
	assert.Equal(t, "30,000", updated.Price)
	assert.Equal(t, "Roof repair", updated.Name)

	list, err = svc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *updated, list[0])

	require.NoError(t, svc.Delete(ctx, u.ID, added.ID))
	require.NoError(t, svc.Delete(ctx, u.ID, added.ID))
	list, err = svc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCatalog_AddValidation(t *testing.T) {
	store := newStore(t)
	u := mustCreate(t, store, registration())
	svc := NewCatalogService(store)

	_, err := svc.Add(context.Background(), u.ID, models.ServiceData{Name: "x"})
	var fields validate.Errors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "description")
}

func TestCatalog_PackageLimit(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	u := mustCreate(t, store, registration())
	svc := NewCatalogService(store)

	for i := 0; i < 5; i++ {
		_, err := svc.Add(ctx, u.ID, models.ServiceData{Name: fmt.Sprintf("s%d", i), Description: "d"})
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, u.ID, models.ServiceData{Name: "one too many", Description: "d"})
	require.ErrorIs(t, err, ErrServiceLimitReached)

	fresh, err := store.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	fresh.Package = models.PackagePremium
	require.NoError(t, store.UpdateUser(ctx, fresh))

	_, err = svc.Add(ctx, u.ID, models.ServiceData{Name: "unlimited", Description: "d"})
	assert.NoError(t, err)
}

func TestCatalog_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	u := mustCreate(t, store, registration())
	svc := NewCatalogService(store)
	added, err := svc.Add(ctx, u.ID, models.ServiceData{Name: "n", Description: "d"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, u.ID, "missing", models.ServicePatch{Price: strPtr("1")})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.Update(ctx, "ghost", added.ID, models.ServicePatch{Price: strPtr("1")})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Update(ctx, u.ID, added.ID, models.ServicePatch{Name: strPtr("  ")})
	var fields validate.Errors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "name")

	_, err = svc.List(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
