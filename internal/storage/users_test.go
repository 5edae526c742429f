package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cipromart/directory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Defaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	reg := registration()

	u, err := s.CreateUser(ctx, reg)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.StatusPending, u.Status)
	assert.Equal(t, models.PackageBasic, u.Package)
	assert.Equal(t, models.Subscription{}, u.Subscription)
	assert.Equal(t, models.PaymentInitiated, u.Payment.Status)
	assert.Equal(t, models.PaymentPlaceholder, u.Payment.Method)
	assert.Empty(t, u.Services)
	assert.NotNil(t, u.Services)
	assert.Empty(t, u.Profile.ServiceAreas)
	assert.Equal(t, 0, u.Profile.Completion)
	assert.Equal(t, reg.Email, u.Profile.Contact.Email)
	assert.Equal(t, reg.Phone, u.Profile.Contact.Phone)
	assert.Empty(t, u.Profile.Contact.WhatsApp)
	assert.Equal(t, reg.BusinessName, u.BusinessName)
	assert.Equal(t, reg.Country, u.Country)

	stored, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, stored)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)

	u, err := s.CreateUser(ctx, registration())
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("secret2"))

	raw, _, _ := backend.Get(ctx, DataKey)
	assert.NotContains(t, string(raw), `"secret1"`)
}

func TestCreateUser_LongPasswordsAccepted(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	for _, n := range []int{72, 73, 200} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			reg := registration()
			reg.Password = strings.Repeat("p", n)

			u, err := s.CreateUser(ctx, reg)
			require.NoError(t, err)
			require.NotNil(t, u)
			assert.True(t, u.CheckPassword(reg.Password))
			assert.False(t, u.CheckPassword(reg.Password[:n-1]))
		})
	}
}

func TestCreateUser_UniqueIDsAndNoEmailDedup(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	a, err := s.CreateUser(ctx, registration())
	require.NoError(t, err)
	b, err := s.CreateUser(ctx, registration())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)

	data, err := s.GetStorageData(ctx)
	require.NoError(t, err)
	require.Len(t, data.Users, 2)
	assert.Equal(t, a.ID, data.Users[0].ID)
	assert.Equal(t, b.ID, data.Users[1].ID)

	same, err := s.FindUsersByEmail(ctx, " OWNER@roofing.cm ")
	require.NoError(t, err)
	assert.Len(t, same, 2)
}

func TestCreateUser_UsesInjectedIDs(t *testing.T) {
	ctx := context.Background()
	n := 0
	s := New(NewMemoryBackend(), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}), WithPasswordCost(4))

	u, err := s.CreateUser(ctx, registration())
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, "id-2", s.GenerateID())
}

func TestGetUserByID_Missing(t *testing.T) {
	s, _ := newTestStore(t)
	u, err := s.GetUserByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateUser_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	u, err := s.CreateUser(ctx, registration())
	require.NoError(t, err)

	u.BusinessName = "Douala Roofing & Sons"
	u.Package = models.PackagePremium
	u.Profile.Description = "Roofs since 1998"
	u.Profile.ServiceAreas = []string{"Douala", "Buea"}
	u.Profile.Contact.WhatsApp = "+237600000000"
	u.Services = []models.Service{{ID: "s1", Name: "Repair", Price: "10,000"}}
	require.NoError(t, s.UpdateUser(ctx, u))

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestUpdateUser_WholeRecordOverwrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	u, err := s.CreateUser(ctx, registration())
	require.NoError(t, err)

	replacement := &models.User{ID: u.ID, BusinessName: "Only Name"}
	require.NoError(t, s.UpdateUser(ctx, replacement))

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Only Name", got.BusinessName)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.PasswordHash)
}

func TestUpdateUser_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)
	_, err := s.CreateUser(ctx, registration())
	require.NoError(t, err)

	before, _, _ := backend.Get(ctx, DataKey)
	require.NoError(t, s.UpdateUser(ctx, &models.User{ID: "ghost"}))
	require.NoError(t, s.UpdateUser(ctx, nil))
	after, _, _ := backend.Get(ctx, DataKey)

	assert.Equal(t, before, after)
}
