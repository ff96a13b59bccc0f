package services

import (
	"context"
	"testing"

	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Update_PartialFields(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(t, userRepo)

	role := string(domain.RoleManager)
	updated, err := svc.Update(context.Background(), user.ID, &UpdateUserInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, role, updated.Role)
	assert.True(t, updated.IsActive)

	inactive := false
	updated, err = svc.Update(context.Background(), user.ID, &UpdateUserInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, role, updated.Role)

	_, err = svc.Update(context.Background(), 999, &UpdateUserInput{Role: &role})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(t, userRepo)

	name := "Abebe K."
	phone := "+251933000000"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Name:  &name,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, phone, updated.Phone)
	// Email and role are not reachable from the profile endpoint
	assert.Equal(t, "abebe@example.com", updated.Email)
	assert.Equal(t, string(domain.RoleUser), updated.Role)
}

func TestUserService_Delete(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	user := seedUser(t, userRepo)

	require.NoError(t, svc.Delete(context.Background(), user.ID))
	_, err := svc.GetByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), user.ID), ErrUserNotFound)
}
