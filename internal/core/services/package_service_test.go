package services

import (
	"context"
	"testing"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageService_CreateAndGet(t *testing.T) {
	svc := NewPackageService(newFakePackageRepo())

	pkg, err := svc.Create(context.Background(), &CreatePackageInput{
		Name:       "Silver Buffet",
		Price:      25000,
		Discount:   15,
		Category:   string(domain.CategoryStandard),
		Features:   []string{"Buffet service", "Soft drinks"},
		EventTypes: []string{string(domain.EventWedding), string(domain.EventGraduation)},
		MaxGuests:  100,
	})
	require.NoError(t, err)
	assert.True(t, pkg.IsActive)

	got, err := svc.GetByID(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silver Buffet", got.Name)
	// floor(25000 * 85 / 100)
	assert.Equal(t, float64(21250), got.DiscountedPrice())

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestPackageService_DiscountedPriceRoundsDown(t *testing.T) {
	svc := NewPackageService(newFakePackageRepo())

	pkg, err := svc.Create(context.Background(), &CreatePackageInput{
		Name:     "Odd Price",
		Price:    999,
		Discount: 33,
		Category: string(domain.CategoryBasic),
	})
	require.NoError(t, err)

	// 999 * 0.67 = 669.33 → 669
	assert.Equal(t, float64(669), pkg.DiscountedPrice())
}

func TestPackageService_Update_PartialFields(t *testing.T) {
	svc := NewPackageService(newFakePackageRepo())

	pkg, err := svc.Create(context.Background(), &CreatePackageInput{
		Name:     "Bronze",
		Price:    12000,
		Category: string(domain.CategoryBasic),
	})
	require.NoError(t, err)

	newPrice := 15000.0
	updated, err := svc.Update(context.Background(), pkg.ID, &UpdatePackageInput{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, "Bronze", updated.Name)

	_, err = svc.Update(context.Background(), 999, &UpdatePackageInput{Price: &newPrice})
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestPackageService_ToggleActive(t *testing.T) {
	svc := NewPackageService(newFakePackageRepo())

	pkg, err := svc.Create(context.Background(), &CreatePackageInput{
		Name:     "Seasonal",
		Price:    8000,
		Category: string(domain.CategoryCustom),
	})
	require.NoError(t, err)

	active, err := svc.ToggleActive(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleActive(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestPackageService_List_ActiveOnly(t *testing.T) {
	repo := newFakePackageRepo()
	svc := NewPackageService(repo)

	a, err := svc.Create(context.Background(), &CreatePackageInput{Name: "A", Price: 1000, Category: string(domain.CategoryBasic)})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &CreatePackageInput{Name: "B", Price: 2000, Category: string(domain.CategoryBasic)})
	require.NoError(t, err)

	_, err = svc.ToggleActive(context.Background(), a.ID)
	require.NoError(t, err)

	pkgs, total, err := svc.List(context.Background(), repositories.PackageFilter{ActiveOnly: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "B", pkgs[0].Name)

	pkgs, total, err = svc.List(context.Background(), repositories.PackageFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, pkgs, 2)
}

func TestPackageService_Delete(t *testing.T) {
	svc := NewPackageService(newFakePackageRepo())

	pkg, err := svc.Create(context.Background(), &CreatePackageInput{Name: "Gone", Price: 1000, Category: string(domain.CategoryBasic)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), pkg.ID))
	_, err = svc.GetByID(context.Background(), pkg.ID)
	assert.ErrorIs(t, err, ErrPackageNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), pkg.ID), ErrPackageNotFound)
}
