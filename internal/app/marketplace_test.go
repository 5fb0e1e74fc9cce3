package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivebay/drivebay/internal/domain"
)

func TestMarketplaceService_CreateRequiresCar(t *testing.T) {
	f := newFixture(t)
	_, err := f.marketplaceSvc.Create(context.Background(), uuid.New(), money(5000), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarketplaceService_CreateJoinsCar(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t, "Civic", 2021, 18_000)

	view, err := f.marketplaceSvc.Create(context.Background(), car.ID, money(17_500), "one owner")
	require.NoError(t, err)
	assert.Equal(t, domain.ListingActive, view.Status)
	assert.Equal(t, "Civic", view.Car.Model)
	assert.Equal(t, 2021, view.Car.Year)
	assert.Equal(t, "one owner", view.Description)
}

func TestMarketplaceService_DuplicateActiveListingConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	car := f.addCar(t, "Civic", 2021, 18_000)
	listing := f.addListing(t, car.ID, 17_500)

	_, err := f.marketplaceSvc.Create(ctx, car.ID, money(17_000), "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Once the active listing is archived the car can be listed again.
	_, err = f.marketplaceSvc.Archive(ctx, listing.ID)
	require.NoError(t, err)
	_, err = f.marketplaceSvc.Create(ctx, car.ID, money(17_000), "")
	assert.NoError(t, err)
}

func TestMarketplaceService_UnknownCarPlaceholder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	car := f.addCar(t, "Civic", 2021, 18_000)
	listing := f.addListing(t, car.ID, 17_500)

	require.NoError(t, f.carSvc.Delete(ctx, car.ID))

	view, err := f.marketplaceSvc.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", view.Car.Model)
	assert.Equal(t, car.ID, view.Car.ID)
}

func TestMarketplaceService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	car := f.addCar(t, "Civic", 2021, 18_000)
	listing := f.addListing(t, car.ID, 17_500)

	view, err := f.marketplaceSvc.Update(ctx, listing.ID, money(16_999.99), "price drop")
	require.NoError(t, err)
	assert.True(t, view.AskingPrice.Equal(money(16_999.99)))
	assert.Equal(t, "price drop", view.Description)
}

func TestMarketplaceService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	car := f.addCar(t, "Civic", 2021, 18_000)
	listing := f.addListing(t, car.ID, 17_500)

	sold, err := f.marketplaceSvc.MarkAsSold(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingSold, sold.Status)

	// Selling again is a no-op.
	sold, err = f.marketplaceSvc.MarkAsSold(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingSold, sold.Status)

	active, err := f.marketplaceSvc.Activate(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingActive, active.Status)

	archived, err := f.marketplaceSvc.Archive(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingArchived, archived.Status)

	// Archived is terminal.
	_, err = f.marketplaceSvc.MarkAsSold(ctx, listing.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.marketplaceSvc.Activate(ctx, listing.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.marketplaceSvc.Update(ctx, listing.ID, money(1), "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMarketplaceService_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.addListing(t, f.addCar(t, "Civic", 2021, 18_000).ID, 17_500)
	second := f.addListing(t, f.addCar(t, "Corolla", 2022, 21_000).ID, 20_000)

	views, err := f.marketplaceSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)
}
