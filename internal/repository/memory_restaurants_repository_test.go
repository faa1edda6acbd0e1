package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MapVideo-App/internal/domain/model"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

var osakaBounds = model.ViewportBounds{South: 34.60, North: 34.70, West: 135.10, East: 135.30}

func osakaFixtures() []model.Restaurant {
	return []model.Restaurant{
		{ID: 1, Latitude: 34.65, Longitude: 135.20, Rating: floatPtr(4.5), RestaurantName: strPtr("A")},
		{ID: 2, Latitude: 34.80, Longitude: 135.20, Rating: floatPtr(5.0), RestaurantName: strPtr("B")},
		{ID: 3, Latitude: 34.66, Longitude: 135.25, Rating: floatPtr(4.9), RestaurantName: strPtr("C")},
	}
}

func restaurantIDs(restaurants []model.Restaurant) []int64 {
	out := make([]int64, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.ID)
	}
	return out
}

func TestMemoryRestaurantsRepository_FindInBounds(t *testing.T) {
	repo := NewMemoryRestaurantsRepository(osakaFixtures())

	got, err := repo.FindInBounds(context.Background(), osakaBounds, 30)

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, restaurantIDs(got))
}

func TestMemoryRestaurantsRepository_Put(t *testing.T) {
	repo := NewMemoryRestaurantsRepository(nil)
	repo.Put(osakaFixtures()...)
	repo.Put(model.Restaurant{ID: 1, Latitude: 34.65, Longitude: 135.20, Rating: floatPtr(5.0)})

	got, err := repo.FindInBounds(context.Background(), osakaBounds, 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, restaurantIDs(got), "同じIDは置き換わり上限で切り詰められる")
}

func TestMemoryRestaurantsRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryRestaurantsRepository(osakaFixtures())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindInBounds(ctx, osakaBounds, 30)

	assert.ErrorIs(t, err, context.Canceled)
}
