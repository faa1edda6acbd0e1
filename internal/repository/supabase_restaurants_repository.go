package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
	"MapVideo-App/internal/infrastructure/database"
)

const restaurantsTable = "restaurants"

type SupabaseRestaurantsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseRestaurantsRepository(client *database.SupabaseClient) repository.RestaurantsRepository {
	return &SupabaseRestaurantsRepository{
		client: client,
	}
}

// FindInBounds PostgRESTの範囲フィルタで境界ボックス内のレストランを取得
func (r *SupabaseRestaurantsRepository) FindInBounds(ctx context.Context, bounds model.ViewportBounds, limit int) ([]model.Restaurant, error) {
	if limit <= 0 {
		limit = repository.DefaultResultLimit
	}

	data, _, err := r.client.GetClient().From(restaurantsTable).
		Select("*", "", false).
		Gte("latitude", formatCoord(bounds.South)).
		Lte("latitude", formatCoord(bounds.North)).
		Gte("longitude", formatCoord(bounds.West)).
		Lte("longitude", formatCoord(bounds.East)).
		Order("rating", &postgrest.OrderOpts{Ascending: false, NullsFirst: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("レストランデータの取得失敗: %w", err)
	}

	var restaurants []model.Restaurant
	if err := json.Unmarshal(data, &restaurants); err != nil {
		return nil, fmt.Errorf("レストランデータのJSONアンマーシャル失敗: %w", err)
	}

	return restaurants, nil
}
