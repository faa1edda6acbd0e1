package repository

import (
	"context"
	"fmt"
	"time"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
	"MapVideo-App/internal/infrastructure/database"
)

type PostgresRestaurantsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresRestaurantsRepository(client *database.PostgreSQLClient) repository.RestaurantsRepository {
	return &PostgresRestaurantsRepository{
		client: client,
	}
}

func (r *PostgresRestaurantsRepository) FindInBounds(ctx context.Context, bounds model.ViewportBounds, limit int) ([]model.Restaurant, error) {
	if limit <= 0 {
		limit = repository.DefaultResultLimit
	}

	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE latitude >= $1 AND latitude <= $2
		  AND longitude >= $3 AND longitude <= $4
		ORDER BY rating DESC NULLS LAST
		LIMIT $5
	`

	rows, err := r.client.DB.QueryContext(ctx, query, bounds.South, bounds.North, bounds.West, bounds.East, limit)
	if err != nil {
		return nil, fmt.Errorf("境界ボックス内レストラン検索失敗: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var row restaurantRow
		var createdAt time.Time
		if err := row.scan(rows, &createdAt); err != nil {
			return nil, fmt.Errorf("レストランデータスキャンエラー: %w", err)
		}
		restaurant := row.ToRestaurant()
		restaurant.CreatedAt = createdAt
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return restaurants, nil
}
