package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
)

// SQLiteRestaurantsRepository ローカル/オフライン用のSQLiteバックエンド
type SQLiteRestaurantsRepository struct {
	db *sql.DB
}

func NewSQLiteRestaurantsRepository(db *sql.DB) *SQLiteRestaurantsRepository {
	return &SQLiteRestaurantsRepository{db: db}
}

var _ repository.RestaurantsRepository = (*SQLiteRestaurantsRepository)(nil)

func (r *SQLiteRestaurantsRepository) FindInBounds(ctx context.Context, bounds model.ViewportBounds, limit int) ([]model.Restaurant, error) {
	if limit <= 0 {
		limit = repository.DefaultResultLimit
	}

	// SQLiteはNULLを最小値として扱うため DESC で自然に末尾になる
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE latitude >= ? AND latitude <= ?
		  AND longitude >= ? AND longitude <= ?
		ORDER BY rating DESC, id ASC
		LIMIT ?
	`, bounds.South, bounds.North, bounds.West, bounds.East, limit)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var row restaurantRow
		var createdAt sql.NullString
		if err := row.scan(rows, &createdAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurant := row.ToRestaurant()
		if createdAt.Valid {
			if ts, err := time.Parse(time.RFC3339Nano, createdAt.String); err == nil {
				restaurant.CreatedAt = ts
			}
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return restaurants, nil
}

// Upsert レストランを一括で登録（同じIDは置き換え）
func (r *SQLiteRestaurantsRepository) Upsert(ctx context.Context, restaurants []model.Restaurant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO restaurants (`+restaurantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rest := range restaurants {
		createdAt := rest.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		_, err := stmt.ExecContext(ctx,
			rest.ID, createdAt.UTC().Format(time.RFC3339Nano), deref(rest.BusinessName), deref(rest.ChannelID),
			deref(rest.Description), deref(rest.Duration), deref(rest.FoodType), deref(rest.FormattedAddress), rest.Latitude,
			deref(rest.LikeCount), rest.Longitude, deref(rest.NumReviews), deref(rest.PlaceID), deref(rest.PublishedDate),
			deref(rest.Rating), deref(rest.RestaurantName), deref(rest.Title), deref(rest.VideoID), deref(rest.ViewCount),
		)
		if err != nil {
			return fmt.Errorf("upsert restaurant %d: %w", rest.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	log.Printf("✅ SQLite: %d件のレストランを登録", len(restaurants))
	return nil
}

// deref nil ならSQLのNULLとして渡す
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
