package repository

import (
	"context"
	"sync"

	"MapVideo-App/internal/domain/helper"
	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
)

// MemoryRestaurantsRepository メモリ上のスライスを検索する（デモ・テスト用）
type MemoryRestaurantsRepository struct {
	mu          sync.RWMutex
	restaurants []model.Restaurant
}

func NewMemoryRestaurantsRepository(restaurants []model.Restaurant) *MemoryRestaurantsRepository {
	copied := make([]model.Restaurant, len(restaurants))
	copy(copied, restaurants)
	return &MemoryRestaurantsRepository{restaurants: copied}
}

var _ repository.RestaurantsRepository = (*MemoryRestaurantsRepository)(nil)

func (r *MemoryRestaurantsRepository) FindInBounds(ctx context.Context, bounds model.ViewportBounds, limit int) ([]model.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = repository.DefaultResultLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return helper.FilterAndRank(r.restaurants, bounds, limit), nil
}

// Put レストランを追加（同じIDは置き換え）
func (r *MemoryRestaurantsRepository) Put(restaurants ...model.Restaurant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rest := range restaurants {
		replaced := false
		for i := range r.restaurants {
			if r.restaurants[i].ID == rest.ID {
				r.restaurants[i] = rest
				replaced = true
				break
			}
		}
		if !replaced {
			r.restaurants = append(r.restaurants, rest)
		}
	}
}
