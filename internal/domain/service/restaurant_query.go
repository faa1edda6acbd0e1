package service

import (
	"context"
	"log"
	"time"

	"MapVideo-App/internal/domain/helper"
	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
)

const defaultQueryTimeout = 5 * time.Second

// RestaurantFinder 境界ボックス内のレストランを取得する（失敗時は空）
type RestaurantFinder interface {
	Query(ctx context.Context, bounds model.ViewportBounds) []model.Restaurant
}

// RestaurantQuery バックエンドのRestaurantsRepositoryを包み、
// タイムアウト・境界フィルタ・評価順・件数上限を保証する
// 取得に失敗した場合はログに出して空の結果を返す
type RestaurantQuery struct {
	repo    repository.RestaurantsRepository
	timeout time.Duration
	limit   int
}

type findResult struct {
	restaurants []model.Restaurant
	err         error
}

// NewRestaurantQuery は新しいRestaurantQueryを作成する
func NewRestaurantQuery(repo repository.RestaurantsRepository, timeout time.Duration, limit int) *RestaurantQuery {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	if limit <= 0 || limit > repository.DefaultResultLimit {
		limit = repository.DefaultResultLimit
	}
	return &RestaurantQuery{
		repo:    repo,
		timeout: timeout,
		limit:   limit,
	}
}

// Query は境界ボックス内のレストランを評価の高い順に最大limit件返す
func (q *RestaurantQuery) Query(ctx context.Context, bounds model.ViewportBounds) []model.Restaurant {
	if q.repo == nil {
		return []model.Restaurant{}
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	// バックエンドが ctx を見ない場合（PostgRESTのExecuteなど）でもタイムアウトで打ち切る
	done := make(chan findResult, 1)
	go func() {
		restaurants, err := q.repo.FindInBounds(ctx, bounds, q.limit)
		done <- findResult{restaurants: restaurants, err: err}
	}()

	var res findResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = findResult{err: ctx.Err()}
	}
	if res.err != nil {
		log.Printf("❌ Error fetching restaurants (%s): %v", bounds, res.err)
		return []model.Restaurant{}
	}

	result := helper.FilterAndRank(res.restaurants, bounds, q.limit)
	log.Printf("🍽️ Fetched %d restaurants (south: %.6f)", len(result), bounds.South)
	return result
}
