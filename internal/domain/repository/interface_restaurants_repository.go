package repository

import (
	"context"

	"MapVideo-App/internal/domain/model"
)

// DefaultResultLimit 1回の境界ボックス検索で返す最大件数
const DefaultResultLimit = 30

// RestaurantsRepository 境界ボックスでレストランを検索するバックエンドごとの実装
// 結果は評価値の降順、件数は limit 以下
type RestaurantsRepository interface {
	FindInBounds(ctx context.Context, bounds model.ViewportBounds, limit int) ([]model.Restaurant, error)
}

// CustomLocationsRepository カスタム地点の取得
type CustomLocationsRepository interface {
	List() []model.CustomLocation
}
