package helper

import (
	"sort"

	"MapVideo-App/internal/domain/model"
)

// FilterInBounds は境界ボックス内（4辺を含む）にあるレストランのみを抽出する
// 緯度経度が有限でないものは除外する
func FilterInBounds(restaurants []model.Restaurant, bounds model.ViewportBounds) []model.Restaurant {
	filtered := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if r.HasValidPosition() && bounds.Contains(r.Latitude, r.Longitude) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SortByRating は評価の高い順にレストランをソートする（評価なしは0扱い、同値は入力順）
func SortByRating(restaurants []model.Restaurant) {
	sort.SliceStable(restaurants, func(i, j int) bool {
		return restaurants[i].GetRating() > restaurants[j].GetRating()
	})
}

// FilterAndRank は境界内に絞り込み、評価順に並べて limit 件に切り詰める
func FilterAndRank(restaurants []model.Restaurant, bounds model.ViewportBounds, limit int) []model.Restaurant {
	result := FilterInBounds(restaurants, bounds)
	SortByRating(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
