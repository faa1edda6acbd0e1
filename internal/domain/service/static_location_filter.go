package service

import "MapVideo-App/internal/domain/model"

// FilterLocations はカスタム地点のうち境界ボックス内（4辺を含む）にあるものを入力順で返す
func FilterLocations(bounds model.ViewportBounds, locations []model.CustomLocation) []model.CustomLocation {
	result := make([]model.CustomLocation, 0, len(locations))
	for _, location := range locations {
		if bounds.Contains(location.Latitude, location.Longitude) {
			result = append(result, location)
		}
	}
	return result
}
