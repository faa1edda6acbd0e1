package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
)

// CustomLocationStore セッション中は不変のカスタム地点リスト
// Add/Replace は将来の編集機能用で、同期処理からは呼ばれない
type CustomLocationStore struct {
	mu        sync.RWMutex
	locations []model.CustomLocation
}

func NewCustomLocationStore(locations []model.CustomLocation) *CustomLocationStore {
	copied := make([]model.CustomLocation, len(locations))
	copy(copied, locations)
	return &CustomLocationStore{locations: copied}
}

var _ repository.CustomLocationsRepository = (*CustomLocationStore)(nil)

// List 現在のリストのコピーを返す
func (s *CustomLocationStore) List() []model.CustomLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]model.CustomLocation, len(s.locations))
	copy(copied, s.locations)
	return copied
}

func (s *CustomLocationStore) Add(location model.CustomLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = append(s.locations, location)
}

func (s *CustomLocationStore) Replace(locations []model.CustomLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = make([]model.CustomLocation, len(locations))
	copy(s.locations, locations)
}

// LoadCustomLocationsFile JSON配列のファイルからカスタム地点を読み込む
func LoadCustomLocationsFile(path string) ([]model.CustomLocation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("カスタム地点ファイルの読み込み失敗: %w", err)
	}

	var locations []model.CustomLocation
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("カスタム地点ファイルのJSONアンマーシャル失敗: %w", err)
	}
	return locations, nil
}

// LoadRestaurantsFile JSON配列のファイルからレストランを読み込む（シード用）
func LoadRestaurantsFile(path string) ([]model.Restaurant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("シードファイルの読み込み失敗: %w", err)
	}

	var restaurants []model.Restaurant
	if err := json.Unmarshal(data, &restaurants); err != nil {
		return nil, fmt.Errorf("シードファイルのJSONアンマーシャル失敗: %w", err)
	}
	return restaurants, nil
}

// DefaultCustomLocations 神戸・京都・大阪の固定カスタム地点
func DefaultCustomLocations() []model.CustomLocation {
	name := func(s string) *string { return &s }
	return []model.CustomLocation{
		{
			ID:        0,
			Address:   "4 Chome-2-1 Kanocho, Chuo Ward, Kobe, Hyogo 650-0001, Japan",
			Latitude:  34.6941206,
			Longitude: 135.1936942,
			Name:      name("remm plus Kobe Sannomiya"),
		},
		{
			ID:        1,
			Address:   "808 Arimacho, Kita Ward, Kobe, Hyogo 651-1401, Japan",
			Latitude:  34.7979184,
			Longitude: 135.2449034,
			Name:      name("中の坊 瑞苑"),
		},
		{
			ID:        2,
			Address:   "236-3 Nakanocho, Higashiyama Ward, Kyoto, 605-0082, Japan",
			Latitude:  35.0062901,
			Longitude: 135.7754588,
			Name:      name("祇园的民宿"),
		},
		{
			ID:        3,
			Address:   "1 Chome-4-18 Nipponbashi, Chuo Ward, Osaka, 542-0073, Japan",
			Latitude:  34.6654,
			Longitude: 135.5072,
			Name:      name("Natural Hot Spring Hanakaze-no-yu Onyado Nono Namba"),
		},
		{
			ID:        4,
			Address:   "1 Chome-1-43 Abenosuji, Abeno Ward, Osaka, 545-0052, Japan",
			Latitude:  34.6426,
			Longitude: 135.5121,
			Name:      name("大阪万豪酒店"),
		},
	}
}
