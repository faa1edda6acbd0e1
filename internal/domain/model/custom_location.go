package model

import (
	"strconv"

	"github.com/paulmach/orb"
)

// CustomLocation クライアント側で固定的に持つカスタム地点（宿泊先など）
type CustomLocation struct {
	ID        int     `json:"id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      *string `json:"name,omitempty"`
}

// Key ソース内で一意なマーカーキー
func (l CustomLocation) Key() string {
	return "custom:" + strconv.Itoa(l.ID)
}

// Position 地図上の位置
func (l CustomLocation) Position() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// GetName 表示名（未設定なら住所）
func (l CustomLocation) GetName() string {
	if l.Name != nil && *l.Name != "" {
		return *l.Name
	}
	return l.Address
}
