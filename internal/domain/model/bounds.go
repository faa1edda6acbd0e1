package model

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ViewportBounds 地図に現在表示されている矩形領域
type ViewportBounds struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// NewViewportBoundsFromBound orb.Bound から ViewportBounds を作成
func NewViewportBoundsFromBound(b orb.Bound) ViewportBounds {
	return ViewportBounds{
		South: b.Min.Lat(),
		North: b.Max.Lat(),
		West:  b.Min.Lon(),
		East:  b.Max.Lon(),
	}
}

// ToBound orb.Bound に変換
func (b ViewportBounds) ToBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// Contains 指定座標が境界に含まれるか（4辺とも境界値を含む）
func (b ViewportBounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// Validate 境界ボックスの検証
func (b ViewportBounds) Validate() error {
	for _, v := range []float64{b.South, b.North, b.West, b.East} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("境界ボックスに有限でない値が含まれています")
		}
	}
	if b.South > b.North {
		return fmt.Errorf("南端の緯度は北端以下である必要があります")
	}
	if b.West > b.East {
		return fmt.Errorf("西端の経度は東端以下である必要があります")
	}
	if b.South < -90 || b.North > 90 {
		return fmt.Errorf("緯度は-90から90の範囲内である必要があります")
	}
	if b.West < -180 || b.East > 180 {
		return fmt.Errorf("経度は-180から180の範囲内である必要があります")
	}
	return nil
}

// String WKTのPOLYGON表現（ログ出力用）
func (b ViewportBounds) String() string {
	return wkt.MarshalString(b.ToBound().ToPolygon())
}
