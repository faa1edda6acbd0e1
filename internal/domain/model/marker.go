package model

import "github.com/paulmach/orb"

// MarkerSource マーカーの出どころ
type MarkerSource string

const (
	MarkerSourceRestaurant     MarkerSource = "restaurant"
	MarkerSourceCustomLocation MarkerSource = "custom_location"
)

// MarkerStyle マーカーの見た目
type MarkerStyle struct {
	Color string `json:"color,omitempty"` // 空ならデフォルト色
}

var (
	// DefaultMarkerStyle レストラン用
	DefaultMarkerStyle = MarkerStyle{}
	// CustomLocationMarkerStyle カスタム地点用（青）
	CustomLocationMarkerStyle = MarkerStyle{Color: "#0000FF"}
)

// MarkerSpec 追加するマーカー1つ分の指定
// OnClick はそのマーカーの地点データをキャプチャしたクロージャ
type MarkerSpec struct {
	Key      string
	Source   MarkerSource
	Label    string
	Position orb.Point
	OnClick  func()
}
