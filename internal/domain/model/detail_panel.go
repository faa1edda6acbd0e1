package model

import (
	"math"
	"net/url"
)

const (
	// UnknownRestaurantName 店名が無い場合の表示名
	UnknownRestaurantName = "Unknown"

	googleMapsPlaceURL  = "https://www.google.com/maps/place/?q=place_id:"
	googleMapsSearchURL = "https://www.google.com/maps/search/?api=1&query="
	youtubeEmbedURL     = "https://www.youtube.com/embed/"

	// MaxStars 星評価の表示数
	MaxStars = 5
)

// StarKind 星1つ分の表示状態
type StarKind string

const (
	StarFull  StarKind = "full"
	StarHalf  StarKind = "half"
	StarEmpty StarKind = "empty"
)

// RestaurantInfo 詳細パネルに渡すレストラン情報
type RestaurantInfo struct {
	Name          string     `json:"name"`
	Rating        float64    `json:"rating"`
	NumReviews    int64      `json:"num_reviews"`
	GoogleMapsURL string     `json:"google_maps_url"`
	Stars         []StarKind `json:"stars"`
}

// DetailPanelView 詳細パネル（動画モーダル）の表示内容
type DetailPanelView struct {
	IsOpen         bool            `json:"is_open"`
	RestaurantID   *int64          `json:"restaurant_id,omitempty"`
	VideoID        string          `json:"video_id"`
	EmbedURL       string          `json:"embed_url,omitempty"`
	RestaurantInfo *RestaurantInfo `json:"restaurant_info,omitempty"`
}

// NewDetailPanelView 選択状態から詳細パネルの表示内容を作成
// selected が nil の場合はパネルに何も描画しない
func NewDetailPanelView(selected *Restaurant, isOpen bool) DetailPanelView {
	if selected == nil {
		return DetailPanelView{IsOpen: false}
	}

	id := selected.ID
	videoID := selected.GetVideoID()
	return DetailPanelView{
		IsOpen:         isOpen,
		RestaurantID:   &id,
		VideoID:        videoID,
		EmbedURL:       EmbedURL(videoID),
		RestaurantInfo: NewRestaurantInfo(*selected),
	}
}

// NewRestaurantInfo 欠損項目をフォールバック値で埋めたRestaurantInfoを作成
func NewRestaurantInfo(r Restaurant) *RestaurantInfo {
	name := r.GetName()
	if name == "" {
		name = UnknownRestaurantName
	}
	rating := r.GetRating()
	return &RestaurantInfo{
		Name:          name,
		Rating:        rating,
		NumReviews:    r.GetNumReviews(),
		GoogleMapsURL: GoogleMapsURL(r.GetPlaceID(), r.GetFormattedAddress()),
		Stars:         RenderStars(rating),
	}
}

// GoogleMapsURL 外部地図リンクを作成
// place_id を優先し、無ければURLエンコードした住所での検索リンクにする
func GoogleMapsURL(placeID, formattedAddress string) string {
	if placeID != "" {
		return googleMapsPlaceURL + url.QueryEscape(placeID)
	}
	if formattedAddress != "" {
		return googleMapsSearchURL + url.QueryEscape(formattedAddress)
	}
	return "#"
}

// EmbedURL 動画の埋め込みURLを作成
func EmbedURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return youtubeEmbedURL + url.PathEscape(videoID)
}

// RenderStars 評価値を5つの星の表示状態に変換
// 整数部分は塗りつぶし、小数部分が0.5以上なら次の1つを半分にする
func RenderStars(rating float64) []StarKind {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	full := int(math.Floor(rating))
	hasHalf := rating-math.Floor(rating) >= 0.5

	stars := make([]StarKind, 0, MaxStars)
	for i := 1; i <= MaxStars; i++ {
		switch {
		case i <= full:
			stars = append(stars, StarFull)
		case i == full+1 && hasHalf:
			stars = append(stars, StarHalf)
		default:
			stars = append(stars, StarEmpty)
		}
	}
	return stars
}
