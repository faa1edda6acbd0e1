package model

import (
	"math"
	"strconv"
	"time"

	"github.com/paulmach/orb"
)

// Restaurant 動画付きレストラン（restaurantsテーブルの1行）
// 任意項目はポインタで保持し、欠損時のフォールバックはアクセサで行う
type Restaurant struct {
	ID               int64     `json:"id" db:"id" firestore:"id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at" firestore:"created_at"`
	BusinessName     *string   `json:"business_name,omitempty" db:"business_name" firestore:"business_name"`
	ChannelID        *string   `json:"channel_id,omitempty" db:"channel_id" firestore:"channel_id"`
	Description      *string   `json:"description,omitempty" db:"description" firestore:"description"`
	Duration         *string   `json:"duration,omitempty" db:"duration" firestore:"duration"`
	FoodType         *string   `json:"food_type,omitempty" db:"food_type" firestore:"food_type"`
	FormattedAddress *string   `json:"formatted_address,omitempty" db:"formatted_address" firestore:"formatted_address"`
	Latitude         float64   `json:"latitude" db:"latitude" firestore:"latitude"`
	LikeCount        *int64    `json:"like_count,omitempty" db:"like_count" firestore:"like_count"`
	Longitude        float64   `json:"longitude" db:"longitude" firestore:"longitude"`
	NumReviews       *int64    `json:"num_reviews,omitempty" db:"num_reviews" firestore:"num_reviews"`
	PlaceID          *string   `json:"place_id,omitempty" db:"place_id" firestore:"place_id"`
	PublishedDate    *string   `json:"published_date,omitempty" db:"published_date" firestore:"published_date"`
	Rating           *float64  `json:"rating,omitempty" db:"rating" firestore:"rating"`
	RestaurantName   *string   `json:"restaurant_name,omitempty" db:"restaurant_name" firestore:"restaurant_name"`
	Title            *string   `json:"title,omitempty" db:"title" firestore:"title"`
	VideoID          *string   `json:"video_id,omitempty" db:"video_id" firestore:"video_id"`
	ViewCount        *int64    `json:"view_count,omitempty" db:"view_count" firestore:"view_count"`
}

// Key ソース内で一意なマーカーキー
func (r Restaurant) Key() string {
	return "restaurant:" + strconv.FormatInt(r.ID, 10)
}

// Position 地図上の位置
func (r Restaurant) Position() orb.Point {
	return orb.Point{r.Longitude, r.Latitude}
}

// HasValidPosition 緯度経度が有限な実数かチェック
func (r Restaurant) HasValidPosition() bool {
	return isFinite(r.Latitude) && isFinite(r.Longitude)
}

// GetRating 評価値（未設定なら0）
func (r Restaurant) GetRating() float64 {
	if r.Rating != nil {
		return *r.Rating
	}
	return 0
}

// GetNumReviews レビュー数（未設定なら0）
func (r Restaurant) GetNumReviews() int64 {
	if r.NumReviews != nil {
		return *r.NumReviews
	}
	return 0
}

// GetName 表示名（未設定なら空文字列）
func (r Restaurant) GetName() string {
	return stringValue(r.RestaurantName)
}

// GetVideoID 動画ID（未設定なら空文字列）
func (r Restaurant) GetVideoID() string {
	return stringValue(r.VideoID)
}

// GetPlaceID Google Place ID（未設定なら空文字列）
func (r Restaurant) GetPlaceID() string {
	return stringValue(r.PlaceID)
}

// GetFormattedAddress 住所（未設定なら空文字列）
func (r Restaurant) GetFormattedAddress() string {
	return stringValue(r.FormattedAddress)
}

func stringValue(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
