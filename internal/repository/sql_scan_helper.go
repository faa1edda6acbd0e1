package repository

import (
	"database/sql"

	"MapVideo-App/internal/domain/model"
)

const restaurantColumns = `id, created_at, business_name, channel_id, description, duration, food_type,
	formatted_address, latitude, like_count, longitude, num_reviews, place_id, published_date,
	rating, restaurant_name, title, video_id, view_count`

type rowScanner interface {
	Scan(dest ...any) error
}

// restaurantRow NULL許容カラムを受け取るための構造体
type restaurantRow struct {
	ID               int64
	BusinessName     sql.NullString
	ChannelID        sql.NullString
	Description      sql.NullString
	Duration         sql.NullString
	FoodType         sql.NullString
	FormattedAddress sql.NullString
	Latitude         float64
	LikeCount        sql.NullInt64
	Longitude        float64
	NumReviews       sql.NullInt64
	PlaceID          sql.NullString
	PublishedDate    sql.NullString
	Rating           sql.NullFloat64
	RestaurantName   sql.NullString
	Title            sql.NullString
	VideoID          sql.NullString
	ViewCount        sql.NullInt64
}

// scan created_at はドライバごとに型が違うため呼び出し側が受け皿を渡す
func (rr *restaurantRow) scan(s rowScanner, createdAt any) error {
	return s.Scan(&rr.ID, createdAt, &rr.BusinessName, &rr.ChannelID, &rr.Description, &rr.Duration,
		&rr.FoodType, &rr.FormattedAddress, &rr.Latitude, &rr.LikeCount, &rr.Longitude, &rr.NumReviews,
		&rr.PlaceID, &rr.PublishedDate, &rr.Rating, &rr.RestaurantName, &rr.Title, &rr.VideoID, &rr.ViewCount)
}

// ToRestaurant model.Restaurant に変換（CreatedAt は呼び出し側で設定）
func (rr *restaurantRow) ToRestaurant() model.Restaurant {
	return model.Restaurant{
		ID:               rr.ID,
		BusinessName:     nullString(rr.BusinessName),
		ChannelID:        nullString(rr.ChannelID),
		Description:      nullString(rr.Description),
		Duration:         nullString(rr.Duration),
		FoodType:         nullString(rr.FoodType),
		FormattedAddress: nullString(rr.FormattedAddress),
		Latitude:         rr.Latitude,
		LikeCount:        nullInt64(rr.LikeCount),
		Longitude:        rr.Longitude,
		NumReviews:       nullInt64(rr.NumReviews),
		PlaceID:          nullString(rr.PlaceID),
		PublishedDate:    nullString(rr.PublishedDate),
		Rating:           nullFloat64(rr.Rating),
		RestaurantName:   nullString(rr.RestaurantName),
		Title:            nullString(rr.Title),
		VideoID:          nullString(rr.VideoID),
		ViewCount:        nullInt64(rr.ViewCount),
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
