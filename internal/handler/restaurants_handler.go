package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"MapVideo-App/internal/application"
	"MapVideo-App/internal/domain/model"
)

// RestaurantsHandler レストラン検索に関するHTTPハンドラー
type RestaurantsHandler struct {
	sessions application.MapSessionService
}

// NewRestaurantsHandler RestaurantsHandlerの新しいインスタンスを作成
func NewRestaurantsHandler(sessions application.MapSessionService) *RestaurantsHandler {
	return &RestaurantsHandler{
		sessions: sessions,
	}
}

// GetRestaurantsResponse GET /restaurants のレスポンス
type GetRestaurantsResponse struct {
	Restaurants []model.Restaurant `json:"restaurants"`
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// GetRestaurantsByBoundingBox GET /restaurants - 境界ボックス内のレストラン一覧を取得
func (h *RestaurantsHandler) GetRestaurantsByBoundingBox(c *gin.Context) {
	bbox := c.Query("bbox")
	if bbox == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "bbox parameter is required (format: min_lng,min_lat,max_lng,max_lat)",
		})
		return
	}

	bounds, err := parseBBox(bbox)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
		return
	}

	restaurants, err := h.sessions.QueryRestaurants(c.Request.Context(), bounds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, GetRestaurantsResponse{Restaurants: restaurants})
}

// parseBBox "min_lng,min_lat,max_lng,max_lat" 形式を解析する
func parseBBox(bbox string) (model.ViewportBounds, error) {
	coords := strings.Split(bbox, ",")
	if len(coords) != 4 {
		return model.ViewportBounds{}, &ValidationError{Field: "bbox", Message: "bbox must contain 4 coordinates: min_lng,min_lat,max_lng,max_lat"}
	}

	names := []string{"min_lng", "min_lat", "max_lng", "max_lat"}
	values := make([]float64, 4)
	for i, raw := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return model.ViewportBounds{}, &ValidationError{Field: names[i], Message: "Invalid " + names[i] + " value"}
		}
		values[i] = v
	}

	return model.ViewportBounds{
		West:  values[0],
		South: values[1],
		East:  values[2],
		North: values[3],
	}, nil
}
