package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"MapVideo-App/internal/application"
	"MapVideo-App/internal/config"
	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/infrastructure/mapsurface"
)

// MapSessionHandler 地図セッションのAPIハンドラー
type MapSessionHandler struct {
	sessions    application.MapSessionService
	mapDefaults config.MapDefaults
}

// NewMapSessionHandler は新しいMapSessionHandlerインスタンスを作成
func NewMapSessionHandler(sessions application.MapSessionService, mapDefaults config.MapDefaults) *MapSessionHandler {
	return &MapSessionHandler{
		sessions:    sessions,
		mapDefaults: mapDefaults,
	}
}

// CreateSessionResponse POST /sessions のレスポンス
type CreateSessionResponse struct {
	SessionID string             `json:"session_id"`
	Map       config.MapDefaults `json:"map"`
}

// BoundsRequest ブラウザから送られる表示範囲
type BoundsRequest struct {
	South *float64 `json:"south" binding:"required"`
	North *float64 `json:"north" binding:"required"`
	West  *float64 `json:"west" binding:"required"`
	East  *float64 `json:"east" binding:"required"`
}

func (r BoundsRequest) toBounds() model.ViewportBounds {
	return model.ViewportBounds{South: *r.South, North: *r.North, West: *r.West, East: *r.East}
}

// GetMapConfig GET /api/map/config - 地図の初期表示設定
func (h *MapSessionHandler) GetMapConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.mapDefaults)
}

// CreateSession POST /sessions
func (h *MapSessionHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.CreateSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create session: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, CreateSessionResponse{
		SessionID: session.ID,
		Map:       h.mapDefaults,
	})
}

// DeleteSession DELETE /sessions/:id
func (h *MapSessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.DisposeSession(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LoadMap POST /sessions/:id/load - 地図の読み込み完了
func (h *MapSessionHandler) LoadMap(c *gin.Context) {
	var req BoundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	response, err := h.sessions.LoadMap(c.Request.Context(), c.Param("id"), req.toBounds())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// SettleViewport POST /sessions/:id/viewport - パン・ズーム終了
func (h *MapSessionHandler) SettleViewport(c *gin.Context) {
	var req BoundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	response, err := h.sessions.SettleViewport(c.Request.Context(), c.Param("id"), req.toBounds())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetMarkers GET /sessions/:id/markers
func (h *MapSessionHandler) GetMarkers(c *gin.Context) {
	markers, err := h.sessions.Markers(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, markers)
}

// ClickMarker POST /sessions/:id/markers/:markerId/click
func (h *MapSessionHandler) ClickMarker(c *gin.Context) {
	panel, err := h.sessions.ClickMarker(c.Param("id"), c.Param("markerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, panel)
}

// GetPanel GET /sessions/:id/panel
func (h *MapSessionHandler) GetPanel(c *gin.Context) {
	panel, err := h.sessions.Panel(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, panel)
}

// ClosePanel POST /sessions/:id/panel/close
func (h *MapSessionHandler) ClosePanel(c *gin.Context) {
	panel, err := h.sessions.ClosePanel(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, panel)
}

// respondError エラーの種類からステータスコードを決める
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "session_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, mapsurface.ErrMarkerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "marker_not_found",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
}
