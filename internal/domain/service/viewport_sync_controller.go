package service

import (
	"context"
	"log"
	"sync"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
)

// ControllerState 同期コントローラの状態
type ControllerState int

const (
	StateUninitialized ControllerState = iota
	StateReady
)

func (s ControllerState) String() string {
	switch s {
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// SyncResult 同期パス1回分の結果
type SyncResult struct {
	Generation      uint64               `json:"generation"`
	Applied         bool                 `json:"applied"`
	Bounds          model.ViewportBounds `json:"bounds"`
	Restaurants     int                  `json:"restaurants"`
	CustomLocations int                  `json:"custom_locations"`
}

// CustomLocationClickHandler カスタム地点マーカーのクリック時の処理（nil なら何もしない）
type CustomLocationClickHandler func(location model.CustomLocation)

// ViewportSyncController は表示範囲の変化ごとに地点を取得し、マーカーを描き直す
//
// 同期パスは世代番号で管理し、新しいパスが始まると前のパスのコンテキストをキャンセルする。
// 結果が揃った時点で最新の世代でなければ破棄するので、遅れて返った古いパスが
// 新しい表示範囲のマーカーを上書きすることはない。
type ViewportSyncController struct {
	surface               MapSurface
	restaurants           RestaurantFinder
	customLocations       repository.CustomLocationsRepository
	layer                 *MarkerLayer
	selection             *SelectionState
	onCustomLocationClick CustomLocationClickHandler

	mu             sync.Mutex
	state          ControllerState
	generation     uint64
	inFlightGen    uint64
	cancelInFlight context.CancelFunc

	// Clear から AddAll までをまとめて適用するためのロック
	renderMu sync.Mutex
}

// ControllerOption コントローラの任意設定
type ControllerOption func(*ViewportSyncController)

// WithCustomLocations カスタム地点の表示を有効にする
func WithCustomLocations(repo repository.CustomLocationsRepository) ControllerOption {
	return func(c *ViewportSyncController) {
		c.customLocations = repo
	}
}

// WithCustomLocationClick カスタム地点マーカーのクリック処理を設定する
func WithCustomLocationClick(handler CustomLocationClickHandler) ControllerOption {
	return func(c *ViewportSyncController) {
		c.onCustomLocationClick = handler
	}
}

// NewViewportSyncController は新しいViewportSyncControllerを作成する
func NewViewportSyncController(
	surface MapSurface,
	restaurants RestaurantFinder,
	layer *MarkerLayer,
	selection *SelectionState,
	opts ...ControllerOption,
) *ViewportSyncController {
	c := &ViewportSyncController{
		surface:     surface,
		restaurants: restaurants,
		layer:       layer,
		selection:   selection,
		state:       StateUninitialized,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State は現在の状態を返す
func (c *ViewportSyncController) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnMapLoad は地図の読み込み完了時に1度だけ同期パスを実行する
// 2回目以降の呼び出しは無視する
func (c *ViewportSyncController) OnMapLoad(ctx context.Context) SyncResult {
	c.mu.Lock()
	if c.state == StateReady {
		c.mu.Unlock()
		return SyncResult{}
	}
	c.state = StateReady
	c.mu.Unlock()

	log.Printf("🗺️ Map loaded, running initial sync")
	return c.sync(ctx)
}

// OnViewportSettled はパン・ズーム終了ごとに同期パスを実行する
// 地図の読み込み前は何もしない
func (c *ViewportSyncController) OnViewportSettled(ctx context.Context) SyncResult {
	if c.State() != StateReady {
		return SyncResult{}
	}
	return c.sync(ctx)
}

// Close は実行中の同期パスをキャンセルする
func (c *ViewportSyncController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
}

func (c *ViewportSyncController) sync(ctx context.Context) SyncResult {
	if c.surface == nil || c.layer == nil {
		return SyncResult{}
	}

	passCtx, gen, bounds, ok := c.beginPass(ctx)
	if !ok {
		return SyncResult{}
	}
	defer c.endPass(gen)

	var restaurants []model.Restaurant
	var customLocations []model.CustomLocation

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if c.restaurants != nil {
			restaurants = c.restaurants.Query(passCtx, bounds)
		}
	}()
	go func() {
		defer wg.Done()
		if c.customLocations != nil {
			customLocations = FilterLocations(bounds, c.customLocations.List())
		}
	}()
	wg.Wait()

	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	if !c.isLatest(gen) {
		log.Printf("⏭️ Discarding stale sync pass %d", gen)
		return SyncResult{Generation: gen, Bounds: bounds}
	}

	c.layer.Clear()
	nRestaurants := c.layer.AddAll(c.restaurantSpecs(restaurants), model.DefaultMarkerStyle)
	nCustom := c.layer.AddAll(c.customLocationSpecs(customLocations), model.CustomLocationMarkerStyle)

	return SyncResult{
		Generation:      gen,
		Applied:         true,
		Bounds:          bounds,
		Restaurants:     nRestaurants,
		CustomLocations: nCustom,
	}
}

// beginPass は表示範囲を読み取り、同じロックの中で新しい世代番号を発行して前のパスをキャンセルする
func (c *ViewportSyncController) beginPass(ctx context.Context) (context.Context, uint64, model.ViewportBounds, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bounds, ok := c.surface.Bounds()
	if !ok {
		return nil, 0, model.ViewportBounds{}, false
	}
	if err := bounds.Validate(); err != nil {
		log.Printf("⚠️ 無効な表示範囲のため同期をスキップ: %v", err)
		return nil, 0, model.ViewportBounds{}, false
	}

	if c.cancelInFlight != nil {
		c.cancelInFlight()
	}
	c.generation++
	passCtx, cancel := context.WithCancel(ctx)
	c.inFlightGen = c.generation
	c.cancelInFlight = cancel
	return passCtx, c.generation, bounds, true
}

func (c *ViewportSyncController) endPass(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlightGen == gen && c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
}

func (c *ViewportSyncController) isLatest(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation == gen
}

func (c *ViewportSyncController) restaurantSpecs(restaurants []model.Restaurant) []model.MarkerSpec {
	specs := make([]model.MarkerSpec, 0, len(restaurants))
	for _, r := range restaurants {
		restaurant := r
		specs = append(specs, model.MarkerSpec{
			Key:      restaurant.Key(),
			Source:   model.MarkerSourceRestaurant,
			Label:    restaurant.GetName(),
			Position: restaurant.Position(),
			OnClick: func() {
				if c.selection != nil {
					c.selection.Select(restaurant)
				}
			},
		})
	}
	return specs
}

func (c *ViewportSyncController) customLocationSpecs(locations []model.CustomLocation) []model.MarkerSpec {
	specs := make([]model.MarkerSpec, 0, len(locations))
	for _, l := range locations {
		location := l
		specs = append(specs, model.MarkerSpec{
			Key:      location.Key(),
			Source:   model.MarkerSourceCustomLocation,
			Label:    location.GetName(),
			Position: location.Position(),
			OnClick: func() {
				if c.onCustomLocationClick != nil {
					c.onCustomLocationClick(location)
				}
			},
		})
	}
	return specs
}
