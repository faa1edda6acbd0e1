package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
	"MapVideo-App/internal/domain/service"
	"MapVideo-App/internal/infrastructure/mapsurface"
)

// ErrSessionNotFound 指定IDのセッションが存在しない（期限切れを含む）
var ErrSessionNotFound = errors.New("session not found")

// MapSession ブラウザの地図1枚分の状態
type MapSession struct {
	ID         string
	Surface    *mapsurface.SessionSurface
	Layer      *service.MarkerLayer
	Selection  *service.SelectionState
	Controller *service.ViewportSyncController

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *MapSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *MapSession) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SyncResponse 同期パスの結果と同期後のマーカー
type SyncResponse struct {
	Sync    service.SyncResult         `json:"sync"`
	Markers *geojson.FeatureCollection `json:"markers"`
}

// MapSessionService 地図セッションに関するビジネスロジックを提供するサービス
type MapSessionService interface {
	// CreateSession 新しい地図セッションを作成
	CreateSession(ctx context.Context) (*MapSession, error)

	// DisposeSession セッションを破棄
	DisposeSession(id string) error

	// LoadMap 地図の読み込み完了（初回同期）
	LoadMap(ctx context.Context, id string, bounds model.ViewportBounds) (*SyncResponse, error)

	// SettleViewport パン・ズーム終了ごとの同期
	SettleViewport(ctx context.Context, id string, bounds model.ViewportBounds) (*SyncResponse, error)

	// Markers 現在のマーカー
	Markers(id string) (*geojson.FeatureCollection, error)

	// ClickMarker マーカーのクリック
	ClickMarker(id, markerID string) (*model.DetailPanelView, error)

	// Panel 詳細パネルの表示内容
	Panel(id string) (*model.DetailPanelView, error)

	// ClosePanel 詳細パネルを閉じる
	ClosePanel(id string) (*model.DetailPanelView, error)

	// QueryRestaurants セッションを介さない境界ボックス検索
	QueryRestaurants(ctx context.Context, bounds model.ViewportBounds) ([]model.Restaurant, error)

	// EvictIdle 一定時間操作のないセッションを破棄し、破棄した数を返す
	EvictIdle(now time.Time) int
}

// mapSessionServiceImpl MapSessionServiceの実装
type mapSessionServiceImpl struct {
	restaurants     service.RestaurantFinder
	customLocations repository.CustomLocationsRepository
	sessionTTL      time.Duration
	now             func() time.Time

	mu       sync.RWMutex
	sessions map[string]*MapSession
}

// MapSessionOptions セッションサービスの設定
type MapSessionOptions struct {
	// CustomLocations nil ならカスタム地点は表示しない
	CustomLocations repository.CustomLocationsRepository
	SessionTTL      time.Duration
}

// NewMapSessionService MapSessionServiceの新しいインスタンスを作成
func NewMapSessionService(restaurants service.RestaurantFinder, opts MapSessionOptions) MapSessionService {
	return &mapSessionServiceImpl{
		restaurants:     restaurants,
		customLocations: opts.CustomLocations,
		sessionTTL:      opts.SessionTTL,
		now:             time.Now,
		sessions:        make(map[string]*MapSession),
	}
}

func (s *mapSessionServiceImpl) CreateSession(ctx context.Context) (*MapSession, error) {
	surface := mapsurface.NewSessionSurface()
	layer := service.NewMarkerLayer(surface)
	selection := service.NewSelectionState()

	var opts []service.ControllerOption
	if s.customLocations != nil {
		opts = append(opts, service.WithCustomLocations(s.customLocations))
	}

	session := &MapSession{
		ID:         uuid.New().String(),
		Surface:    surface,
		Layer:      layer,
		Selection:  selection,
		Controller: service.NewViewportSyncController(surface, s.restaurants, layer, selection, opts...),
		lastSeen:   s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("✅ Map session created: %s", session.ID)
	return session, nil
}

func (s *mapSessionServiceImpl) DisposeSession(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	dispose(session)
	log.Printf("🗑️ Map session disposed: %s", id)
	return nil
}

func (s *mapSessionServiceImpl) LoadMap(ctx context.Context, id string, bounds model.ViewportBounds) (*SyncResponse, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("境界ボックスの検証失敗: %w", err)
	}

	session.Surface.SetBounds(bounds)
	result := session.Controller.OnMapLoad(ctx)
	return &SyncResponse{Sync: result, Markers: session.Surface.Snapshot()}, nil
}

func (s *mapSessionServiceImpl) SettleViewport(ctx context.Context, id string, bounds model.ViewportBounds) (*SyncResponse, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("境界ボックスの検証失敗: %w", err)
	}

	session.Surface.SetBounds(bounds)
	result := session.Controller.OnViewportSettled(ctx)
	return &SyncResponse{Sync: result, Markers: session.Surface.Snapshot()}, nil
}

func (s *mapSessionServiceImpl) Markers(id string) (*geojson.FeatureCollection, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return session.Surface.Snapshot(), nil
}

func (s *mapSessionServiceImpl) ClickMarker(id, markerID string) (*model.DetailPanelView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := session.Surface.Click(markerID); err != nil {
		return nil, err
	}
	panel := session.Selection.Panel()
	return &panel, nil
}

func (s *mapSessionServiceImpl) Panel(id string) (*model.DetailPanelView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	panel := session.Selection.Panel()
	return &panel, nil
}

func (s *mapSessionServiceImpl) ClosePanel(id string) (*model.DetailPanelView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	session.Selection.Close()
	panel := session.Selection.Panel()
	return &panel, nil
}

func (s *mapSessionServiceImpl) QueryRestaurants(ctx context.Context, bounds model.ViewportBounds) ([]model.Restaurant, error) {
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("境界ボックスの検証失敗: %w", err)
	}
	return s.restaurants.Query(ctx, bounds), nil
}

func (s *mapSessionServiceImpl) EvictIdle(now time.Time) int {
	if s.sessionTTL <= 0 {
		return 0
	}

	var expired []*MapSession
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.idleSince(now) > s.sessionTTL {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		dispose(session)
	}
	if len(expired) > 0 {
		log.Printf("🧹 %d件の期限切れセッションを破棄", len(expired))
	}
	return len(expired)
}

// RunJanitor ctx が終わるまで interval ごとに期限切れセッションを破棄する
func RunJanitor(ctx context.Context, svc MapSessionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			svc.EvictIdle(now)
		}
	}
}

func (s *mapSessionServiceImpl) session(id string) (*MapSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.touch(s.now())
	return session, nil
}

func dispose(session *MapSession) {
	session.Controller.Close()
	session.Layer.Clear()
}
