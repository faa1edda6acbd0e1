package mapsurface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/service"
)

// ErrMarkerNotFound クリックされたマーカーが存在しない（既に削除済みなど）
var ErrMarkerNotFound = errors.New("marker not found")

// SessionSurface ブラウザ側の地図1枚に対応する描画面
// ブラウザから届いた表示範囲を保持し、マーカーをGeoJSONとして返す
type SessionSurface struct {
	mu      sync.RWMutex
	bounds  model.ViewportBounds
	ready   bool
	markers map[string]*sessionMarker
	order   []string
}

type sessionMarker struct {
	surface *SessionSurface
	id      string
	spec    model.MarkerSpec
	style   model.MarkerStyle
}

func NewSessionSurface() *SessionSurface {
	return &SessionSurface{
		markers: make(map[string]*sessionMarker),
	}
}

var _ service.MapSurface = (*SessionSurface)(nil)

// SetBounds ブラウザから通知された現在の表示範囲を記録する
func (s *SessionSurface) SetBounds(bounds model.ViewportBounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
	s.ready = true
}

func (s *SessionSurface) Bounds() (model.ViewportBounds, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds, s.ready
}

func (s *SessionSurface) AddMarker(spec model.MarkerSpec, style model.MarkerStyle) (service.MarkerHandle, error) {
	if spec.Key == "" {
		return nil, fmt.Errorf("marker key is required")
	}

	m := &sessionMarker{
		surface: s,
		id:      uuid.New().String(),
		spec:    spec,
		style:   style,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[m.id] = m
	s.order = append(s.order, m.id)
	return m, nil
}

// Click マーカーのクリック処理を呼び出す
func (s *SessionSurface) Click(markerID string) error {
	s.mu.RLock()
	m, ok := s.markers[markerID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrMarkerNotFound, markerID)
	}

	if m.spec.OnClick != nil {
		m.spec.OnClick()
	}
	return nil
}

// MarkerCount 現在のマーカー数
func (s *SessionSurface) MarkerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.markers)
}

// Snapshot 現在のマーカーをGeoJSONのFeatureCollectionで返す（追加順）
func (s *SessionSurface) Snapshot() *geojson.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fc := geojson.NewFeatureCollection()
	for _, id := range s.order {
		m, ok := s.markers[id]
		if !ok {
			continue
		}
		f := geojson.NewFeature(m.spec.Position)
		f.ID = m.id
		f.Properties["marker_id"] = m.id
		f.Properties["key"] = m.spec.Key
		f.Properties["source"] = string(m.spec.Source)
		if m.spec.Label != "" {
			f.Properties["label"] = m.spec.Label
		}
		if m.style.Color != "" {
			f.Properties["color"] = m.style.Color
		}
		fc.Append(f)
	}
	return fc
}

func (s *SessionSurface) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[id]; !ok {
		return
	}
	delete(s.markers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (m *sessionMarker) ID() string {
	return m.id
}

func (m *sessionMarker) Remove() {
	m.surface.remove(m.id)
}
