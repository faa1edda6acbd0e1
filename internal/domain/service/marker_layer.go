package service

import (
	"log"
	"sync"

	"github.com/paulmach/orb"

	"MapVideo-App/internal/domain/model"
)

// RenderedMarker 描画済みマーカー
type RenderedMarker struct {
	Handle   MarkerHandle
	Key      string
	Source   model.MarkerSource
	Position orb.Point
	Style    model.MarkerStyle
}

// MarkerLayer は描画中のマーカー集合を管理する
// Clear の後に AddAll するのは呼び出し側の責務
type MarkerLayer struct {
	mu      sync.RWMutex
	surface MapSurface
	markers []RenderedMarker
}

// NewMarkerLayer は新しいMarkerLayerを作成する（surface は nil でもよい）
func NewMarkerLayer(surface MapSurface) *MarkerLayer {
	return &MarkerLayer{surface: surface}
}

// Clear は全マーカーを地図から削除し、管理集合を空にする
func (l *MarkerLayer) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, m := range l.markers {
		if m.Handle != nil {
			m.Handle.Remove()
		}
	}
	l.markers = nil
}

// AddAll は指定ごとにマーカーを作成し、追加した件数を返す
// 同じ呼び出し内で同じキーが複数あれば最初の1つだけ追加する
func (l *MarkerLayer) AddAll(specs []model.MarkerSpec, style model.MarkerStyle) int {
	if l.surface == nil {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{}, len(specs))
	added := 0
	for _, spec := range specs {
		if _, dup := seen[spec.Key]; dup {
			continue
		}
		seen[spec.Key] = struct{}{}

		handle, err := l.surface.AddMarker(spec, style)
		if err != nil {
			log.Printf("⚠️ マーカー %s の追加に失敗: %v", spec.Key, err)
			continue
		}
		l.markers = append(l.markers, RenderedMarker{
			Handle:   handle,
			Key:      spec.Key,
			Source:   spec.Source,
			Position: spec.Position,
			Style:    style,
		})
		added++
	}
	return added
}

// Len は描画中のマーカー数を返す
func (l *MarkerLayer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.markers)
}

// Markers は描画中のマーカーのコピーを返す
func (l *MarkerLayer) Markers() []RenderedMarker {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]RenderedMarker, len(l.markers))
	copy(copied, l.markers)
	return copied
}
