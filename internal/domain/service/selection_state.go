package service

import (
	"sync"

	"MapVideo-App/internal/domain/model"
)

// SelectionState は選択中のレストランと詳細パネルの開閉状態を保持する
// パネルが開いているなら必ず選択がある
type SelectionState struct {
	mu       sync.RWMutex
	selected *model.Restaurant
	open     bool
}

func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// Select はレストランを選択してパネルを開く（マーカークリック時）
func (s *SelectionState) Select(r model.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &r
	s.open = true
}

// Close はパネルを閉じる。選択は保持するので再度開くと同じ店を表示できる
func (s *SelectionState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// Snapshot は選択中のレストラン（コピー）と開閉状態を返す
func (s *SelectionState) Snapshot() (*model.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected == nil {
		return nil, false
	}
	r := *s.selected
	return &r, s.open
}

// Panel は詳細パネルの表示内容を返す
func (s *SelectionState) Panel() model.DetailPanelView {
	selected, open := s.Snapshot()
	return model.NewDetailPanelView(selected, open)
}
