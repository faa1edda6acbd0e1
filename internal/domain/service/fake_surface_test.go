package service

import (
	"fmt"
	"sync"

	"MapVideo-App/internal/domain/model"
)

// fakeSurface テスト用のMapSurface
type fakeSurface struct {
	mu      sync.Mutex
	bounds  model.ViewportBounds
	ready   bool
	nextID  int
	markers map[string]fakeMarkerEntry
	failKey string
}

type fakeMarkerEntry struct {
	spec  model.MarkerSpec
	style model.MarkerStyle
}

type fakeHandle struct {
	surface *fakeSurface
	id      string
}

func newFakeSurface(bounds model.ViewportBounds) *fakeSurface {
	return &fakeSurface{
		bounds:  bounds,
		ready:   true,
		markers: make(map[string]fakeMarkerEntry),
	}
}

func (s *fakeSurface) setBounds(bounds model.ViewportBounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
}

func (s *fakeSurface) Bounds() (model.ViewportBounds, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds, s.ready
}

func (s *fakeSurface) AddMarker(spec model.MarkerSpec, style model.MarkerStyle) (MarkerHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if spec.Key == s.failKey && s.failKey != "" {
		return nil, fmt.Errorf("add failed: %s", spec.Key)
	}
	s.nextID++
	id := fmt.Sprintf("m%d", s.nextID)
	s.markers[id] = fakeMarkerEntry{spec: spec, style: style}
	return &fakeHandle{surface: s, id: id}, nil
}

func (s *fakeSurface) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markers)
}

func (s *fakeSurface) keys() map[string]model.MarkerStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.MarkerStyle, len(s.markers))
	for _, m := range s.markers {
		out[m.spec.Key] = m.style
	}
	return out
}

// click キーでマーカーを探してクリックする
func (s *fakeSurface) click(key string) bool {
	s.mu.Lock()
	var onClick func()
	found := false
	for _, m := range s.markers {
		if m.spec.Key == key {
			onClick = m.spec.OnClick
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found && onClick != nil {
		onClick()
	}
	return found
}

func (h *fakeHandle) ID() string { return h.id }

func (h *fakeHandle) Remove() {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	delete(h.surface.markers, h.id)
}
