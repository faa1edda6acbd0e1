package service

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"MapVideo-App/internal/domain/model"
)

func spec(key string) model.MarkerSpec {
	return model.MarkerSpec{Key: key, Source: model.MarkerSourceRestaurant, Position: orb.Point{135.2, 34.65}}
}

func TestMarkerLayer_AddAllAndClear(t *testing.T) {
	surface := newFakeSurface(model.ViewportBounds{})
	layer := NewMarkerLayer(surface)

	added := layer.AddAll([]model.MarkerSpec{spec("a"), spec("b"), spec("c")}, model.DefaultMarkerStyle)
	assert.Equal(t, 3, added)
	assert.Equal(t, 3, layer.Len())
	assert.Equal(t, 3, surface.count())

	layer.Clear()
	assert.Equal(t, 0, layer.Len())
	assert.Equal(t, 0, surface.count())

	// 2回目のClearも問題なし
	layer.Clear()
	assert.Equal(t, 0, surface.count())
}

func TestMarkerLayer_SkipsDuplicateKeysWithinCall(t *testing.T) {
	surface := newFakeSurface(model.ViewportBounds{})
	layer := NewMarkerLayer(surface)

	added := layer.AddAll([]model.MarkerSpec{spec("a"), spec("a"), spec("b")}, model.DefaultMarkerStyle)

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, surface.count())
}

func TestMarkerLayer_ContinuesAfterAddFailure(t *testing.T) {
	surface := newFakeSurface(model.ViewportBounds{})
	surface.failKey = "b"
	layer := NewMarkerLayer(surface)

	added := layer.AddAll([]model.MarkerSpec{spec("a"), spec("b"), spec("c")}, model.DefaultMarkerStyle)

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, layer.Len())
}

func TestMarkerLayer_KeepsStyle(t *testing.T) {
	surface := newFakeSurface(model.ViewportBounds{})
	layer := NewMarkerLayer(surface)

	layer.AddAll([]model.MarkerSpec{spec("custom:1")}, model.CustomLocationMarkerStyle)

	markers := layer.Markers()
	assert.Len(t, markers, 1)
	assert.Equal(t, "#0000FF", markers[0].Style.Color)
	assert.Equal(t, "#0000FF", surface.keys()["custom:1"].Color)
}

func TestMarkerLayer_NilSurfaceIsNoop(t *testing.T) {
	layer := NewMarkerLayer(nil)

	assert.Equal(t, 0, layer.AddAll([]model.MarkerSpec{spec("a")}, model.DefaultMarkerStyle))
	assert.NotPanics(t, layer.Clear)
	assert.Equal(t, 0, layer.Len())
}
