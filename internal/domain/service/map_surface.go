package service

import "MapVideo-App/internal/domain/model"

// MapSurface 地図描画面（マーカーの作成と現在の表示範囲の取得）
type MapSurface interface {
	// Bounds は現在の表示範囲を返す。地図の準備前は false
	Bounds() (model.ViewportBounds, bool)
	// AddMarker はマーカーを作成し、クリック時に spec.OnClick を呼ぶよう登録する
	AddMarker(spec model.MarkerSpec, style model.MarkerStyle) (MarkerHandle, error)
}

// MarkerHandle 地図上のマーカー1つへのハンドル
type MarkerHandle interface {
	ID() string
	Remove()
}
