package repository

import "strconv"

// formatCoord PostgRESTのフィルタ値として座標を文字列化する
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
