package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS restaurants (
	id                INTEGER PRIMARY KEY,
	created_at        TEXT    NOT NULL,
	business_name     TEXT,
	channel_id        TEXT,
	description       TEXT,
	duration          TEXT,
	food_type         TEXT,
	formatted_address TEXT,
	latitude          REAL    NOT NULL,
	like_count        INTEGER,
	longitude         REAL    NOT NULL,
	num_reviews       INTEGER,
	place_id          TEXT,
	published_date    TEXT,
	rating            REAL,
	restaurant_name   TEXT,
	title             TEXT,
	video_id          TEXT,
	view_count        INTEGER
);
CREATE INDEX IF NOT EXISTS idx_restaurants_lat_lng ON restaurants (latitude, longitude);
CREATE INDEX IF NOT EXISTS idx_restaurants_rating ON restaurants (rating DESC);
`

// Open SQLiteファイルを開き、スキーマを作成する
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
