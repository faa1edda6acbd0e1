package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend レストラン検索に使うバックエンドの種類
type Backend string

const (
	BackendSupabase      Backend = "supabase"
	BackendPostgres      Backend = "postgres"
	BackendFirestore     Backend = "firestore"
	BackendSQLite        Backend = "sqlite"
	BackendElasticsearch Backend = "elasticsearch"
	BackendMemory        Backend = "memory"
)

// MapDefaults 地図の初期表示設定
type MapDefaults struct {
	CenterLng   float64 `json:"center_lng"`
	CenterLat   float64 `json:"center_lat"`
	Zoom        float64 `json:"zoom"`
	Style       string  `json:"style"`
	AccessToken string  `json:"access_token"`
}

// Config アプリケーション設定
type Config struct {
	Port    string
	Backend Backend

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseDBPassword string
	DatabaseURL        string

	FirestoreProjectID string
	CredentialsFile    string

	SQLitePath string
	SeedFile   string

	ElasticsearchURL   string
	ElasticsearchIndex string

	QueryTimeout           time.Duration
	ResultLimit            int
	CustomLocationsEnabled bool
	CustomLocationsFile    string
	SessionTTL             time.Duration

	Map MapDefaults
}

// Load .envと環境変数から設定を読み込む
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		Backend: Backend(strings.ToLower(getEnv("RESTAURANT_BACKEND", string(BackendSupabase)))),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseDBPassword: os.Getenv("SUPABASE_DB_PASSWORD"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),

		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
		CredentialsFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		SQLitePath: getEnv("SQLITE_PATH", "data/restaurants.db"),
		SeedFile:   os.Getenv("SEED_FILE"),

		ElasticsearchURL:   getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "restaurants"),

		QueryTimeout:           getEnvDuration("QUERY_TIMEOUT", 5*time.Second),
		ResultLimit:            getEnvInt("RESULT_LIMIT", 30),
		CustomLocationsEnabled: getEnvBool("CUSTOM_LOCATIONS_ENABLED", false),
		CustomLocationsFile:    os.Getenv("CUSTOM_LOCATIONS_FILE"),
		SessionTTL:             getEnvDuration("SESSION_TTL", 30*time.Minute),

		Map: MapDefaults{
			CenterLng:   135.5,
			CenterLat:   34.6,
			Zoom:        9,
			Style:       getEnv("MAPBOX_STYLE", "mapbox://styles/mapbox/streets-v11"),
			AccessToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 選択されたバックエンドに必要な設定が揃っているか確認
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL環境変数が設定されていません")
		}
		if c.SupabaseAnonKey == "" {
			return fmt.Errorf("SUPABASE_ANON_KEY環境変数が設定されていません")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" && (c.SupabaseURL == "" || c.SupabaseDBPassword == "") {
			return fmt.Errorf("DATABASE_URL または SUPABASE_URL と SUPABASE_DB_PASSWORD を設定してください")
		}
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID環境変数が設定されていません")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH環境変数が設定されていません")
		}
	case BackendElasticsearch:
		if c.ElasticsearchURL == "" || c.ElasticsearchIndex == "" {
			return fmt.Errorf("ELASTICSEARCH_URL と ELASTICSEARCH_INDEX を設定してください")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("未対応のRESTAURANT_BACKENDです: %s", c.Backend)
	}

	if c.ResultLimit <= 0 {
		return fmt.Errorf("RESULT_LIMITは1以上である必要があります")
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUTは正の値である必要があります")
	}
	return nil
}

// PostgresDSN Postgres接続文字列
// DATABASE_URL が無ければSupabaseのURLから組み立てる
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	host := strings.TrimPrefix(strings.TrimPrefix(c.SupabaseURL, "https://"), "http://")
	return fmt.Sprintf(
		"host=db.%s port=6543 user=postgres password=%s dbname=postgres sslmode=require",
		host, c.SupabaseDBPassword,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
