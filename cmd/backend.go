package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"MapVideo-App/internal/config"
	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
	"MapVideo-App/internal/infrastructure/database"
	"MapVideo-App/internal/infrastructure/elasticsearch"
	"MapVideo-App/internal/infrastructure/firestore"
	"MapVideo-App/internal/infrastructure/sqlite"
	repoImpl "MapVideo-App/internal/repository"
)

// newRestaurantsRepository は設定に応じたバックエンドを作成する
// 返すcleanupはアプリ終了時に呼ぶ
func newRestaurantsRepository(ctx context.Context, cfg *config.Config) (repository.RestaurantsRepository, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendSupabase:
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, noop, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, noop, fmt.Errorf("Supabaseヘルスチェック失敗: %w", err)
		}
		return repoImpl.NewSupabaseRestaurantsRepository(client), noop, nil

	case config.BackendPostgres:
		client, err := database.NewPostgreSQLClientWithRetry(cfg.PostgresDSN(), 5, 2*time.Second)
		if err != nil {
			return nil, noop, err
		}
		return repoImpl.NewPostgresRestaurantsRepository(client), func() { client.Close() }, nil

	case config.BackendFirestore:
		client, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.CredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		return repoImpl.NewFirestoreRestaurantsRepository(client.GetClient()), func() { client.Close() }, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		repo := repoImpl.NewSQLiteRestaurantsRepository(db)
		seed, err := loadSeed(cfg)
		if err != nil {
			db.Close()
			return nil, noop, err
		}
		if len(seed) > 0 {
			if err := repo.Upsert(ctx, seed); err != nil {
				db.Close()
				return nil, noop, err
			}
		}
		return repo, func() { db.Close() }, nil

	case config.BackendElasticsearch:
		client, err := elasticsearch.NewElasticClient(cfg.ElasticsearchURL, cfg.ElasticsearchIndex)
		if err != nil {
			return nil, noop, err
		}
		if err := client.EnsureIndex(ctx); err != nil {
			client.Stop()
			return nil, noop, err
		}
		repo := repoImpl.NewElasticRestaurantsRepository(client)
		seed, err := loadSeed(cfg)
		if err != nil {
			client.Stop()
			return nil, noop, err
		}
		if err := repo.BulkIndex(ctx, seed); err != nil {
			client.Stop()
			return nil, noop, err
		}
		return repo, client.Stop, nil

	case config.BackendMemory:
		seed, err := loadSeed(cfg)
		if err != nil {
			return nil, noop, err
		}
		return repoImpl.NewMemoryRestaurantsRepository(seed), noop, nil
	}

	return nil, noop, fmt.Errorf("未対応のRESTAURANT_BACKENDです: %s", cfg.Backend)
}

func loadSeed(cfg *config.Config) ([]model.Restaurant, error) {
	if cfg.SeedFile == "" {
		return nil, nil
	}
	restaurants, err := repoImpl.LoadRestaurantsFile(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	log.Printf("🌱 %d restaurants loaded from %s", len(restaurants), cfg.SeedFile)
	return restaurants, nil
}
