package repository

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"MapVideo-App/internal/domain/helper"
	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
)

const restaurantsCollection = "restaurants"

// FirestoreRestaurantsRepository Firestoreのrestaurantsコレクションを検索する
// 範囲フィルタは緯度のみサーバ側で行い、経度・並び替え・件数制限はクライアント側で行う
type FirestoreRestaurantsRepository struct {
	client *firestore.Client
}

func NewFirestoreRestaurantsRepository(client *firestore.Client) repository.RestaurantsRepository {
	return &FirestoreRestaurantsRepository{
		client: client,
	}
}

func (r *FirestoreRestaurantsRepository) FindInBounds(ctx context.Context, bounds model.ViewportBounds, limit int) ([]model.Restaurant, error) {
	if limit <= 0 {
		limit = repository.DefaultResultLimit
	}

	docs, err := r.client.Collection(restaurantsCollection).
		Where("latitude", ">=", bounds.South).
		Where("latitude", "<=", bounds.North).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("レストランドキュメントの取得に失敗しました: %w", err)
	}

	restaurants := make([]model.Restaurant, 0, len(docs))
	for _, doc := range docs {
		var restaurant model.Restaurant
		if err := doc.DataTo(&restaurant); err != nil {
			log.Printf("⚠️ レストランドキュメント %s の変換に失敗: %v", doc.Ref.ID, err)
			continue
		}
		restaurants = append(restaurants, restaurant)
	}

	return helper.FilterAndRank(restaurants, bounds, limit), nil
}
