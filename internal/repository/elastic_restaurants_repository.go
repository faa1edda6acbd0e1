package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/olivere/elastic/v7"

	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/repository"
	"MapVideo-App/internal/infrastructure/elasticsearch"
)

// restaurantDocument インデックスに保存する形（location は geo_point）
type restaurantDocument struct {
	model.Restaurant
	Location *elastic.GeoPoint `json:"location"`
}

type ElasticRestaurantsRepository struct {
	client *elasticsearch.ElasticClient
}

func NewElasticRestaurantsRepository(client *elasticsearch.ElasticClient) *ElasticRestaurantsRepository {
	return &ElasticRestaurantsRepository{client: client}
}

var _ repository.RestaurantsRepository = (*ElasticRestaurantsRepository)(nil)

// FindInBounds geo_bounding_box クエリで検索し、評価値の降順に並べる
func (r *ElasticRestaurantsRepository) FindInBounds(ctx context.Context, bounds model.ViewportBounds, limit int) ([]model.Restaurant, error) {
	if limit <= 0 {
		limit = repository.DefaultResultLimit
	}

	query := elastic.NewGeoBoundingBoxQuery("location").
		TopLeft(bounds.North, bounds.West).
		BottomRight(bounds.South, bounds.East)

	searchResult, err := r.client.Client.Search().
		Index(r.client.Index).
		Query(query).
		Sort("rating", false).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}

	restaurants := make([]model.Restaurant, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		var restaurant model.Restaurant
		if err := json.Unmarshal(hit.Source, &restaurant); err != nil {
			log.Printf("Error unmarshalling hit source: %s", err)
			continue
		}
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, nil
}

// BulkIndex レストランを一括でインデックスに登録
func (r *ElasticRestaurantsRepository) BulkIndex(ctx context.Context, restaurants []model.Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}

	bulkRequest := r.client.Client.Bulk()
	for _, rest := range restaurants {
		doc := restaurantDocument{
			Restaurant: rest,
			Location:   elastic.GeoPointFromLatLon(rest.Latitude, rest.Longitude),
		}
		req := elastic.NewBulkIndexRequest().
			Index(r.client.Index).
			Id(fmt.Sprintf("%d", rest.ID)).
			Doc(doc)
		bulkRequest = bulkRequest.Add(req)
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk index: %w", err)
	}

	for _, item := range bulkResponse.Failed() {
		if item.Error != nil {
			log.Printf("Failed to index restaurant %s: %s", item.Id, item.Error.Reason)
		}
	}

	log.Printf("✅ Elasticsearch: %d件のレストランを登録", len(restaurants)-len(bulkResponse.Failed()))
	return nil
}
