package elasticsearch

import (
	"context"
	"fmt"
	"log"

	"github.com/olivere/elastic/v7"
)

// indexMapping location を geo_point として扱うマッピング
const indexMapping = `{
	"mappings": {
		"properties": {
			"id":                {"type": "long"},
			"created_at":        {"type": "date"},
			"restaurant_name":   {"type": "text"},
			"formatted_address": {"type": "text"},
			"place_id":          {"type": "keyword"},
			"video_id":          {"type": "keyword"},
			"rating":            {"type": "float"},
			"num_reviews":       {"type": "long"},
			"latitude":          {"type": "double"},
			"longitude":         {"type": "double"},
			"location":          {"type": "geo_point"}
		}
	}
}`

type ElasticClient struct {
	Client *elastic.Client
	Index  string
}

// NewElasticClient Elasticsearchクライアントを作成
func NewElasticClient(url, index string) (*ElasticClient, error) {
	client, err := elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return &ElasticClient{Client: client, Index: index}, nil
}

// EnsureIndex インデックスが無ければマッピング付きで作成する
func (ec *ElasticClient) EnsureIndex(ctx context.Context) error {
	exists, err := ec.Client.IndexExists(ec.Index).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", ec.Index, err)
	}
	if exists {
		return nil
	}

	created, err := ec.Client.CreateIndex(ec.Index).BodyString(indexMapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("create index %s: %w", ec.Index, err)
	}
	if !created.Acknowledged {
		log.Println("CreateIndex was not acknowledged. Check that timeout value is correct.")
	}
	log.Printf("✅ Elasticsearch index created: %s", ec.Index)
	return nil
}

func (ec *ElasticClient) Stop() {
	ec.Client.Stop()
}
