package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jihyekwon/scrapbook/internal/storage"
	"github.com/jihyekwon/scrapbook/internal/storage/es"
	"github.com/jihyekwon/scrapbook/internal/storage/pg"
)

type StoreConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig
}

func LoadEnv() (*StoreConfig, error) {
	storeType := storage.Type(os.Getenv("STORE_TYPE"))
	if storeType == "" {
		storeType = storage.PG
	}
	if storeType != storage.PG && storeType != storage.ES && storeType != storage.InMem {
		slog.Error("Invalid STORE_TYPE environment variable value", "value", storeType)
		return nil, fmt.Errorf(
			"invalid STORE_TYPE environment variable value: %s, expected one of %v",
			storeType,
			[]storage.Type{storage.PG, storage.ES, storage.InMem})
	}

	var pgCfg *pg.PoolConfig
	if storeType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	var esCfg *es.ClientConfig
	if storeType == storage.ES {
		esCfg = &es.ClientConfig{
			Addresses: strings.Split(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 || esCfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete",
				"addresses", esCfg.Addresses, "indexName", esCfg.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	return &StoreConfig{
		Type: storeType,
		Pg:   pgCfg,
		Es:   esCfg,
	}, nil
}
