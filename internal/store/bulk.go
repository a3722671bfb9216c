package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esutil"

	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
)

// BulkStats summarizes one bulk load.
type BulkStats struct {
	Indexed uint64
	Failed  uint64
}

// BulkLoad indexes offers and users in batches, replacing documents with the
// same id. Individual item failures are counted and logged; the load only
// fails as a whole when the indexer itself cannot run.
func (s *Store) BulkLoad(ctx context.Context, offers []models.Offer, users []models.User) (BulkStats, error) {
	var indexed, failed uint64

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        s.es,
		NumWorkers:    2,
		FlushBytes:    1 << 20,
		FlushInterval: time.Second,
		Refresh:       s.refresh,
		OnError: func(ctx context.Context, err error) {
			s.logger.Error("bulk indexer error", map[string]interface{}{"error": err})
		},
	})
	if err != nil {
		return BulkStats{}, errors.NewInternalError(fmt.Errorf("create bulk indexer: %w", err))
	}

	add := func(index, id string, doc interface{}) error {
		raw, err := json.Marshal(doc)
		if err != nil {
			return errors.NewInternalError(fmt.Errorf("encode %s document %s: %w", index, id, err))
		}
		return bi.Add(ctx, esutil.BulkIndexerItem{
			Index:      index,
			Action:     "index",
			DocumentID: id,
			Body:       bytes.NewReader(raw),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				atomic.AddUint64(&indexed, 1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				atomic.AddUint64(&failed, 1)
				fields := map[string]interface{}{"index": item.Index, "id": item.DocumentID}
				if err != nil {
					fields["error"] = err
				} else {
					fields["reason"] = res.Error.Type + ": " + res.Error.Reason
				}
				s.logger.Warn("bulk item failed", fields)
			},
		})
	}

	for i := range offers {
		if err := add(s.offers, offers[i].ID, &offers[i]); err != nil {
			_ = bi.Close(ctx)
			return BulkStats{}, err
		}
	}
	for i := range users {
		if err := add(s.users, users[i].ID, &users[i]); err != nil {
			_ = bi.Close(ctx)
			return BulkStats{}, err
		}
	}

	if err := bi.Close(ctx); err != nil {
		return BulkStats{}, errors.NewElasticsearchConnectionFailedError(err)
	}

	stats := BulkStats{Indexed: atomic.LoadUint64(&indexed), Failed: atomic.LoadUint64(&failed)}
	s.logger.Info("bulk load finished", map[string]interface{}{
		"offers":  len(offers),
		"users":   len(users),
		"indexed": stats.Indexed,
		"failed":  stats.Failed,
	})
	return stats, nil
}
