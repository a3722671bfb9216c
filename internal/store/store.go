// Package store is the Elasticsearch-backed document store for offers and
// users. It runs the composed searches, the CRUD and saved-relation
// operations and the aggregations behind the analytics report.
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.opentelemetry.io/otel/attribute"

	"jobboard-api/internal/common/config"
	"jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/common/metrics"
	"jobboard-api/internal/common/observability"
)

// errNotFound is returned by do when the document itself is missing.
var errNotFound = stderrors.New("document not found")

type Store struct {
	es     *elasticsearch.Client
	offers string
	users  string
	obs    *observability.Observability
	logger logger.Logger
	now    func() time.Time

	// refresh is passed on every write so the next read sees it.
	refresh string
}

func New(es *elasticsearch.Client, indices config.IndexConfig, obs *observability.Observability, log logger.Logger) *Store {
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Store{
		es:      es,
		offers:  indices.Offers,
		users:   indices.Users,
		obs:     obs,
		logger:  log,
		now:     time.Now,
		refresh: "wait_for",
	}
}

// OffersIndex and UsersIndex return the configured index names.
func (s *Store) OffersIndex() string { return s.offers }
func (s *Store) UsersIndex() string  { return s.users }

type esErrorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// do performs req and converts every failure into a StandardError. A 404
// without an error object (missing document) is reported as errNotFound.
// On success the caller owns the response body.
func (s *Store) do(ctx context.Context, op, index string, req esapi.Request) (*esapi.Response, error) {
	ctx, span := s.obs.StartSpan(ctx, "store."+op, attribute.String("index", index))
	defer span.End()

	start := time.Now()
	res, err := req.Do(ctx, s.es)
	if err != nil {
		err = transportError(ctx, op, err)
	} else if res.IsError() {
		err = responseError(op, index, res)
		res = nil
	}

	status := "ok"
	switch {
	case stderrors.Is(err, errNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
		span.RecordError(err)
	}
	metrics.StoreQueriesTotal.WithLabelValues(op, status).Inc()
	s.obs.RecordStoreQuery(ctx, op, index, time.Since(start), err)

	if err != nil && !stderrors.Is(err, errNotFound) {
		s.logger.Warn("store request failed", map[string]interface{}{
			"operation":  op,
			"index":      index,
			"durationMs": time.Since(start).Milliseconds(),
			"error":      err,
		})
	}
	return res, err
}

func transportError(ctx context.Context, op string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewSearchTimeoutError(op)
	}
	return errors.NewElasticsearchConnectionFailedError(err)
}

func responseError(op, index string, res *esapi.Response) error {
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)

	var body esErrorBody
	_ = json.Unmarshal(raw, &body)

	if res.StatusCode == http.StatusNotFound {
		if body.Error.Type == "index_not_found_exception" {
			return errors.NewIndexNotFoundError(index)
		}
		return errNotFound
	}
	reason := strings.TrimSpace(body.Error.Type + ": " + body.Error.Reason)
	if body.Error.Type == "" {
		reason = strings.TrimSpace(string(raw))
	}
	return errors.NewSearchQueryFailedError(op, fmt.Errorf("%s: %s", res.Status(), reason))
}

// decode reads and closes the response body.
func decode(res *esapi.Response, v interface{}) error {
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return errors.NewInternalError(fmt.Errorf("decode elasticsearch response: %w", err))
	}
	return nil
}

func jsonBody(v interface{}) (io.Reader, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("encode request body: %w", err))
	}
	return strings.NewReader(string(raw)), nil
}
