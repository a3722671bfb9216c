package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/common/config"
)

func fakeElasticsearch(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestElasticsearchClient(t *testing.T) {
	t.Run("ping and health succeed", func(t *testing.T) {
		srv := fakeElasticsearch(t, http.StatusOK, `{"status":"green"}`)
		es, err := NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
		require.NoError(t, err)

		require.NoError(t, es.Ping(context.Background()))
		status, err := es.ClusterHealth(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "green", status)
	})

	t.Run("error status is reported", func(t *testing.T) {
		srv := fakeElasticsearch(t, http.StatusInternalServerError, `{}`)
		es, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{srv.URL}})
		require.NoError(t, err)

		assert.Error(t, es.Ping(context.Background()))
		_, err = es.ClusterHealth(context.Background())
		assert.Error(t, err)
	})
}

func TestRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rc := NewRedis(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	require.NoError(t, rc.Ping(context.Background()))

	mr.Close()
	assert.Error(t, rc.Ping(context.Background()))
}
