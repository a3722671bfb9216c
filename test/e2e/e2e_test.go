// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/analytics"
	"jobboard-api/internal/api"
	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/config"
	"jobboard-api/internal/common/database"
	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
	"jobboard-api/internal/store"
	"jobboard-api/pkg/client"
)

// elasticsearchURL is the node the suite runs against. Tests skip when it
// does not answer.
func elasticsearchURL() string {
	if u := os.Getenv("E2E_ELASTICSEARCH_URL"); u != "" {
		return u
	}
	return "http://localhost:9200"
}

type env struct {
	docs   *store.Store
	tokens *auth.Tokens
	server *httptest.Server
}

func setup(t *testing.T) *env {
	t.Helper()
	log := logger.NewTestLogger(t)

	es, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: elasticsearchURL()})
	require.NoError(t, err)
	if err := es.Ping(context.Background()); err != nil {
		t.Skipf("elasticsearch not reachable at %s: %v", elasticsearchURL(), err)
	}

	// Unique index names keep parallel runs and leftovers apart.
	suffix := uuid.NewString()[:8]
	docs := store.New(es.Client, config.IndexConfig{
		Offers: "e2e-offers-" + suffix,
		Users:  "e2e-users-" + suffix,
	}, nil, log)

	ctx := context.Background()
	_, err = docs.EnsureIndices(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { docs.DeleteIndices(context.Background()) })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	errs := apperrors.NewErrorHandler(log)
	tokens := auth.NewTokens("e2e-secret", "jobboard-e2e", time.Hour)
	revocations := auth.NewRevocations(rdb)

	router := api.NewRouter(api.Deps{
		Search:   search.NewService(docs, docs, docs, 10*time.Second, log),
		Parser:   search.NewParser(search.Limits{DefaultLimit: 20, MaxLimit: 100}),
		Reporter: analytics.NewReporter(docs, analytics.Options{Timeout: 15 * time.Second, MaxConcurrency: 4, TopSkills: 10, TopCompanies: 10, TopLocations: 10}, nil, log),
		Offers:   docs,
		Users:    docs,
		Auth:     auth.NewAuthenticator(tokens, revocations, errs, log),
		Tokens:   tokens,
		Revoker:  revocations,
		Errors:   errs,
		Logger:   log,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &env{docs: docs, tokens: tokens, server: srv}
}

func at(year int, month time.Month, day int) *time.Time {
	ts := time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
	return &ts
}

func offer(id, title string, posted *time.Time, mode models.WorkMode, skills ...string) models.Offer {
	return models.Offer{
		ID:             id,
		Title:          title,
		Source:         models.SourceInternal,
		CompanyName:    "Acme",
		WorkMode:       mode,
		EmploymentType: models.EmploymentFullTime,
		Skills:         skills,
		IsActive:       true,
		PostedAt:       posted,
		ScrapedAt:      posted,
		CreatedAt:      *posted,
		UpdatedAt:      *posted,
	}
}

func TestAnalyticsMonthlySeries(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	offers := []models.Offer{
		offer("o-march", "Go Backend Engineer", at(2024, time.March, 15), models.WorkModeRemote, "go"),
		offer("o-april-1", "Data Engineer", at(2024, time.April, 2), models.WorkModeHybrid, "python", "go"),
		offer("o-april-2", "Frontend Developer", at(2024, time.April, 20), models.WorkModeRemote, "typescript"),
	}
	users := []models.User{
		{ID: "emp1", FirstName: "Ada", LastName: "Boss", Role: models.RoleEmployer, CreatedAt: *at(2024, time.March, 1)},
		{
			ID: "js1", FirstName: "Jo", LastName: "Seeker", Role: models.RoleJobseeker,
			JobseekerProfile: &models.JobseekerProfile{OpenToWork: true, Stack: []string{"go"}},
			CreatedAt:        *at(2024, time.April, 5),
		},
	}
	stats, err := e.docs.BulkLoad(ctx, offers, users)
	require.NoError(t, err)
	require.Equal(t, store.BulkStats{Indexed: 5}, stats)

	c := client.NewClient(e.server.URL, 30*time.Second, "", nil)

	report, err := c.GetAnalytics(ctx, analytics.RangeAll, analytics.ByMonth)
	require.NoError(t, err)

	assert.Equal(t, []analytics.JobsPoint{
		{Date: "2024-03", Count: 1, ActiveCount: 1},
		{Date: "2024-04", Count: 2, ActiveCount: 2},
	}, report.JobsOverTime)
	assert.Equal(t, int64(3), report.Overview.TotalJobs)
	assert.Equal(t, analytics.ByMonth, report.GroupBy)

	var modes int64
	for _, entry := range report.JobsByWorkMode {
		modes += entry.Count
	}
	assert.Equal(t, int64(3), modes)
}

func TestSearchThroughClient(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	offers := []models.Offer{
		offer("o1", "Go Backend Engineer", at(2024, time.March, 15), models.WorkModeRemote, "go", "elasticsearch"),
		offer("o2", "Go Platform Engineer", at(2024, time.April, 2), models.WorkModeInOffice, "go"),
		offer("o3", "Frontend Developer", at(2024, time.April, 20), models.WorkModeRemote, "typescript"),
	}
	users := []models.User{
		{ID: "js1", FirstName: "Jo", LastName: "Seeker", Role: models.RoleJobseeker, SavedOffers: []string{"o2"}, SavedOffersCount: 1, CreatedAt: *at(2024, time.April, 5)},
	}
	_, err := e.docs.BulkLoad(ctx, offers, users)
	require.NoError(t, err)

	anonymous := client.NewClient(e.server.URL, 30*time.Second, "", nil)
	res, err := anonymous.ListOffers(ctx, url.Values{"skills": {"go"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	for _, o := range res.Items {
		assert.Nil(t, o.IsSaved)
	}

	token, err := e.tokens.Sign("js1", "js@example.test", models.RoleJobseeker)
	require.NoError(t, err)
	signedIn := client.NewClient(e.server.URL, 30*time.Second, token, nil)
	res, err = signedIn.ListOffers(ctx, url.Values{"skills": {"go"}, "sortBy": {"postedAt"}, "sortDir": {"asc"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "o1", res.Items[0].ID)
	require.NotNil(t, res.Items[1].IsSaved)
	assert.True(t, *res.Items[1].IsSaved)

	_, err = anonymous.ListOffers(ctx, url.Values{"limit": {"1000"}})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, apiErr.Code)
}
