package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
)

// ==========================
// Mock Store Implementation
// ==========================

type MockStore struct {
	mock.Mock
}

func (m *MockStore) SearchOffers(ctx context.Context, spec Spec) ([]models.Offer, int64, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Offer), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) SearchUsers(ctx context.Context, spec Spec) ([]models.User, int64, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) SavedOfferIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) SavedJobseekerIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newTestService(t *testing.T, store *MockStore) *Service {
	return NewService(store, store, store, time.Second, logger.NewTestLogger(t))
}

var (
	jobseeker = &auth.Identity{UserID: "js-1", Role: models.RoleJobseeker}
	employer  = &auth.Identity{UserID: "emp-1", Role: models.RoleEmployer}
)

func TestService_SearchOffers(t *testing.T) {
	tests := []struct {
		name      string
		viewer    *auth.Identity
		wantSaved []interface{}
	}{
		{"anonymous sees no saved flag", nil, []interface{}{nil, nil}},
		{"employer sees no saved flag", employer, []interface{}{nil, nil}},
		{"jobseeker sees saved flag", jobseeker, []interface{}{false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			q := OfferQuery{IsActive: ptr(true), Page: Page{Number: 2, Limit: 2}}
			store.On("SearchOffers", mock.Anything, q.Spec()).
				Return([]models.Offer{{ID: "o1"}, {ID: "o2"}}, int64(5), nil)
			if tt.viewer.Is(models.RoleJobseeker) {
				store.On("SavedOfferIDs", mock.Anything, "js-1").Return([]string{"o2", "o9"}, nil)
			}

			res, err := newTestService(t, store).SearchOffers(context.Background(), q, tt.viewer)
			require.NoError(t, err)

			assert.Equal(t, int64(5), res.Total)
			assert.Equal(t, 2, res.Page)
			assert.Equal(t, 3, res.Pages)
			require.Len(t, res.Items, 2)
			for i, want := range tt.wantSaved {
				if want == nil {
					assert.Nil(t, res.Items[i].IsSaved)
					continue
				}
				require.NotNil(t, res.Items[i].IsSaved)
				assert.Equal(t, want, *res.Items[i].IsSaved)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestService_SearchJobseekers(t *testing.T) {
	store := new(MockStore)
	q := JobseekerQuery{OpenToWork: ptr(true), Page: Page{Number: 1, Limit: 20}}
	users := []models.User{
		{ID: "u1", Email: "secret@example.com", FirstName: "Anna", Role: models.RoleJobseeker},
		{ID: "u2", FirstName: "Ben", Role: models.RoleJobseeker},
	}
	store.On("SearchUsers", mock.Anything, q.Spec()).Return(users, int64(2), nil)
	store.On("SavedJobseekerIDs", mock.Anything, "emp-1").Return([]string{"u1"}, nil)

	res, err := newTestService(t, store).SearchJobseekers(context.Background(), q, employer)
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.True(t, *res.Items[0].IsSaved)
	assert.False(t, *res.Items[1].IsSaved)
	assert.NotContains(t, toJSON(t, res), "secret@example.com")
	store.AssertExpectations(t)
}

func TestService_JobseekerViewerGetsNoSavedFlagOnProfiles(t *testing.T) {
	store := new(MockStore)
	q := JobseekerQuery{Page: Page{Number: 1, Limit: 20}}
	store.On("SearchUsers", mock.Anything, q.Spec()).Return([]models.User{{ID: "u1"}}, int64(1), nil)

	res, err := newTestService(t, store).SearchJobseekers(context.Background(), q, jobseeker)
	require.NoError(t, err)
	assert.Nil(t, res.Items[0].IsSaved)
	store.AssertNotCalled(t, "SavedJobseekerIDs", mock.Anything, mock.Anything)
}

func TestService_ErrorsPropagate(t *testing.T) {
	storeErr := errors.New("search failed")

	t.Run("search error", func(t *testing.T) {
		store := new(MockStore)
		q := OfferQuery{Page: Page{Number: 1, Limit: 20}}
		store.On("SearchOffers", mock.Anything, q.Spec()).Return(nil, int64(0), storeErr)

		res, err := newTestService(t, store).SearchOffers(context.Background(), q, nil)
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, res)
	})

	t.Run("saved lookup error", func(t *testing.T) {
		store := new(MockStore)
		q := OfferQuery{Page: Page{Number: 1, Limit: 20}}
		store.On("SearchOffers", mock.Anything, q.Spec()).Return([]models.Offer{}, int64(0), nil)
		store.On("SavedOfferIDs", mock.Anything, "js-1").Return(nil, storeErr)

		_, err := newTestService(t, store).SearchOffers(context.Background(), q, jobseeker)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestService_AppliesTimeout(t *testing.T) {
	store := new(MockStore)
	q := OfferQuery{Page: Page{Number: 1, Limit: 20}}
	store.On("SearchOffers", mock.Anything, q.Spec()).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			assert.True(t, ok)
		}).
		Return([]models.Offer{}, int64(0), nil)

	res, err := newTestService(t, store).SearchOffers(context.Background(), q, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Pages)
}
