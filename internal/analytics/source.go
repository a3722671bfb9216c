package analytics

import (
	"context"
	"time"

	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

// Collection names the record set a count or grouping runs over.
type Collection string

const (
	Offers Collection = "offers"
	Users  Collection = "users"
)

// Grouping describes a single-field breakdown. Records without a value are
// counted under Missing when it is set and skipped otherwise. Values in
// Exclude are never reported. Limit 0 means every value.
type Grouping struct {
	Field   string
	Missing string
	Exclude []string
	Limit   int
}

type GroupCount struct {
	Value string
	Count int64
}

// JobBucket counts offers posted in one bucket.
type JobBucket struct {
	Start  time.Time
	Count  int64
	Active int64
}

// SalaryBucket holds the salary sums of offers that carry both bounds.
type SalaryBucket struct {
	Start  time.Time
	Count  int64
	SumMin float64
	SumMax float64
}

// UserBucket counts registrations per role in one bucket.
type UserBucket struct {
	Start  time.Time
	ByRole map[models.Role]int64
}

// EngagementTotals are the raw saved-relation totals across all users.
type EngagementTotals struct {
	SavedOffers         int64
	SavedJobseekers     int64
	JobseekersWithSaves int64
}

// Source is the read side of the store used by the reporter. Histograms
// return one entry per non-empty bucket; order is not significant.
type Source interface {
	Count(ctx context.Context, c Collection, clauses []search.Clause) (int64, error)
	Group(ctx context.Context, c Collection, g Grouping) ([]GroupCount, error)
	JobsHistogram(ctx context.Context, w Window, g Granularity) ([]JobBucket, error)
	SalaryHistogram(ctx context.Context, w Window, g Granularity) ([]SalaryBucket, error)
	UsersHistogram(ctx context.Context, w Window, g Granularity) ([]UserBucket, error)
	Engagement(ctx context.Context) (EngagementTotals, error)
}
