package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/models"
)

func TestBreakdown(t *testing.T) {
	tests := []struct {
		name   string
		groups []GroupCount
	}{
		{"three values", []GroupCount{{"remote", 3}, {"hybrid", 5}, {"in-office", 2}}},
		{"uneven thirds", []GroupCount{{"a", 1}, {"b", 1}, {"c", 1}}},
		{"single value", []GroupCount{{"internal", 42}}},
		{"many values", []GroupCount{{"a", 7}, {"b", 13}, {"c", 29}, {"d", 1}, {"e", 3}, {"f", 11}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Breakdown(tt.groups)
			require.Len(t, entries, len(tt.groups))

			var total int64
			for _, g := range tt.groups {
				total += g.Count
			}
			var sum float64
			for _, e := range entries {
				sum += e.Percentage
				assert.InDelta(t, float64(e.Count)/float64(total)*100, e.Percentage, 1e-9)
			}
			assert.InDelta(t, 100, sum, 1e-9)
		})
	}
}

func TestBreakdown_OrderAndEmpty(t *testing.T) {
	entries := Breakdown([]GroupCount{{"b", 2}, {"c", 5}, {"a", 2}})
	assert.Equal(t, []string{"c", "a", "b"}, []string{entries[0].Value, entries[1].Value, entries[2].Value})

	assert.Equal(t, []BreakdownEntry{}, Breakdown(nil))

	zero := Breakdown([]GroupCount{{"x", 0}})
	assert.Equal(t, 0.0, zero[0].Percentage)
}

func TestJobsSeries_MonthlyBuckets(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	points := JobsSeries([]JobBucket{
		{Start: april, Count: 2, Active: 1},
		{Start: march, Count: 1, Active: 1},
	}, ByMonth)

	assert.Equal(t, []JobsPoint{
		{Date: "2024-03", Count: 1, ActiveCount: 1},
		{Date: "2024-04", Count: 2, ActiveCount: 1},
	}, points)
}

func TestJobsSeries_MergesAndDropsEmpty(t *testing.T) {
	points := JobsSeries([]JobBucket{
		{Start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Count: 1},
		{Start: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), Count: 2, Active: 2},
		{Start: time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), Count: 0},
		{Start: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), Count: 4},
	}, ByWeek)

	assert.Equal(t, []JobsPoint{
		{Date: "2024-03-03", Count: 4},
		{Date: "2024-03-10", Count: 3, ActiveCount: 2},
	}, points)
	assert.Equal(t, []JobsPoint{}, JobsSeries(nil, ByDay))
}

func TestSalarySeries(t *testing.T) {
	points := SalarySeries([]SalaryBucket{
		// [1000,2000] and [1500,3001]
		{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Count: 2, SumMin: 2500, SumMax: 5001},
		{Start: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Count: 1, SumMin: 100, SumMax: 200},
	}, ByYear)

	require.Len(t, points, 2)
	assert.Equal(t, SalaryPoint{Date: "2023", AverageSalary: 150, MinSalary: 100, MaxSalary: 200, JobCount: 1}, points[0])
	// average of 1500 and 2250.5 = 1875.25; min 1250; max 2500.5 rounds up
	assert.Equal(t, SalaryPoint{Date: "2024", AverageSalary: 1875, MinSalary: 1250, MaxSalary: 2501, JobCount: 2}, points[1])
}

func TestUsersSeries(t *testing.T) {
	points := UsersSeries([]UserBucket{
		{Start: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), ByRole: map[models.Role]int64{models.RoleJobseeker: 3}},
		{Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ByRole: map[models.Role]int64{models.RoleEmployer: 1, models.RoleJobseeker: 2}},
		{Start: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), ByRole: map[models.Role]int64{models.RoleEmployer: 2}},
		{Start: time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC), ByRole: map[models.Role]int64{}},
	}, ByMonth)

	assert.Equal(t, []UsersPoint{
		{Date: "2024-01", Employers: 2, Jobseekers: 0, Total: 2},
		{Date: "2024-02", Employers: 1, Jobseekers: 5, Total: 6},
	}, points)
}

func TestEngagementFrom(t *testing.T) {
	tests := []struct {
		name   string
		totals EngagementTotals
		want   float64
	}{
		{"ten saves over four jobseekers", EngagementTotals{SavedOffers: 10, JobseekersWithSaves: 4}, 2.5},
		{"nobody saved", EngagementTotals{SavedOffers: 0, JobseekersWithSaves: 0}, 0},
		{"one decimal", EngagementTotals{SavedOffers: 10, JobseekersWithSaves: 3}, 3.3},
		{"rounds half up", EngagementTotals{SavedOffers: 21, JobseekersWithSaves: 20}, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EngagementFrom(tt.totals)
			assert.Equal(t, tt.want, e.AverageSavesPerJobseeker)
			assert.Equal(t, tt.totals.SavedOffers, e.TotalSavedOffers)
			assert.Equal(t, tt.totals.JobseekersWithSaves, e.JobseekersWithSaves)
		})
	}
}
