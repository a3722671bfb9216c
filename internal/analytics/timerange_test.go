package analytics

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/common/errors"
)

func TestTimeRange_Window(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		r     TimeRange
		start time.Time
	}{
		{Range7Days, time.Date(2024, 5, 8, 10, 30, 0, 0, time.UTC)},
		{Range30Days, time.Date(2024, 4, 15, 10, 30, 0, 0, time.UTC)},
		{Range90Days, time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)},
		{Range1Year, time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)},
		{RangeAll, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			w := tt.r.Window(now)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, now, w.End)
		})
	}
}

func TestGranularity_Key(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	wed := time.Date(2024, 3, 13, 18, 45, 0, 0, time.UTC)
	sun := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	sat := time.Date(2024, 3, 16, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name string
		g    Granularity
		t    time.Time
		want string
	}{
		{"day", ByDay, wed, "2024-03-13"},
		{"week from wednesday", ByWeek, wed, "2024-03-10"},
		{"week from sunday", ByWeek, sun, "2024-03-10"},
		{"week from saturday", ByWeek, sat, "2024-03-10"},
		{"week across month", ByWeek, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "2024-02-25"},
		{"month", ByMonth, wed, "2024-03"},
		{"year", ByYear, wed, "2024"},
		{"non utc input", ByDay, time.Date(2024, 3, 14, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)), "2024-03-13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.g.Key(tt.t))
		})
	}
}

func TestGranularity_Truncate(t *testing.T) {
	ts := time.Date(2024, 8, 22, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 8, 18, 0, 0, 0, 0, time.UTC), ByWeek.Truncate(ts))
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), ByMonth.Truncate(ts))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ByYear.Truncate(ts))
	assert.Equal(t, time.Sunday, ByWeek.Truncate(ts).Weekday())
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Request{TimeRange: Range30Days, GroupBy: ByMonth}, req)

	req, err = ParseRequest(url.Values{"timeRange": {"1y"}, "groupBy": {"week"}})
	require.NoError(t, err)
	assert.Equal(t, Request{TimeRange: Range1Year, GroupBy: ByWeek}, req)

	_, err = ParseRequest(url.Values{"timeRange": {"2w"}, "groupBy": {"hour"}})
	require.Error(t, err)
	stdErr := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
	require.Len(t, stdErr.Fields, 2)
	assert.Equal(t, "groupBy", stdErr.Fields[0].Field)
	assert.Equal(t, "timeRange", stdErr.Fields[1].Field)
}
