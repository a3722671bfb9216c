package analytics

import (
	"math"
	"sort"
	"time"

	"jobboard-api/internal/models"
)

type Overview struct {
	TotalJobs         int64 `json:"totalJobs"`
	ActiveJobs        int64 `json:"activeJobs"`
	TotalUsers        int64 `json:"totalUsers"`
	TotalEmployers    int64 `json:"totalEmployers"`
	TotalJobseekers   int64 `json:"totalJobseekers"`
	ActiveJobseekers  int64 `json:"activeJobseekers"`
	NewJobsThisMonth  int64 `json:"newJobsThisMonth"`
	NewUsersThisMonth int64 `json:"newUsersThisMonth"`
}

type BreakdownEntry struct {
	Value      string  `json:"value"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type JobsPoint struct {
	Date        string `json:"date"`
	Count       int64  `json:"count"`
	ActiveCount int64  `json:"activeCount"`
}

type SalaryPoint struct {
	Date          string `json:"date"`
	AverageSalary int64  `json:"averageSalary"`
	MinSalary     int64  `json:"minSalary"`
	MaxSalary     int64  `json:"maxSalary"`
	JobCount      int64  `json:"jobCount"`
}

type UsersPoint struct {
	Date       string `json:"date"`
	Employers  int64  `json:"employers"`
	Jobseekers int64  `json:"jobseekers"`
	Total      int64  `json:"total"`
}

type Engagement struct {
	TotalSavedOffers         int64   `json:"totalSavedOffers"`
	TotalSavedJobseekers     int64   `json:"totalSavedJobseekers"`
	JobseekersWithSaves      int64   `json:"jobseekersWithSaves"`
	AverageSavesPerJobseeker float64 `json:"averageSavesPerJobseeker"`
}

// Report is the GET /analytics response.
type Report struct {
	Overview Overview `json:"overview"`

	JobsBySource   []BreakdownEntry `json:"jobsBySource"`
	JobsByWorkMode []BreakdownEntry `json:"jobsByWorkMode"`
	JobsByType     []BreakdownEntry `json:"jobsByType"`
	TopSkills      []BreakdownEntry `json:"topSkills"`
	TopCompanies   []BreakdownEntry `json:"topCompanies"`
	JobsByLocation []BreakdownEntry `json:"jobsByLocation"`

	JobsOverTime  []JobsPoint   `json:"jobsOverTime"`
	SalaryTrends  []SalaryPoint `json:"salaryTrends"`
	UsersOverTime []UsersPoint  `json:"usersOverTime"`

	Engagement Engagement `json:"engagement"`

	TimeRange   TimeRange   `json:"timeRange"`
	GroupBy     Granularity `json:"groupBy"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// Breakdown attaches percentages to grouped counts. The base is the sum of
// the counts given, so the percentages of a non-empty breakdown sum to 100.
// Entries are ordered by count descending, then value.
func Breakdown(groups []GroupCount) []BreakdownEntry {
	var total int64
	for _, g := range groups {
		total += g.Count
	}

	out := make([]BreakdownEntry, 0, len(groups))
	for _, g := range groups {
		entry := BreakdownEntry{Value: g.Value, Count: g.Count}
		if total > 0 {
			entry.Percentage = float64(g.Count) / float64(total) * 100
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// JobsSeries keys the buckets by granularity, merges equal keys and sorts
// ascending.
func JobsSeries(buckets []JobBucket, g Granularity) []JobsPoint {
	byKey := make(map[string]*JobsPoint)
	for _, b := range buckets {
		if b.Count == 0 {
			continue
		}
		key := g.Key(b.Start)
		p, ok := byKey[key]
		if !ok {
			p = &JobsPoint{Date: key}
			byKey[key] = p
		}
		p.Count += b.Count
		p.ActiveCount += b.Active
	}

	out := make([]JobsPoint, 0, len(byKey))
	for _, key := range sortedKeys(byKey) {
		out = append(out, *byKey[key])
	}
	return out
}

// SalarySeries averages the salary sums per bucket. averageSalary is the
// mean of (min+max)/2; every value is rounded to the nearest integer.
func SalarySeries(buckets []SalaryBucket, g Granularity) []SalaryPoint {
	merged := make(map[string]*SalaryBucket)
	for _, b := range buckets {
		if b.Count == 0 {
			continue
		}
		key := g.Key(b.Start)
		m, ok := merged[key]
		if !ok {
			m = &SalaryBucket{}
			merged[key] = m
		}
		m.Count += b.Count
		m.SumMin += b.SumMin
		m.SumMax += b.SumMax
	}

	out := make([]SalaryPoint, 0, len(merged))
	for _, key := range sortedKeys(merged) {
		m := merged[key]
		n := float64(m.Count)
		out = append(out, SalaryPoint{
			Date:          key,
			AverageSalary: round((m.SumMin + m.SumMax) / 2 / n),
			MinSalary:     round(m.SumMin / n),
			MaxSalary:     round(m.SumMax / n),
			JobCount:      m.Count,
		})
	}
	return out
}

// UsersSeries splits registrations per bucket by role.
func UsersSeries(buckets []UserBucket, g Granularity) []UsersPoint {
	byKey := make(map[string]*UsersPoint)
	for _, b := range buckets {
		employers := b.ByRole[models.RoleEmployer]
		jobseekers := b.ByRole[models.RoleJobseeker]
		if employers+jobseekers == 0 {
			continue
		}
		key := g.Key(b.Start)
		p, ok := byKey[key]
		if !ok {
			p = &UsersPoint{Date: key}
			byKey[key] = p
		}
		p.Employers += employers
		p.Jobseekers += jobseekers
		p.Total = p.Employers + p.Jobseekers
	}

	out := make([]UsersPoint, 0, len(byKey))
	for _, key := range sortedKeys(byKey) {
		out = append(out, *byKey[key])
	}
	return out
}

// EngagementFrom derives the average saves per jobseeker, rounded to one
// decimal. It is 0 when no jobseeker has saved anything.
func EngagementFrom(t EngagementTotals) Engagement {
	e := Engagement{
		TotalSavedOffers:     t.SavedOffers,
		TotalSavedJobseekers: t.SavedJobseekers,
		JobseekersWithSaves:  t.JobseekersWithSaves,
	}
	if t.JobseekersWithSaves > 0 {
		avg := float64(t.SavedOffers) / float64(t.JobseekersWithSaves)
		e.AverageSavesPerJobseeker = math.Round(avg*10) / 10
	}
	return e
}

func round(v float64) int64 {
	return int64(math.Round(v))
}

// Bucket keys sort chronologically as strings.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
