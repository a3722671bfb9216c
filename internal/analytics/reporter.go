package analytics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/common/observability"
	"jobboard-api/internal/models"
	"jobboard-api/internal/search"
)

// Options bounds the report. Zero values take the defaults.
type Options struct {
	Timeout        time.Duration
	MaxConcurrency int
	TopSkills      int
	TopCompanies   int
	TopLocations   int
}

func (o Options) withDefaults() Options {
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 8
	}
	if o.TopSkills <= 0 {
		o.TopSkills = 20
	}
	if o.TopCompanies <= 0 {
		o.TopCompanies = 15
	}
	if o.TopLocations <= 0 {
		o.TopLocations = 10
	}
	return o
}

// Reporter builds the analytics report. Every store read is independent and
// runs in a bounded fan-out; the first failure cancels the rest and fails
// the whole report.
type Reporter struct {
	source Source
	opts   Options
	obs    *observability.Observability
	logger logger.Logger
	now    func() time.Time
}

func NewReporter(source Source, opts Options, obs *observability.Observability, log logger.Logger) *Reporter {
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Reporter{
		source: source,
		opts:   opts.withDefaults(),
		obs:    obs,
		logger: log,
		now:    time.Now,
	}
}

func (r *Reporter) Report(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	ctx, span := r.obs.StartSpan(ctx, "analytics.report",
		attribute.String("timeRange", string(req.TimeRange)),
		attribute.String("groupBy", string(req.GroupBy)),
	)
	defer span.End()

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	now := r.now().UTC()
	window := req.TimeRange.Window(now)
	recent := now.AddDate(0, 0, -30)

	report := &Report{
		TimeRange:   req.TimeRange,
		GroupBy:     req.GroupBy,
		GeneratedAt: now,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MaxConcurrency)

	count := func(dst *int64, c Collection, clauses ...search.Clause) {
		g.Go(func() error {
			n, err := r.source.Count(gctx, c, clauses)
			*dst = n
			return err
		})
	}
	o := &report.Overview
	count(&o.TotalJobs, Offers)
	count(&o.ActiveJobs, Offers, search.Term{Field: search.OfferFieldIsActive, Value: true})
	count(&o.TotalUsers, Users)
	count(&o.TotalEmployers, Users, roleIs(models.RoleEmployer))
	count(&o.TotalJobseekers, Users, roleIs(models.RoleJobseeker))
	count(&o.ActiveJobseekers, Users, roleIs(models.RoleJobseeker), search.Term{Field: search.UserFieldOpenToWork, Value: true})
	count(&o.NewJobsThisMonth, Offers, search.DateInterval{Field: search.OfferFieldCreatedAt, After: &recent})
	count(&o.NewUsersThisMonth, Users, search.DateInterval{Field: search.UserFieldCreatedAt, After: &recent})

	group := func(dst *[]BreakdownEntry, grouping Grouping) {
		g.Go(func() error {
			groups, err := r.source.Group(gctx, Offers, grouping)
			if err != nil {
				return err
			}
			*dst = Breakdown(groups)
			return nil
		})
	}
	group(&report.JobsBySource, Grouping{Field: search.OfferFieldSource, Missing: unspecified})
	group(&report.JobsByWorkMode, Grouping{Field: search.OfferFieldWorkMode, Missing: unspecified})
	group(&report.JobsByType, Grouping{Field: search.OfferFieldEmploymentType, Missing: unspecified})
	group(&report.TopSkills, Grouping{Field: search.OfferFieldSkills, Exclude: []string{""}, Limit: r.opts.TopSkills})
	group(&report.TopCompanies, Grouping{Field: search.OfferFieldCompanyKeyword, Exclude: []string{""}, Limit: r.opts.TopCompanies})
	group(&report.JobsByLocation, Grouping{Field: search.OfferFieldCity, Exclude: []string{""}, Limit: r.opts.TopLocations})

	g.Go(func() error {
		buckets, err := r.source.JobsHistogram(gctx, window, req.GroupBy)
		if err != nil {
			return err
		}
		report.JobsOverTime = JobsSeries(buckets, req.GroupBy)
		return nil
	})
	g.Go(func() error {
		buckets, err := r.source.SalaryHistogram(gctx, window, req.GroupBy)
		if err != nil {
			return err
		}
		report.SalaryTrends = SalarySeries(buckets, req.GroupBy)
		return nil
	})
	g.Go(func() error {
		buckets, err := r.source.UsersHistogram(gctx, window, req.GroupBy)
		if err != nil {
			return err
		}
		report.UsersOverTime = UsersSeries(buckets, req.GroupBy)
		return nil
	})
	g.Go(func() error {
		totals, err := r.source.Engagement(gctx)
		if err != nil {
			return err
		}
		report.Engagement = EngagementFrom(totals)
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		r.obs.RecordReport(ctx, time.Since(start), "error")
		r.logger.Error("analytics report failed", map[string]interface{}{
			"timeRange": string(req.TimeRange),
			"groupBy":   string(req.GroupBy),
			"error":     err,
		})
		return nil, err
	}

	r.obs.RecordReport(ctx, time.Since(start), "ok")
	r.logger.Info("analytics report built", map[string]interface{}{
		"timeRange":  string(req.TimeRange),
		"groupBy":    string(req.GroupBy),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return report, nil
}

// unspecified is the bucket for offers without a categorical value.
const unspecified = string(models.WorkModeUnspecified)

func roleIs(role models.Role) search.Clause {
	return search.Term{Field: search.UserFieldRole, Value: string(role)}
}
