// Package service runs the scoring engine over learner profiles, one at a
// time or as a bounded concurrent batch, with logging and metrics.
package service

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/skillradar/internal/domain/dedupe"
	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/internal/domain/scoring"
	"github.com/okian/skillradar/pkg/logger"
	"github.com/okian/skillradar/pkg/metrics"
)

// Service analyses profiles and stamps the resulting reports.
type Service struct {
	engine      *scoring.Engine
	metrics     *metrics.Manager
	logger      logger.Logger
	workerCount int
	now         func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithEngine sets the scoring engine.
func WithEngine(e *scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithWorkerCount sets how many profiles a batch analyses at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. The global manager is used otherwise.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock replaces the clock used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service. Without WithLogger it uses the global logger,
// which must be initialized.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.engine == nil {
		s.engine = scoring.NewEngine()
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Analyze builds the report for p and stamps its id and generation time.
func (s *Service) Analyze(ctx context.Context, p *model.Profile) (model.Report, error) {
	if p == nil {
		s.metrics.RecordAnalysis(metrics.OutcomeFailed)
		return model.Report{}, ErrNilProfile
	}
	if err := ctx.Err(); err != nil {
		s.metrics.RecordAnalysis(metrics.OutcomeFailed)
		return model.Report{}, err
	}

	start := time.Now()
	r := s.engine.Analyze(*p)
	r.ID = uuid.NewString()
	r.GeneratedAt = s.now().UTC()
	elapsed := time.Since(start)

	s.observe(r, elapsed)
	s.logger.Debug(ctx, "profile analysed",
		logger.String("learner_id", r.LearnerID),
		logger.String("report_id", r.ID),
		logger.Int("suggestions", len(r.Suggestions)),
		logger.Int("careers", len(r.Careers)),
		logger.Duration("elapsed", elapsed),
	)
	return r, nil
}

// AnalyzeBatch analyses profiles with at most workerCount running at once.
// Reports keep input order. A learner id seen earlier in the batch is
// skipped, so only its first profile is reported. The first error, including
// context cancellation, aborts the batch.
func (s *Service) AnalyzeBatch(ctx context.Context, profiles []model.Profile) ([]model.Report, error) {
	start := time.Now()
	seen := dedupe.NewSeenSet()

	unique := make([]int, 0, len(profiles))
	for i := range profiles {
		if seen.SeenAndRecord(ctx, profiles[i].LearnerID) {
			s.metrics.RecordDuplicateProfile()
			s.logger.Warn(ctx, "duplicate learner profile skipped",
				logger.String("learner_id", profiles[i].LearnerID),
				logger.Int("position", i),
			)
			continue
		}
		unique = append(unique, i)
	}

	workers := min(s.workerCount, max(len(unique), 1))
	s.metrics.UpdateBatch(workers, len(profiles))

	reports := make([]model.Report, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for slot, idx := range unique {
		g.Go(func() error {
			r, err := s.Analyze(gctx, &profiles[idx])
			if err != nil {
				return err
			}
			reports[slot] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "batch aborted", logger.Error(err), logger.Int("profiles", len(profiles)))
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.RecordLatency(metrics.OpBatch, ms(elapsed))
	s.logger.Info(ctx, "batch analysed",
		logger.Int("profiles", len(profiles)),
		logger.Int("reports", len(reports)),
		logger.Int("workers", workers),
		logger.Duration("elapsed", elapsed),
	)
	return reports, nil
}

func (s *Service) observe(r model.Report, elapsed time.Duration) {
	s.metrics.RecordAnalysis(metrics.OutcomeOK)
	s.metrics.RecordLatency(metrics.OpAnalyze, ms(elapsed))
	for _, sg := range r.Suggestions {
		s.metrics.RecordSuggestion(string(sg.Kind))
	}
	for _, c := range r.Careers {
		s.metrics.RecordCareerMatch(c.MatchPercentage)
	}
	if r.Trend != nil {
		s.metrics.RecordRiskLevel(string(r.Trend.Risk.Level))
	}
	if r.Effort != nil {
		s.metrics.RecordEffortScore(*r.Effort)
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
