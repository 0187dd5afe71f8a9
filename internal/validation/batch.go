package validation

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/college-directory/internal/types"
)

// DefaultPassThreshold is the score a college (and the run's mean) must reach to pass.
const DefaultPassThreshold = 80

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Workers bounds concurrent validations; zero means GOMAXPROCS.
	Workers   int
	Threshold int
	Logger    *zap.Logger
	// Now is the report clock; nil uses time.Now.
	Now func() time.Time
}

// RunBatch validates every college and aggregates the verdicts into a report
// sorted ascending by score. Each worker writes only its own result slot.
func RunBatch(ctx context.Context, v *Validator, colleges []types.College, opts BatchOptions) (*types.ValidationReport, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	started := time.Now()
	results := make([]types.Verdict, len(colleges))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range colleges {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = v.Validate(&colleges[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validation batch cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("validation batch cancelled: %w", err)
	}

	report := Aggregate(results, opts.Threshold)
	report.RunID = uuid.New().String()
	report.GeneratedAt = now().UTC()

	logger.Info("validation batch complete",
		zap.String("run_id", report.RunID),
		zap.Int("colleges", report.TotalColleges),
		zap.Int("passed", report.PassedColleges),
		zap.Int("failed", report.FailedColleges),
		zap.Float64("average_score", report.AverageScore),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// Aggregate sorts verdicts ascending by score (stable) and computes the
// pass/fail split and mean. An empty batch has a mean of zero.
func Aggregate(verdicts []types.Verdict, threshold int) *types.ValidationReport {
	sorted := make([]types.Verdict, len(verdicts))
	copy(sorted, verdicts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})

	report := &types.ValidationReport{
		Threshold:     threshold,
		TotalColleges: len(sorted),
		Results:       sorted,
	}
	sum := 0
	for _, verdict := range sorted {
		sum += verdict.Score
		if verdict.Score >= threshold {
			report.PassedColleges++
		}
	}
	report.FailedColleges = report.TotalColleges - report.PassedColleges
	if report.TotalColleges > 0 {
		report.AverageScore = float64(sum) / float64(report.TotalColleges)
	}
	return report
}
