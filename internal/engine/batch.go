package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carbonroute/carbonroute/internal/logging"
)

// Batch size bounds.
const (
	// MinBatchSize is the minimum number of requests per batch.
	MinBatchSize = 1

	// MaxBatchSize is the maximum number of requests per batch.
	MaxBatchSize = 100
)

// ErrBatchSize is returned when a batch is empty or exceeds MaxBatchSize.
var ErrBatchSize = errors.New("batch size must be between 1 and 100")

// BatchOptions tunes a batch run.
type BatchOptions struct {
	// AggregateResults computes totals across successful items.
	AggregateResults bool `json:"aggregateResults,omitempty" yaml:"aggregateResults,omitempty"`

	// Parallel processes items concurrently. Items are independent and
	// side-effect-free besides the factor lookup, so ordering of the
	// output is preserved regardless.
	Parallel bool `json:"parallel,omitempty" yaml:"parallel,omitempty"`

	// MaxConcurrency bounds parallel execution; defaults to NumCPU.
	MaxConcurrency int `json:"maxConcurrency,omitempty" yaml:"maxConcurrency,omitempty"`
}

// BatchRequest is an ordered sequence of calculation requests.
type BatchRequest struct {
	Requests []Request    `json:"requests" yaml:"requests"`
	Options  BatchOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// BatchItemError captures a single failed item without aborting the rest
// of the batch. Index refers to the position in the input sequence.
type BatchItemError struct {
	Index int   `json:"index"`
	Err   error `json:"-"`
}

// Error implements the error interface.
func (e BatchItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e BatchItemError) Unwrap() error { return e.Err }

// BatchAggregate summarizes the successful items of a batch.
type BatchAggregate struct {
	TotalEmissions   float64 `json:"totalEmissions"`
	AverageIntensity float64 `json:"averageIntensity"`
	TotalDistance    float64 `json:"totalDistance"`
	TotalWeight      float64 `json:"totalWeight"`
	CalculationCount int     `json:"calculationCount"`
}

// BatchResult holds per-item outcomes in input order plus the optional
// aggregate block.
type BatchResult struct {
	Individual []*CalculationResult `json:"individual"`
	Errors     []BatchItemError     `json:"errors"`
	Aggregate  *BatchAggregate      `json:"aggregate,omitempty"`
}

// CalculateBatch runs the pipeline over every request with per-item
// isolation: a failure in one item never aborts the rest. Successful
// results appear in Individual in input order; failures are captured in
// Errors with their original index. The orchestrator itself only fails
// on an out-of-bounds batch size.
func (e *Engine) CalculateBatch(ctx context.Context, batch BatchRequest) (*BatchResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	if len(batch.Requests) < MinBatchSize || len(batch.Requests) > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrBatchSize, len(batch.Requests))
	}

	results := make([]*CalculationResult, len(batch.Requests))
	itemErrs := make([]error, len(batch.Requests))

	if batch.Options.Parallel {
		e.runParallel(ctx, batch, results, itemErrs)
	} else {
		for i, req := range batch.Requests {
			results[i], itemErrs[i] = e.Calculate(ctx, req)
		}
	}

	out := &BatchResult{}
	for i := range batch.Requests {
		if itemErrs[i] != nil {
			out.Errors = append(out.Errors, BatchItemError{Index: i, Err: itemErrs[i]})
			continue
		}
		out.Individual = append(out.Individual, results[i])
	}

	if batch.Options.AggregateResults && len(out.Individual) > 0 {
		out.Aggregate = aggregate(out.Individual)
	}

	log.Info().
		Str("component", "engine").
		Str("operation", "calculate_batch").
		Int("requested", len(batch.Requests)).
		Int("succeeded", len(out.Individual)).
		Int("failed", len(out.Errors)).
		Bool("parallel", batch.Options.Parallel).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("batch complete")

	return out, nil
}

// runParallel executes batch items concurrently with bounded concurrency.
// Each goroutine writes only its own indexed slot, so input order is
// preserved without post-hoc sorting.
func (e *Engine) runParallel(ctx context.Context, batch BatchRequest, results []*CalculationResult, itemErrs []error) {
	limit := batch.Options.MaxConcurrency
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range batch.Requests {
		i, req := i, req
		g.Go(func() error {
			results[i], itemErrs[i] = e.Calculate(gctx, req)
			// Item failures are isolated, never group failures.
			return nil
		})
	}

	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()
}

// aggregate computes batch totals over the successful results.
func aggregate(results []*CalculationResult) *BatchAggregate {
	agg := &BatchAggregate{CalculationCount: len(results)}

	var intensitySum float64
	for _, r := range results {
		agg.TotalEmissions += r.Emissions.Total
		agg.TotalDistance += r.Activity.Distance
		agg.TotalWeight += r.Activity.Weight
		intensitySum += r.Metrics.EmissionIntensity
	}
	agg.AverageIntensity = intensitySum / float64(len(results))

	return agg
}
