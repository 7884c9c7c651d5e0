// Package scoring computes candidate-to-job match scores and rankings.
//
// Everything here is pure and synchronous: inputs arrive as explicit
// parameters and no package state is read or written.
package scoring

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// CosineSimilarity returns the cosine similarity of a and b clamped to [0,1].
// Empty or unequal-length vectors fail with ErrDimensionMismatch. A zero
// magnitude vector on either side yields 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// SimilarityResult is the outcome for one target of a batch comparison.
// Index refers to the position of the target in the input slice.
type SimilarityResult struct {
	Index int
	Score float64
	Err   error
}

// OK reports whether the comparison succeeded.
func (r SimilarityResult) OK() bool {
	return r.Err == nil
}

// CosineSimilarityBatch compares ref against every target in order. A
// malformed target produces a result with Err set; the rest of the batch
// is still computed.
func CosineSimilarityBatch(ref []float64, targets [][]float64) []SimilarityResult {
	results := make([]SimilarityResult, len(targets))
	for i, t := range targets {
		score, err := CosineSimilarity(ref, t)
		results[i] = SimilarityResult{Index: i, Score: score, Err: err}
	}
	return results
}

// ParallelSimilarity is CosineSimilarityBatch spread over at most workers
// goroutines. Results are returned in input order. The only error is
// cancellation of ctx.
func ParallelSimilarity(ctx context.Context, ref []float64, targets [][]float64, workers int) ([]SimilarityResult, error) {
	results := make([]SimilarityResult, len(targets))
	err := forEach(ctx, len(targets), workers, func(i int) {
		score, err := CosineSimilarity(ref, targets[i])
		results[i] = SimilarityResult{Index: i, Score: score, Err: err}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SuccessfulScores returns the scores of successful results, in order.
func SuccessfulScores(results []SimilarityResult) []float64 {
	scores := make([]float64, 0, len(results))
	for _, r := range results {
		if r.OK() {
			scores = append(scores, r.Score)
		}
	}
	return scores
}

// forEach runs fn for every index in [0,n) on a bounded errgroup.
// fn must only write to its own index.
func forEach(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
