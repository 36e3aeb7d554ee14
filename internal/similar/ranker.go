// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package similar

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/descubre-mx/descubre/internal/models"
)

// Options controls a similarity lookup. The HTTP layer validates ranges
// before the ranker runs; Validate rejects out-of-range values defensively
// when the ranker is called directly.
type Options struct {
	// Limit caps the result list, 1-20.
	Limit int

	// MinScore drops candidates scoring below it, 0.1-1.0.
	MinScore float64

	// IncludeRegion widens the candidate pool with same-region
	// destinations. Widening only: it never filters out non-matches.
	IncludeRegion bool

	// IncludeCategories narrows the pool to destinations sharing at
	// least one category id with the reference.
	IncludeCategories bool

	// IncludeCharacteristics narrows the pool to destinations sharing at
	// least one characteristic id with the reference.
	IncludeCharacteristics bool
}

// DefaultOptions returns the reference defaults: 6 results, 0.1 floor,
// all factors enabled.
func DefaultOptions() Options {
	return Options{
		Limit:                  6,
		MinScore:               0.1,
		IncludeRegion:          true,
		IncludeCategories:      true,
		IncludeCharacteristics: true,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Limit < 1 || o.Limit > 20 {
		return fmt.Errorf("limit must be between 1 and 20, got %d", o.Limit)
	}
	if o.MinScore < 0.1 || o.MinScore > 1.0 {
		return fmt.Errorf("min_score must be between 0.1 and 1.0, got %g", o.MinScore)
	}
	return nil
}

// CandidateProvider supplies the candidate pool for a similarity lookup.
// Implementations must return published destinations only, excluding the
// reference itself, applying the region OR-widening and the category/
// characteristic AND-narrowing described by Options. Retrieval order must
// be deterministic; it is preserved for equal scores.
type CandidateProvider interface {
	FindCandidates(ctx context.Context, ref *models.Destino, opts Options) ([]models.Destino, error)
}

// Ranker scores and orders similarity candidates.
type Ranker struct {
	provider CandidateProvider
	scorer   *Scorer
	logger   zerolog.Logger
}

// NewRanker creates a ranker using the given candidate provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(provider CandidateProvider, scorer *Scorer, logger zerolog.Logger) *Ranker {
	if scorer == nil {
		scorer = NewScorer(DefaultScorerConfig())
	}
	return &Ranker{
		provider: provider,
		scorer:   scorer,
		logger:   logger.With().Str("component", "similar").Logger(),
	}
}

// FindSimilar returns up to opts.Limit destinations similar to ref,
// ordered by descending score. Candidates scoring below opts.MinScore are
// dropped. Equal scores keep their retrieval order (stable sort, no
// secondary key). Returns the mapped results and the number of candidates
// evaluated. An empty pool yields an empty list, not an error.
func (r *Ranker) FindSimilar(ctx context.Context, ref *models.Destino, opts Options) ([]models.DestinoSimilar, int, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}

	candidates, err := r.provider.FindCandidates(ctx, ref, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find candidates: %w", err)
	}

	type scored struct {
		destino *models.Destino
		score   float64
		factors []string
	}

	kept := make([]scored, 0, len(candidates))
	for i := range candidates {
		score, factors := r.scorer.Score(ref, &candidates[i])
		if score >= opts.MinScore {
			kept = append(kept, scored{destino: &candidates[i], score: score, factors: factors})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}

	results := make([]models.DestinoSimilar, len(kept))
	for i, s := range kept {
		results[i] = models.DestinoSimilar{
			ID:               s.destino.ID,
			Nombre:           s.destino.Nombre,
			Slug:             s.destino.Slug,
			DescripcionCorta: s.destino.DescripcionCorta,
			ImagenPrincipal:  s.destino.ImagenPrincipal,
			Rating:           s.destino.AverageRating,
			ReviewsCount:     s.destino.ReviewsCount,
			Score:            math.Round(s.score*100) / 100,
			Factors:          s.factors,
		}
	}

	r.logger.Debug().
		Int64("reference_id", ref.ID).
		Int("candidates", len(candidates)).
		Int("returned", len(results)).
		Msg("Similarity ranking complete")

	return results, len(candidates), nil
}
