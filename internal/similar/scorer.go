// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package similar

import (
	"github.com/descubre-mx/descubre/internal/models"
)

// Human-readable factor labels returned to clients. A factor appears in a
// result's factor list only when its contribution was strictly positive.
const (
	FactorRegion          = "Región"
	FactorCategoria       = "Categoría"
	FactorCaracteristicas = "Características"
	FactorTipoDeDestino   = "Tipo de Destino"
)

// ScorerConfig contains the factor weights. Weights are normalized to sum
// to 1.0 so scores stay in [0,1].
type ScorerConfig struct {
	RegionWeight         float64
	CategoriaWeight      float64
	CaracteristicaWeight float64
	TopWeight            float64
}

// DefaultScorerConfig returns the reference weights: region 0.4,
// categories 0.3, characteristics 0.2, top status 0.1.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		RegionWeight:         0.4,
		CategoriaWeight:      0.3,
		CaracteristicaWeight: 0.2,
		TopWeight:            0.1,
	}
}

// Scorer computes weighted similarity scores between destinations.
// It is stateless and safe for concurrent use.
type Scorer struct {
	regionWeight         float64
	categoriaWeight      float64
	caracteristicaWeight float64
	topWeight            float64
}

// NewScorer creates a scorer with the given weights. Zero-valued weights
// fall back to the defaults, then the set is normalized to sum to 1.0.
func NewScorer(cfg ScorerConfig) *Scorer {
	def := DefaultScorerConfig()
	if cfg.RegionWeight == 0 {
		cfg.RegionWeight = def.RegionWeight
	}
	if cfg.CategoriaWeight == 0 {
		cfg.CategoriaWeight = def.CategoriaWeight
	}
	if cfg.CaracteristicaWeight == 0 {
		cfg.CaracteristicaWeight = def.CaracteristicaWeight
	}
	if cfg.TopWeight == 0 {
		cfg.TopWeight = def.TopWeight
	}

	total := cfg.RegionWeight + cfg.CategoriaWeight + cfg.CaracteristicaWeight + cfg.TopWeight
	if total > 0 {
		cfg.RegionWeight /= total
		cfg.CategoriaWeight /= total
		cfg.CaracteristicaWeight /= total
		cfg.TopWeight /= total
	}

	return &Scorer{
		regionWeight:         cfg.RegionWeight,
		categoriaWeight:      cfg.CategoriaWeight,
		caracteristicaWeight: cfg.CaracteristicaWeight,
		topWeight:            cfg.TopWeight,
	}
}

// Score computes the similarity between a reference and a candidate.
// Returns the score in [0,1] and the labels of the factors that
// contributed strictly positively.
//
// Every factor's weight counts toward the denominator regardless of
// whether the underlying sets are empty. Two destinations with no
// category data contribute 0 of that factor's weight, exactly like two
// destinations with disjoint non-empty sets. This matches the reference
// behavior; do not redistribute weight over factors with data.
func (s *Scorer) Score(ref, cand *models.Destino) (float64, []string) {
	var score float64
	factors := make([]string, 0, 4)

	// Region: full weight on exact match, both non-null.
	if ref.RegionID != nil && cand.RegionID != nil && *ref.RegionID == *cand.RegionID {
		score += s.regionWeight
		factors = append(factors, FactorRegion)
	}

	// Categories: ratio of shared ids over the sum of both set sizes,
	// only when both sets are non-empty.
	refCats := ref.CategoriaIDs()
	candCats := cand.CategoriaIDs()
	if len(refCats) > 0 && len(candCats) > 0 {
		shared := sharedCount(refCats, candCats)
		contribution := s.categoriaWeight * safeRatio(float64(shared), float64(len(refCats)+len(candCats)))
		score += contribution
		if shared > 0 {
			factors = append(factors, FactorCategoria)
		}
	}

	// Characteristics: same ratio formula.
	refCars := ref.CaracteristicaIDs()
	candCars := cand.CaracteristicaIDs()
	if len(refCars) > 0 && len(candCars) > 0 {
		shared := sharedCount(refCars, candCars)
		contribution := s.caracteristicaWeight * safeRatio(float64(shared), float64(len(refCars)+len(candCars)))
		score += contribution
		if shared > 0 {
			factors = append(factors, FactorCaracteristicas)
		}
	}

	// Top status: full weight when both are curated tops.
	if ref.IsTop && cand.IsTop {
		score += s.topWeight
		factors = append(factors, FactorTipoDeDestino)
	}

	// Divide by the full weight total. Weights are normalized to 1.0 at
	// construction, so this is the identity in the default configuration,
	// but it keeps custom weight sets bounded.
	totalWeight := s.regionWeight + s.categoriaWeight + s.caracteristicaWeight + s.topWeight
	return safeRatio(score, totalWeight), factors
}

// sharedCount returns the number of ids present in both sets.
func sharedCount(a, b []int64) int {
	set := make(map[int64]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}

	count := 0
	for _, id := range b {
		if _, ok := set[id]; ok {
			count++
		}
	}
	return count
}

// safeRatio returns numerator/denominator, or 0 when the denominator is 0.
// Centralizes the division guard used throughout scoring.
func safeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
