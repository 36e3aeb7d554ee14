// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

// Package similar implements destination similarity scoring and ranking.
//
// The scorer computes a weighted [0,1] similarity between a reference
// destination and a candidate over four independent factors:
//
//	sim(ref, cand) = w_region * regionMatch +
//	                 w_cat    * shared / (|ref.cats| + |cand.cats|) +
//	                 w_car    * shared / (|ref.cars| + |cand.cars|) +
//	                 w_top    * topMatch
//
// divided by the full weight total. The denominator always counts every
// factor's weight, including factors with no data on either side; a pair
// with empty category sets scores lower, never inflated.
//
// The ranker builds the candidate pool from a CandidateProvider (published
// destinations sharing at least one factor with the reference, excluding
// the reference itself), scores each candidate, drops those below the
// minimum score, sorts descending with stable tie order, and truncates.
//
// The package has no dependency on the database layer; the
// CandidateProvider interface allows integration without circular imports.
package similar
