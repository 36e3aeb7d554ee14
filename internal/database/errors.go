// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package database

import "errors"

// ErrNotFound is returned when a lookup matches no row.
// Callers translate it into a 404 NOT_FOUND response.
var ErrNotFound = errors.New("not found")
