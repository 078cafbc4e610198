// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

// firstNonEmpty returns the first candidate that is not the zero value, in
// the order given. Field fallbacks (localized value first, then the
// original) are written as a candidate list passed here so each chain can
// be read in one place.
func firstNonEmpty[T comparable](candidates ...T) (T, bool) {
	var zero T
	for _, c := range candidates {
		if c != zero {
			return c, true
		}
	}
	return zero, false
}

// firstNonEmptyList is firstNonEmpty for slices: the first list with at
// least one element wins.
func firstNonEmptyList[T any](candidates ...[]T) []T {
	for _, c := range candidates {
		if len(c) > 0 {
			return c
		}
	}
	return nil
}

// orDefault resolves candidates and falls back to def.
func orDefault(def string, candidates ...string) string {
	if v, ok := firstNonEmpty(candidates...); ok {
		return v
	}
	return def
}

// optional resolves candidates to a pointer, nil when all are empty.
func optional[T comparable](candidates ...T) *T {
	if v, ok := firstNonEmpty(candidates...); ok {
		return &v
	}
	return nil
}
