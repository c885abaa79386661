package service

import (
	"strings"
	"time"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
)

// containsFold matches records whose field contains needle, ignoring case.
// An empty needle disables the filter.
func containsFold[T any](needle string, field func(T) string) pagination.Predicate[T] {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return nil
	}
	needle = strings.ToLower(needle)
	return func(v T) bool {
		return strings.Contains(strings.ToLower(field(v)), needle)
	}
}

func equalsID[T any](want *int64, field func(T) *int64) pagination.Predicate[T] {
	if want == nil {
		return nil
	}
	return func(v T) bool {
		got := field(v)
		return got != nil && *got == *want
	}
}

func notBefore[T any](from *time.Time, field func(T) time.Time) pagination.Predicate[T] {
	if from == nil {
		return nil
	}
	return func(v T) bool { return !field(v).Before(*from) }
}

func notAfter[T any](to *time.Time, field func(T) time.Time) pagination.Predicate[T] {
	if to == nil {
		return nil
	}
	return func(v T) bool { return !field(v).After(*to) }
}
