package temporal

import (
	"fmt"
	"sort"
	"time"

	"backtrack/internal/domain"
)

const (
	// DeprioritizeAfterDays es la antigüedad a partir de la cual un avistamiento se degrada.
	DeprioritizeAfterDays = 30
	// DeprioritizationPenalty se resta a created_at de los posts degradados.
	DeprioritizationPenalty = 60 * 24 * time.Hour

	futureSkewTolerance = time.Minute
)

// ValidationCode identifica el motivo de rechazo de una fecha de avistamiento.
type ValidationCode string

const (
	CodeInvalidDate ValidationCode = "INVALID_DATE"
	CodeFutureDate  ValidationCode = "FUTURE_DATE"
)

// ValidationResult es el resultado de ValidateSightingDate; nunca se usa como error de control.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Code    ValidationCode `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
}

// ValidateSightingDate rechaza fechas ausentes y fechas más de un minuto en el futuro.
func ValidateSightingDate(date *time.Time, ref time.Time) ValidationResult {
	if date == nil || date.IsZero() {
		return ValidationResult{Code: CodeInvalidDate, Message: "sighting date is missing or invalid"}
	}
	if date.Sub(ref) > futureSkewTolerance {
		return ValidationResult{Code: CodeFutureDate, Message: "sighting date cannot be in the future"}
	}
	return ValidationResult{Valid: true}
}

// IsOlderThan30Days compara días de calendario; exactamente 30 días no cuenta como viejo.
func IsOlderThan30Days(date, ref time.Time) bool {
	return calendarDaysBetween(date, ref) > DeprioritizeAfterDays
}

// PostSortPriority devuelve una clave en milisegundos; mayor se muestra antes.
// Solo mira sighting_date: la granularidad importa para mostrar, no para ordenar.
func PostSortPriority(post domain.Post, ref time.Time) int64 {
	if post.SightingDate == nil {
		return post.CreatedAt.UnixMilli()
	}
	if !IsOlderThan30Days(*post.SightingDate, ref) {
		return post.SightingDate.UnixMilli()
	}
	return post.CreatedAt.Add(-DeprioritizationPenalty).UnixMilli()
}

// IsPostDeprioritized indica si el avistamiento del post tiene más de 30 días.
func IsPostDeprioritized(post domain.Post, ref time.Time) bool {
	return post.SightingDate != nil && IsOlderThan30Days(*post.SightingDate, ref)
}

// SortPostsWithDeprioritization devuelve una copia ordenada por prioridad descendente.
// El slice de entrada no se modifica.
func SortPostsWithDeprioritization(posts []domain.Post, ref time.Time) []domain.Post {
	type ranked struct {
		post     domain.Post
		priority int64
	}
	rs := make([]ranked, len(posts))
	for i, p := range posts {
		rs[i] = ranked{post: p, priority: PostSortPriority(p, ref)}
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].priority > rs[j].priority
	})

	out := make([]domain.Post, len(rs))
	for i, r := range rs {
		out[i] = r.post
	}
	return out
}

// FilterOption es el filtro de antigüedad del feed.
type FilterOption string

const (
	FilterLast24h   FilterOption = "last_24h"
	FilterLastWeek  FilterOption = "last_week"
	FilterLastMonth FilterOption = "last_month"
	FilterAnyTime   FilterOption = "any_time"
)

// ParseFilterOption acepta "" como any_time.
func ParseFilterOption(s string) (FilterOption, error) {
	switch opt := FilterOption(s); opt {
	case "":
		return FilterAnyTime, nil
	case FilterLast24h, FilterLastWeek, FilterLastMonth, FilterAnyTime:
		return opt, nil
	}
	return "", fmt.Errorf("unknown filter option %q", s)
}

// FilterCutoffDate devuelve el límite inferior del filtro, o nil para any_time
// (incluye posts sin fecha de avistamiento).
func FilterCutoffDate(opt FilterOption, ref time.Time) *time.Time {
	var d time.Duration
	switch opt {
	case FilterLast24h:
		d = 24 * time.Hour
	case FilterLastWeek:
		d = 7 * 24 * time.Hour
	case FilterLastMonth:
		d = 30 * 24 * time.Hour
	default:
		return nil
	}
	cutoff := ref.Add(-d)
	return &cutoff
}
