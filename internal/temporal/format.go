package temporal

import (
	"fmt"
	"time"

	"backtrack/internal/domain"
)

// FormatOptions controla el formato de la hora del avistamiento.
type FormatOptions struct {
	// IncludeDayOfWeek sustituye fechas de la última semana por el nombre del día.
	IncludeDayOfWeek bool
	Use12HourFormat  bool
}

// DefaultFormatOptions devuelve día de la semana y reloj de 12 horas.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{IncludeDayOfWeek: true, Use12HourFormat: true}
}

// TimeRange describe el rango horario [StartHour, EndHour) de una franja del día.
type TimeRange struct {
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Label     string `json:"label"`
}

var periodRanges = map[domain.TimeGranularity]TimeRange{
	domain.GranularityMorning:   {StartHour: 6, EndHour: 12, Label: "Morning (6am - 12pm)"},
	domain.GranularityAfternoon: {StartHour: 12, EndHour: 18, Label: "Afternoon (12pm - 6pm)"},
	domain.GranularityEvening:   {StartHour: 18, EndHour: 24, Label: "Evening (6pm - 12am)"},
}

// calendarDaysBetween cuenta días de calendario de date a ref en la zona horaria de ref,
// ignorando la hora del día.
func calendarDaysBetween(date, ref time.Time) int {
	d := date.In(ref.Location())
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// FormatRelativeDay devuelve "Today", "Yesterday", el día de la semana (2 a 6 días)
// o mes y día ("Dec 24") para fechas más antiguas o futuras.
func FormatRelativeDay(date, ref time.Time) string {
	return formatRelativeDay(date, ref, true)
}

func formatRelativeDay(date, ref time.Time, weekday bool) string {
	d := date.In(ref.Location())
	switch diff := calendarDaysBetween(date, ref); {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Yesterday"
	case weekday && diff >= 2 && diff <= 6:
		return d.Weekday().String()
	}
	return d.Format("Jan 2")
}

// FormatSightingTime arma el texto del avistamiento: "Yesterday at 3:00 PM" o "Today morning".
func FormatSightingTime(date time.Time, granularity domain.TimeGranularity, ref time.Time, opts FormatOptions) string {
	day := formatRelativeDay(date, ref, opts.IncludeDayOfWeek)
	switch {
	case granularity == domain.GranularitySpecific:
		layout := "3:04 PM"
		if !opts.Use12HourFormat {
			layout = "15:04"
		}
		return fmt.Sprintf("%s at %s", day, date.In(ref.Location()).Format(layout))
	case granularity.IsPeriod():
		return fmt.Sprintf("%s %s", day, granularity)
	}
	return day
}

// GranularityForHour mapea una hora a su franja. De 0 a 5 cuenta como la noche anterior.
func GranularityForHour(hour int) domain.TimeGranularity {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour < 6:
		return domain.GranularityEvening
	case hour < 12:
		return domain.GranularityMorning
	case hour < 18:
		return domain.GranularityAfternoon
	}
	return domain.GranularityEvening
}

// TimeRangeForGranularity devuelve el rango de una franja; false para "specific" o desconocidos.
func TimeRangeForGranularity(g domain.TimeGranularity) (TimeRange, bool) {
	r, ok := periodRanges[g]
	return r, ok
}

// DateWithGranularity fija la hora al punto medio de la franja (9:00, 15:00, 21:00).
// Para "specific" devuelve la fecha sin cambios.
func DateWithGranularity(date time.Time, g domain.TimeGranularity) time.Time {
	r, ok := periodRanges[g]
	if !ok {
		return date
	}
	mid := (r.StartHour + r.EndHour) / 2
	return time.Date(date.Year(), date.Month(), date.Day(), mid, 0, 0, 0, date.Location())
}

// HasDisplayableSightingTime exige fecha y granularidad; un par inconsistente no se muestra.
func HasDisplayableSightingTime(post domain.Post) bool {
	return post.SightingDate != nil && post.TimeGranularity != nil
}

// DisplaySightingTime devuelve el texto del avistamiento o "" si el post no lo tiene.
func DisplaySightingTime(post domain.Post, ref time.Time, opts FormatOptions) string {
	if !HasDisplayableSightingTime(post) {
		return ""
	}
	return FormatSightingTime(*post.SightingDate, *post.TimeGranularity, ref, opts)
}

// ParseGranularity valida una granularidad recibida como texto.
func ParseGranularity(s string) (domain.TimeGranularity, error) {
	g := domain.TimeGranularity(s)
	if !g.IsValid() {
		return "", fmt.Errorf("unknown time granularity %q", s)
	}
	return g, nil
}
