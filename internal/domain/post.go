package domain

import "time"

// TimeGranularity indica la precisión con la que se conoce la hora del avistamiento.
type TimeGranularity string

const (
	GranularitySpecific  TimeGranularity = "specific"
	GranularityMorning   TimeGranularity = "morning"
	GranularityAfternoon TimeGranularity = "afternoon"
	GranularityEvening   TimeGranularity = "evening"
)

// IsPeriod indica si la granularidad es una franja del día y no una hora exacta.
func (g TimeGranularity) IsPeriod() bool {
	return g == GranularityMorning || g == GranularityAfternoon || g == GranularityEvening
}

// IsValid indica si la granularidad es uno de los valores conocidos.
func (g TimeGranularity) IsValid() bool {
	return g == GranularitySpecific || g.IsPeriod()
}

// Post es una publicación de "conexión perdida" en una ubicación.
// SightingDate y TimeGranularity se guardan juntos o quedan ambos en nil.
type Post struct {
	ID              string           `json:"id"`
	LocationID      string           `json:"location_id"`
	ProducerID      string           `json:"producer_id"`
	TargetAvatar    AvatarConfig     `json:"target_avatar"`
	Note            string           `json:"note"`
	SightingDate    *time.Time       `json:"sighting_date"`
	TimeGranularity *TimeGranularity `json:"time_granularity"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
}
