package domain

// FeedItem es un post listo para mostrar a un viewer concreto.
// Score y Quality quedan vacíos si el viewer no tiene avatar válido.
type FeedItem struct {
	Post          Post   `json:"post"`
	Score         *int   `json:"score,omitempty"`
	IsMatch       bool   `json:"is_match"`
	Quality       string `json:"quality,omitempty"`
	Deprioritized bool   `json:"deprioritized"`
	SightingLabel string `json:"sighting_label,omitempty"`
	Priority      int64  `json:"priority"`
}
