package matching

import (
	"math"

	"backtrack/internal/domain"
)

const quickMatchMinPrimary = 3

// Summary cuenta cuántos atributos coinciden (similitud >= 0.5).
type Summary struct {
	MatchCount int `json:"match_count"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// QuickMatch es un prefiltro barato: al menos 3 de los 5 primarios deben coincidir.
func QuickMatch(target, consumer domain.AvatarConfig) bool {
	return PrimaryMatchCount(target, consumer).MatchCount >= quickMatchMinPrimary
}

// MatchSummary resume coincidencias sobre los 12 atributos puntuables.
func MatchSummary(target, consumer domain.AvatarConfig) Summary {
	return summarize(domain.ScorableAttributes, target, consumer)
}

// PrimaryMatchCount resume coincidencias solo sobre los 5 atributos primarios.
func PrimaryMatchCount(target, consumer domain.AvatarConfig) Summary {
	return summarize(domain.PrimaryAttributes, target, consumer)
}

func summarize(attrs []domain.AvatarAttribute, target, consumer domain.AvatarConfig) Summary {
	s := Summary{Total: len(attrs)}
	for _, attr := range attrs {
		if Similarity(attr, target.Value(attr), consumer.Value(attr)) >= AttributeMatchCutoff {
			s.MatchCount++
		}
	}
	if s.Total > 0 {
		s.Percentage = int(math.Round(100 * float64(s.MatchCount) / float64(s.Total)))
	}
	return s
}

// IsValidForMatching exige un avatar no nil con todos los primarios definidos.
func IsValidForMatching(avatar *domain.AvatarConfig) bool {
	if avatar == nil {
		return false
	}
	for _, attr := range domain.PrimaryAttributes {
		if avatar.Value(attr) == "" {
			return false
		}
	}
	return true
}
