package matching

import (
	"math"
	"sort"

	"backtrack/internal/domain"
)

// AttributeBreakdown detalla la contribución de un atributo al score.
// Applicable solo se informa para los atributos condicionales.
type AttributeBreakdown struct {
	Attribute     domain.AvatarAttribute `json:"attribute"`
	Similarity    float64                `json:"similarity"`
	Weight        float64                `json:"weight"`
	Contribution  float64                `json:"contribution"`
	Matches       bool                   `json:"matches"`
	TargetValue   string                 `json:"target_value"`
	ConsumerValue string                 `json:"consumer_value"`
	Applicable    *bool                  `json:"applicable,omitempty"`
}

// Result es la salida de comparar un avatar target con el de un consumidor.
type Result struct {
	Score         int                  `json:"score"`
	IsMatch       bool                 `json:"is_match"`
	Quality       Quality              `json:"quality"`
	Breakdown     []AttributeBreakdown `json:"breakdown,omitempty"`
	WeightedScore float64              `json:"weighted_score,omitempty"`
	MaxPossible   float64              `json:"max_possible,omitempty"`
}

// PostMatch es el resultado de scoring de un post dentro de un lote.
type PostMatch struct {
	PostID  string `json:"post_id"`
	Score   int    `json:"score"`
	IsMatch bool   `json:"is_match"`
}

// Matcher puntúa avatares con una Config fija. Es inmutable y seguro para uso concurrente.
type Matcher struct {
	cfg Config
}

// NewMatcher copia la configuración para que el llamador no pueda mutarla después.
// El umbral se acota a [30, 95] para que Threshold informe el valor que se aplica.
func NewMatcher(cfg Config) *Matcher {
	weights := make(Weights, len(cfg.Weights))
	for k, v := range cfg.Weights {
		weights[k] = v
	}
	cfg.Weights = weights
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = DefaultMatchThreshold
	}
	cfg.MatchThreshold = ClampThreshold(cfg.MatchThreshold)
	return &Matcher{cfg: cfg}
}

// DefaultMatcher usa el modelo ponderado por defecto.
var DefaultMatcher = NewMatcher(DefaultConfig())

func (m *Matcher) Threshold() int {
	return m.cfg.MatchThreshold
}

func (m *Matcher) Thresholds() Thresholds {
	return m.cfg.Thresholds
}

// Compare puntúa con el umbral configurado.
func (m *Matcher) Compare(target, consumer domain.AvatarConfig) Result {
	return m.CompareAt(target, consumer, m.cfg.MatchThreshold)
}

// CompareAt puntúa con un umbral explícito, acotado a [30, 95].
func (m *Matcher) CompareAt(target, consumer domain.AvatarConfig, threshold int) Result {
	res := m.score(target, consumer, threshold, false)
	res.WeightedScore = 0
	res.MaxPossible = 0
	return res
}

// CompareDetailed incluye el desglose por atributo y los totales crudos.
func (m *Matcher) CompareDetailed(target, consumer domain.AvatarConfig, threshold int) Result {
	return m.score(target, consumer, threshold, true)
}

func (m *Matcher) score(target, consumer domain.AvatarConfig, threshold int, detailed bool) Result {
	var weighted, maxPossible float64
	var breakdown []AttributeBreakdown
	if detailed {
		breakdown = make([]AttributeBreakdown, 0, len(domain.ScorableAttributes))
	}

	for _, attr := range domain.ScorableAttributes {
		weight := m.cfg.Weights[attr]
		tv, cv := target.Value(attr), consumer.Value(attr)
		sim := Similarity(attr, tv, cv)

		applicable, conditional := m.applicable(attr, target, consumer)
		contribution := 0.0
		if applicable {
			contribution = sim * weight
			weighted += contribution
			maxPossible += weight
		}

		if detailed {
			item := AttributeBreakdown{
				Attribute:     attr,
				Similarity:    sim,
				Weight:        weight,
				Contribution:  contribution,
				Matches:       sim >= AttributeMatchCutoff,
				TargetValue:   tv,
				ConsumerValue: cv,
			}
			if conditional {
				a := applicable
				item.Applicable = &a
			}
			breakdown = append(breakdown, item)
		}
	}

	score := 0
	if maxPossible > 0 {
		score = int(math.Round(100 * weighted / maxPossible))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		Score:         score,
		IsMatch:       score >= ClampThreshold(threshold),
		Quality:       m.cfg.Thresholds.QualityFor(score),
		Breakdown:     breakdown,
		WeightedScore: weighted,
		MaxPossible:   maxPossible,
	}
}

// applicable decide si un atributo cuenta. El color de barba solo cuenta si ambos tienen barba,
// el estampado solo si ambos visten camiseta gráfica.
func (m *Matcher) applicable(attr domain.AvatarAttribute, target, consumer domain.AvatarConfig) (applicable, conditional bool) {
	switch attr {
	case domain.AttrFacialHairColor:
		if !m.cfg.ConditionalAttributes {
			return true, false
		}
		return target.HasFacialHair() && consumer.HasFacialHair(), true
	case domain.AttrGraphicType:
		if !m.cfg.ConditionalAttributes {
			return true, false
		}
		return target.WearsGraphicShirt() && consumer.WearsGraphicShirt(), true
	}
	return true, false
}

// BatchMatches puntúa cada post contra el avatar del consumidor y ordena por score descendente.
// Los empates conservan el orden de entrada.
func (m *Matcher) BatchMatches(consumer domain.AvatarConfig, posts []domain.Post, threshold int) []PostMatch {
	out := make([]PostMatch, 0, len(posts))
	for _, p := range posts {
		res := m.CompareAt(p.TargetAvatar, consumer, threshold)
		out = append(out, PostMatch{PostID: p.ID, Score: res.Score, IsMatch: res.IsMatch})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// FilterMatchingPosts devuelve solo los posts que hacen match al umbral dado, en orden de entrada.
func (m *Matcher) FilterMatchingPosts(consumer domain.AvatarConfig, posts []domain.Post, threshold int) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if m.CompareAt(p.TargetAvatar, consumer, threshold).IsMatch {
			out = append(out, p)
		}
	}
	return out
}
