package matching

import (
	"errors"
	"fmt"
	"math"

	"backtrack/internal/domain"
)

// Límites del umbral de match: evitan configuraciones absurdamente laxas o estrictas.
const (
	DefaultMatchThreshold = 60
	MinMatchThreshold     = 30
	MaxMatchThreshold     = 95

	weightsSumTolerance = 0.01

	flatPrimaryWeight   = 2.0
	flatSecondaryWeight = 0.5
)

var (
	ErrWeightsSum      = errors.New("match weights must sum to 1.0")
	ErrNegativeWeight  = errors.New("match weights must be non-negative")
	ErrThresholdsOrder = errors.New("match thresholds must satisfy 0 <= fair < good < excellent <= 100")
)

// Weights asigna un peso no negativo a cada atributo puntuable.
type Weights map[domain.AvatarAttribute]float64

// Thresholds define los cortes de calidad sobre la escala 0-100.
type Thresholds struct {
	Excellent int `json:"excellent" yaml:"excellent"`
	Good      int `json:"good" yaml:"good"`
	Fair      int `json:"fair" yaml:"fair"`
}

// Quality es el tramo de calidad de un score.
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
)

// Config es la configuración canónica del matcher.
// ConditionalAttributes excluye el color de barba y el estampado cuando no aplican.
type Config struct {
	Weights               Weights
	Thresholds            Thresholds
	ConditionalAttributes bool
	MatchThreshold        int
}

// DefaultThresholds devuelve los cortes por defecto (85/70/50).
func DefaultThresholds() Thresholds {
	return Thresholds{Excellent: 85, Good: 70, Fair: 50}
}

// DefaultWeights devuelve una copia de los pesos por defecto; suman 1.0.
func DefaultWeights() Weights {
	return Weights{
		domain.AttrSkinColor:       0.25,
		domain.AttrHairColor:       0.15,
		domain.AttrTopType:         0.12,
		domain.AttrFacialHairType:  0.05,
		domain.AttrFacialHairColor: 0.03,
		domain.AttrEyeType:         0.08,
		domain.AttrMouthType:       0.07,
		domain.AttrEyebrowType:     0.05,
		domain.AttrClotheType:      0.08,
		domain.AttrClotheColor:     0.05,
		domain.AttrAccessoriesType: 0.05,
		domain.AttrGraphicType:     0.02,
	}
}

// FlatWeights reparte 2.0 por atributo primario y 0.5 por secundario, normalizado a 1.0.
func FlatWeights() Weights {
	total := flatPrimaryWeight*float64(len(domain.PrimaryAttributes)) +
		flatSecondaryWeight*float64(len(domain.SecondaryAttributes))
	w := make(Weights, len(domain.ScorableAttributes))
	for _, attr := range domain.PrimaryAttributes {
		w[attr] = flatPrimaryWeight / total
	}
	for _, attr := range domain.SecondaryAttributes {
		w[attr] = flatSecondaryWeight / total
	}
	return w
}

// DefaultConfig es el modelo ponderado de 12 atributos.
func DefaultConfig() Config {
	return Config{
		Weights:               DefaultWeights(),
		Thresholds:            DefaultThresholds(),
		ConditionalAttributes: true,
		MatchThreshold:        DefaultMatchThreshold,
	}
}

// FlatConfig reproduce el esquema primario/secundario: todos los atributos cuentan siempre.
func FlatConfig() Config {
	return Config{
		Weights:               FlatWeights(),
		Thresholds:            DefaultThresholds(),
		ConditionalAttributes: false,
		MatchThreshold:        DefaultMatchThreshold,
	}
}

// ValidateWeightsSum indica si los pesos suman 1.0 con tolerancia de 0.01.
func ValidateWeightsSum(w Weights) bool {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return math.Abs(sum-1.0) <= weightsSumTolerance
}

// ValidateThresholdsOrder indica si excellent > good > fair, fair >= 0 y excellent <= 100.
func ValidateThresholdsOrder(t Thresholds) bool {
	return t.Excellent > t.Good && t.Good > t.Fair && t.Fair >= 0 && t.Excellent <= 100
}

// Validate se llama una vez al arrancar; el scoring no revalida.
func (c Config) Validate() error {
	for attr, v := range c.Weights {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s=%v", ErrNegativeWeight, attr, v)
		}
	}
	if !ValidateWeightsSum(c.Weights) {
		return ErrWeightsSum
	}
	if !ValidateThresholdsOrder(c.Thresholds) {
		return fmt.Errorf("%w: got excellent=%d good=%d fair=%d",
			ErrThresholdsOrder, c.Thresholds.Excellent, c.Thresholds.Good, c.Thresholds.Fair)
	}
	return nil
}

// QualityFor clasifica un score según los cortes.
func (t Thresholds) QualityFor(score int) Quality {
	switch {
	case score >= t.Excellent:
		return QualityExcellent
	case score >= t.Good:
		return QualityGood
	case score >= t.Fair:
		return QualityFair
	}
	return QualityPoor
}

// ClampThreshold limita el umbral de match a [30, 95].
func ClampThreshold(threshold int) int {
	if threshold < MinMatchThreshold {
		return MinMatchThreshold
	}
	if threshold > MaxMatchThreshold {
		return MaxMatchThreshold
	}
	return threshold
}
