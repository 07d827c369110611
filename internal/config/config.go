package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/goccy/go-yaml"

	"backtrack/internal/domain"
	"backtrack/internal/matching"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort              string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL           string `env:"DATABASE_URL,required"`
	JWTSecret             string `env:"JWT_SECRET"`
	JWTAudience           string `env:"JWT_AUDIENCE" envDefault:"authenticated"`
	JWTIssuer             string `env:"JWT_ISSUER"`
	RedisAddr             string `env:"REDIS_ADDR"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB" envDefault:"0"`
	MatchConfigPath       string `env:"MATCH_CONFIG_PATH"`
	MatchThreshold        int    `env:"MATCH_THRESHOLD" envDefault:"60"`
	PostRateLimit         int    `env:"POST_RATE_LIMIT" envDefault:"5"`
	PostRateWindowMinutes int    `env:"POST_RATE_WINDOW_MINUTES" envDefault:"60"`
	FeedLimit             int    `env:"FEED_LIMIT" envDefault:"200"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MatchFile es el formato YAML del archivo de configuración del matcher.
type MatchFile struct {
	Preset                string               `yaml:"preset"`
	Weights               map[string]float64   `yaml:"weights"`
	Thresholds            *matching.Thresholds `yaml:"thresholds"`
	ConditionalAttributes *bool                `yaml:"conditional_attributes"`
	MatchThreshold        int                  `yaml:"match_threshold"`
}

const (
	PresetWeighted = "weighted"
	PresetFlat     = "flat"
)

// MatchConfig arma la configuración del matcher y la valida; se llama una vez al arrancar.
func (c *Config) MatchConfig() (matching.Config, error) {
	mc := matching.DefaultConfig()
	if c.MatchThreshold != 0 {
		mc.MatchThreshold = c.MatchThreshold
	}
	if c.MatchConfigPath != "" {
		data, err := os.ReadFile(c.MatchConfigPath)
		if err != nil {
			return matching.Config{}, fmt.Errorf("read match config: %w", err)
		}
		mc, err = ParseMatchConfig(data, mc.MatchThreshold)
		if err != nil {
			return matching.Config{}, err
		}
	}
	if err := mc.Validate(); err != nil {
		return matching.Config{}, fmt.Errorf("invalid match config: %w", err)
	}
	return mc, nil
}

// ParseMatchConfig interpreta el YAML partiendo del preset elegido.
// Los pesos del archivo reemplazan a los del preset atributo por atributo;
// match_threshold del archivo tiene prioridad sobre threshold.
func ParseMatchConfig(data []byte, threshold int) (matching.Config, error) {
	var file MatchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return matching.Config{}, fmt.Errorf("parse match config: %w", err)
	}

	var mc matching.Config
	switch strings.ToLower(strings.TrimSpace(file.Preset)) {
	case "", PresetWeighted:
		mc = matching.DefaultConfig()
	case PresetFlat:
		mc = matching.FlatConfig()
	default:
		return matching.Config{}, fmt.Errorf("unknown match preset %q", file.Preset)
	}
	if threshold != 0 {
		mc.MatchThreshold = threshold
	}

	for key, w := range file.Weights {
		attr := domain.AvatarAttribute(key)
		if !isScorable(attr) {
			return matching.Config{}, fmt.Errorf("unknown match weight attribute %q", key)
		}
		mc.Weights[attr] = w
	}
	if file.Thresholds != nil {
		mc.Thresholds = *file.Thresholds
	}
	if file.ConditionalAttributes != nil {
		mc.ConditionalAttributes = *file.ConditionalAttributes
	}
	if file.MatchThreshold != 0 {
		mc.MatchThreshold = file.MatchThreshold
	}
	return mc, nil
}

func isScorable(attr domain.AvatarAttribute) bool {
	for _, a := range domain.ScorableAttributes {
		if a == attr {
			return true
		}
	}
	return false
}
