package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/parcel-cli/internal/failure"
)

// APIKeyEnv is the environment variable holding the Google Geocoding API key.
const APIKeyEnv = "GOOGLE_GEOCODING_API_KEY"

// Config holds the full application configuration.
type Config struct {
	Google  GoogleConfig  `yaml:"google" mapstructure:"google"`
	Parcels ParcelsConfig `yaml:"parcels" mapstructure:"parcels"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Google Geocoding API settings.
type GoogleConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ParcelsConfig holds the parcel FeatureServer settings.
type ParcelsConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HTTPConfig configures outbound requests.
type HTTPConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// Timeout returns the request timeout as a duration.
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSecs) * time.Second
}

// OutputConfig configures where the parcel response is written.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config file and environment.
// A missing API key is not an error here; see Validate.
func Load() (*Config, error) {
	// .env never overrides variables already set in the process.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PARCEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("google.api_key", APIKeyEnv, "PARCEL_GOOGLE_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind api key env")
	}

	// Defaults
	v.SetDefault("google.base_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("parcels.base_url", "https://services1.arcgis.com/BkFxaEFNwHqX3tAw/arcgis/rest/services/"+
		"FS_VCGI_OPENDATA_Cadastral_VTPARCELS_poly_standardized_parcels_SP_v1/FeatureServer/0/query")
	v.SetDefault("http.timeout_secs", 30)
	v.SetDefault("http.user_agent", "parcel-cli/1.0")
	v.SetDefault("http.rate_limit", 10)
	v.SetDefault("output.path", "parcels.geojson")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate reports settings a run cannot proceed without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Google.APIKey) == "" {
		return failure.New(failure.KindConfig, "config", eris.Errorf("$%s is not set", APIKeyEnv))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
