package config

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "TVShows/2.0 (+https://github.com/Belphemur/TVShows)"

// DefaultAPIBaseURL is the shows API root used when api_base_url is not configured.
const DefaultAPIBaseURL = "https://api.infinum.academy/api"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	APIBaseURL            string `mapstructure:"api_base_url"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	LogLevel string `mapstructure:"log_level"`
	Snapshot struct {
		Provider      string `mapstructure:"provider"` // memory, redis or bolt
		Size          int    `mapstructure:"size"`     // Maximum number of stored pages
		TTL           string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Path          string `mapstructure:"path"`     // bolt database file
		RedisAddress  string `mapstructure:"redis_address"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
	} `mapstructure:"snapshot"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config

	loggerMu sync.RWMutex
	logger   zerolog.Logger
)

func newConsoleLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:     out,
		NoColor: false,
	}).With().Timestamp().Logger()
}

func init() {
	logger = newConsoleLogger(os.Stdout)

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

// LoadConfig reads config.yaml from the working directory (or ./config) and
// overlays APP_* environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("snapshot.provider", "memory")
	v.SetDefault("snapshot.size", 500)
	v.SetDefault("snapshot.ttl", "1h")
	v.SetDefault("snapshot.path", "tvshows-snapshots.db")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	config.APIBaseURL = strings.TrimRight(config.APIBaseURL, "/")

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogOutput redirects the application logger to out, keeping its level.
// Loggers obtained earlier keep writing to the previous output.
func SetLogOutput(out io.Writer) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = newConsoleLogger(out).Level(logger.GetLevel())
}
