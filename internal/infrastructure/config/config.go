package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root of all runtime settings.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Feed     FeedConfig
}

// AppConfig identifies the service and its environment.
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds postgres connection and pool settings.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // minutes
	ConnMaxIdleTime int // minutes
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// LogConfig selects level, format (json or console) and output sink.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// HTTPConfig holds server timeouts, size limits and CORS policy.
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// FeedConfig holds external catalog feed settings.
type FeedConfig struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
	Pages    int
}

// Load reads config.toml (if present) and SHOP_-prefixed environment
// variables, with the environment taking precedence. Fields left unset
// fall back to built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		// Running without a config file is supported; anything else
		// (parse errors, permissions) is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App:      loadApp(v),
		Database: loadDatabase(v),
		JWT:      loadJWT(v),
		Log:      loadLog(v),
		HTTP:     loadHTTP(v),
		Feed:     loadFeed(v),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadApp(v *viper.Viper) AppConfig {
	return AppConfig{
		Name: stringOr(v, "app.name", "shop-backend"),
		Env:  stringOr(v, "app.env", "development"),
		Port: stringOr(v, "app.port", "8080"),
	}
}

func loadDatabase(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Host:            stringOr(v, "database.host", "localhost"),
		Port:            intOr(v, "database.port", 5432),
		User:            stringOr(v, "database.user", "postgres"),
		Password:        v.GetString("database.password"),
		DBName:          stringOr(v, "database.dbname", "shop"),
		SSLMode:         stringOr(v, "database.sslmode", "disable"),
		MaxOpenConns:    intOr(v, "database.max_open_conns", 25),
		MaxIdleConns:    intOr(v, "database.max_idle_conns", 5),
		ConnMaxLifetime: intOr(v, "database.conn_max_lifetime", 60),
		ConnMaxIdleTime: intOr(v, "database.conn_max_idle_time", 30),
	}
}

func loadJWT(v *viper.Viper) JWTConfig {
	return JWTConfig{
		Secret:     v.GetString("jwt.secret"),
		Expiration: durationOr(v, "jwt.expiration", 24*time.Hour),
		Issuer:     stringOr(v, "jwt.issuer", "shop-backend"),
	}
}

func loadLog(v *viper.Viper) LogConfig {
	return LogConfig{
		Level:  stringOr(v, "log.level", "info"),
		Format: stringOr(v, "log.format", "console"),
		Output: stringOr(v, "log.output", "stdout"),
	}
}

func loadHTTP(v *viper.Viper) HTTPConfig {
	cfg := HTTPConfig{
		ReadTimeout:    durationOr(v, "http.read_timeout", 15*time.Second),
		WriteTimeout:   durationOr(v, "http.write_timeout", 15*time.Second),
		IdleTimeout:    durationOr(v, "http.idle_timeout", 60*time.Second),
		MaxHeaderBytes: intOr(v, "http.max_header_bytes", 1<<20),
		MaxBodySize:    v.GetInt64("http.max_body_size"),
		// No default for origins: an empty list means cross-origin
		// requests stay rejected until explicitly configured.
		CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
		CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
		TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = 10 << 20
	}
	if len(cfg.CORSAllowMethods) == 0 {
		cfg.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.CORSAllowHeaders) == 0 {
		cfg.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	return cfg
}

func loadFeed(v *viper.Viper) FeedConfig {
	return FeedConfig{
		BaseURL:  stringOr(v, "feed.base_url", "https://dummyjson.com"),
		Timeout:  durationOr(v, "feed.timeout", 10*time.Second),
		PageSize: intOr(v, "feed.page_size", 100),
		Pages:    intOr(v, "feed.pages", 2),
	}
}

// stringOr returns the configured value, or fallback when the key is
// unset or empty.
func stringOr(v *viper.Viper, key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

// intOr treats zero as unset, matching TOML's missing-key behavior.
func intOr(v *viper.Viper, key string, fallback int) int {
	if n := v.GetInt(key); n != 0 {
		return n
	}
	return fallback
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if d := v.GetDuration(key); d != 0 {
		return d
	}
	return fallback
}

func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Feed.Pages <= 0 || c.Feed.PageSize <= 0 {
		return fmt.Errorf("feed.pages and feed.page_size must be positive")
	}
	if c.App.Env == "production" {
		return c.validateProduction()
	}
	return nil
}

// validateProduction rejects configurations that are tolerable in
// development but unsafe to deploy.
func (c *Config) validateProduction() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt.secret must be at least 32 characters in production")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("database.password is required in production")
	}
	if c.Database.SSLMode == "disable" {
		return fmt.Errorf("database.sslmode cannot be 'disable' in production")
	}
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
		}
	}
	return nil
}

// DSN builds a postgres connection URL, escaping credentials so that
// passwords with reserved characters survive intact.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
