package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when SITEHOST_CONFIG is unset. A missing file is
// not an error.
const DefaultConfigFile = "sitehost.yaml"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Site     SiteConfig     `yaml:"site"`
	Preview  PreviewConfig  `yaml:"preview"`
	Cache    CacheConfig    `yaml:"cache"`
	Gateway  GatewayConfig  `yaml:"gateway"`
}

type ServerConfig struct {
	Host           string  `yaml:"host"`
	Port           int     `yaml:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
	Migrate  bool   `yaml:"migrate"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret      string `yaml:"jwt_secret"`
	AdminKeyHash   string `yaml:"admin_key_hash"` // hex sha256 of the admin key
	AdminKeyHeader string `yaml:"admin_key_header"`
}

type SiteConfig struct {
	BaseDomain         string            `yaml:"base_domain"`
	PublicURL          string            `yaml:"public_url"`
	ReservedSubdomains []string          `yaml:"reserved_subdomains"`
	CustomDomains      map[string]string `yaml:"custom_domains"`
	CORSOrigins        []string          `yaml:"cors_origins"`
}

type PreviewConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
	MaxTTL     time.Duration `yaml:"max_ttl"`
}

type CacheConfig struct {
	L1MaxBytes  int64         `yaml:"l1_max_bytes"`
	UseRedis    bool          `yaml:"use_redis"`
	LiveTTL     time.Duration `yaml:"live_ttl"`
	PreviewTTL  time.Duration `yaml:"preview_ttl"`
	PlatformTTL time.Duration `yaml:"platform_ttl"`
}

type GatewayConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		Database: DatabaseConfig{
			MaxConns: 20,
			MinConns: 5,
			Migrate:  true,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Auth:  AuthConfig{AdminKeyHeader: "X-Admin-Key"},
		Site: SiteConfig{
			BaseDomain:  "thatsmartsite.com",
			PublicURL:   "https://thatsmartsite.com",
			CORSOrigins: []string{"*"},
		},
		Preview: PreviewConfig{
			Issuer:     "sitehost-preview",
			DefaultTTL: 7 * 24 * time.Hour,
			MaxTTL:     30 * 24 * time.Hour,
		},
		Cache: CacheConfig{
			L1MaxBytes:  64 << 20,
			UseRedis:    true,
			LiveTTL:     5 * time.Minute,
			PreviewTTL:  time.Minute,
			PlatformTTL: 10 * time.Minute,
		},
		Gateway: GatewayConfig{Timeout: 3 * time.Second},
	}
}

// Load builds the configuration from defaults, then the optional YAML file,
// then environment variables.
func Load() (*Config, error) {
	return LoadFrom(getEnv("SITEHOST_CONFIG", DefaultConfigFile))
}

func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, path); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}
	if err := loadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	return &cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	var err error

	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	if cfg.Server.Port, err = getEnvInt("SERVER_PORT", cfg.Server.Port); err != nil {
		return fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if cfg.Server.RateLimitRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
	}
	if cfg.Server.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", cfg.Server.RateLimitBurst); err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	if cfg.Database.MaxConns, err = getEnvInt("DB_MAX_CONNS", cfg.Database.MaxConns); err != nil {
		return fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	if cfg.Database.MinConns, err = getEnvInt("DB_MIN_CONNS", cfg.Database.MinConns); err != nil {
		return fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.AdminKeyHash = getEnv("ADMIN_KEY_HASH", cfg.Auth.AdminKeyHash)
	cfg.Auth.AdminKeyHeader = getEnv("ADMIN_KEY_HEADER", cfg.Auth.AdminKeyHeader)

	cfg.Site.BaseDomain = strings.ToLower(getEnv("BASE_DOMAIN", cfg.Site.BaseDomain))
	cfg.Site.PublicURL = getEnv("PUBLIC_URL", cfg.Site.PublicURL)
	if v := os.Getenv("RESERVED_SUBDOMAINS"); v != "" {
		cfg.Site.ReservedSubdomains = splitList(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Site.CORSOrigins = strings.Split(strings.ReplaceAll(v, " ", ""), ",")
	}

	cfg.Preview.Secret = getEnv("PREVIEW_SECRET", cfg.Preview.Secret)
	if cfg.Preview.DefaultTTL, err = getEnvDuration("PREVIEW_DEFAULT_TTL", cfg.Preview.DefaultTTL); err != nil {
		return fmt.Errorf("invalid PREVIEW_DEFAULT_TTL: %w", err)
	}
	if cfg.Preview.MaxTTL, err = getEnvDuration("PREVIEW_MAX_TTL", cfg.Preview.MaxTTL); err != nil {
		return fmt.Errorf("invalid PREVIEW_MAX_TTL: %w", err)
	}

	if cfg.Cache.LiveTTL, err = getEnvDuration("CACHE_LIVE_TTL", cfg.Cache.LiveTTL); err != nil {
		return fmt.Errorf("invalid CACHE_LIVE_TTL: %w", err)
	}
	if cfg.Cache.PreviewTTL, err = getEnvDuration("CACHE_PREVIEW_TTL", cfg.Cache.PreviewTTL); err != nil {
		return fmt.Errorf("invalid CACHE_PREVIEW_TTL: %w", err)
	}
	if cfg.Cache.PlatformTTL, err = getEnvDuration("CACHE_PLATFORM_TTL", cfg.Cache.PlatformTTL); err != nil {
		return fmt.Errorf("invalid CACHE_PLATFORM_TTL: %w", err)
	}

	if cfg.Gateway.Timeout, err = getEnvDuration("GATEWAY_TIMEOUT", cfg.Gateway.Timeout); err != nil {
		return fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Preview.Secret == "" {
		missing = append(missing, "PREVIEW_SECRET")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Site.BaseDomain == "" {
		missing = append(missing, "BASE_DOMAIN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if c.Preview.DefaultTTL <= 0 || c.Preview.DefaultTTL > c.Preview.MaxTTL {
		return fmt.Errorf("preview default ttl %s must be positive and at most %s", c.Preview.DefaultTTL, c.Preview.MaxTTL)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
