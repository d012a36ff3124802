package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	Auth       AuthConfig
	S3         S3Config
	Email      EmailConfig
	Parser     ParserConfig
	Fetch      FetchConfig
	Extraction ExtractionConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string. An explicit URL wins over the
// individual fields.
func (d *DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds session token signing settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// AuthConfig holds password and session policy.
type AuthConfig struct {
	BcryptCost   int  `mapstructure:"bcrypt_cost"`
	RequireToken bool `mapstructure:"require_token"`
}

// S3Config holds document storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// ParserProviderConfig holds settings for a single extraction model provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	BaseURL      string `mapstructure:"base_url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds extraction model settings with fallback providers.
type ParserConfig struct {
	Primary           ParserProviderConfig `mapstructure:"primary"`
	Secondary         ParserProviderConfig `mapstructure:"secondary"`
	Tertiary          ParserProviderConfig `mapstructure:"tertiary"`
	RequestsPerSecond float64              `mapstructure:"requests_per_second"`
	Burst             int                  `mapstructure:"burst"`
}

// PrimaryConfig returns the primary provider config.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	return &p.Primary
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	if p.Tertiary.Provider != "" {
		return &p.Tertiary
	}
	return nil
}

// FetchConfig holds settings for retrieving uploaded images by URL.
type FetchConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
	MaxImageBytes int64         `mapstructure:"max_image_bytes"`
}

// ExtractionConfig controls post-extraction normalization.
type ExtractionConfig struct {
	StrictNormalization bool   `mapstructure:"strict_normalization"`
	DefaultCurrency     string `mapstructure:"default_currency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SMARTCLAIM_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SMARTCLAIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Bind environment variables explicitly for nested keys
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key, "SMARTCLAIM_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SMARTCLAIM_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SMARTCLAIM_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}

	dbURL := v.GetString("db.url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	cfg.DB = DBConfig{
		URL:      dbURL,
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		BcryptCost:   v.GetInt("auth.bcrypt_cost"),
		RequireToken: v.GetBool("auth.require_token"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PublicBaseURL: strings.TrimRight(v.GetString("s3.public_base_url"), "/"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Parser = ParserConfig{
		Primary:           providerConfig(v, "parser.primary"),
		Secondary:         providerConfig(v, "parser.secondary"),
		Tertiary:          providerConfig(v, "parser.tertiary"),
		RequestsPerSecond: v.GetFloat64("parser.requests_per_second"),
		Burst:             v.GetInt("parser.burst"),
	}
	// Older deployments only set GEMINI_API_KEY.
	if cfg.Parser.Primary.APIKey == "" && cfg.Parser.Primary.Provider == "gemini" {
		cfg.Parser.Primary.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	cfg.Fetch = FetchConfig{
		Timeout:       v.GetDuration("fetch.timeout"),
		MaxRetries:    v.GetInt("fetch.max_retries"),
		RetryBackoff:  v.GetDuration("fetch.retry_backoff"),
		MaxImageBytes: v.GetInt64("fetch.max_image_bytes"),
	}
	cfg.Extraction = ExtractionConfig{
		StrictNormalization: v.GetBool("extraction.strict_normalization"),
		DefaultCurrency:     v.GetString("extraction.default_currency"),
	}
	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}

	if cfg.Server.Environment == "production" && cfg.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("jwt.secret must be set in production")
	}

	return cfg, nil
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "smartclaim")
	v.SetDefault("db.password", "smartclaim_secret")
	v.SetDefault("db.name", "smartclaim_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Session defaults
	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.issuer", "smartclaim")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.require_token", false)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "smartclaim-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 86400)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@smartclaim.app")
	v.SetDefault("email.from_name", "SmartClaim")
	v.SetDefault("email.frontend_url", "http://localhost:8080")

	// Parser defaults
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("parser."+tier+".provider", "")
		v.SetDefault("parser."+tier+".api_key", "")
		v.SetDefault("parser."+tier+".default_model", "")
		v.SetDefault("parser."+tier+".base_url", "")
		v.SetDefault("parser."+tier+".max_retries", 2)
		v.SetDefault("parser."+tier+".timeout_secs", 120)
	}
	v.SetDefault("parser.primary.provider", "gemini")
	v.SetDefault("parser.requests_per_second", 2.0)
	v.SetDefault("parser.burst", 4)

	// Fetch defaults
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.max_retries", 2)
	v.SetDefault("fetch.retry_backoff", "500ms")
	v.SetDefault("fetch.max_image_bytes", 20*1024*1024)

	// Extraction defaults
	v.SetDefault("extraction.strict_normalization", false)
	v.SetDefault("extraction.default_currency", "USD")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://localhost:8080,http://127.0.0.1:5173,http://127.0.0.1:8080")
}

func providerConfig(v *viper.Viper, prefix string) ParserProviderConfig {
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		BaseURL:      v.GetString(prefix + ".base_url"),
		MaxRetries:   v.GetInt(prefix + ".max_retries"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
