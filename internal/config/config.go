package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MCP transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all application configuration
type Config struct {
	Server    Server    `yaml:"server"`
	LinkedIn  LinkedIn  `yaml:"linkedin"`
	OAuth     OAuth     `yaml:"oauth"`
	Storage   Storage   `yaml:"storage"`
	Scheduler Scheduler `yaml:"scheduler"`
	S3        S3        `yaml:"s3"`
	Log       Log       `yaml:"log"`
	MCP       MCP       `yaml:"mcp"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `yaml:"host" env:"SERVER_HOST" env-default:"127.0.0.1"`
	Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"150s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Address returns the full server address
func (s Server) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// LinkedIn holds LinkedIn API configuration
type LinkedIn struct {
	ClientID     string   `yaml:"client_id" env:"LINKEDIN_CLIENT_ID"`
	ClientSecret string   `yaml:"client_secret" env:"LINKEDIN_CLIENT_SECRET"`
	BaseURL      string   `yaml:"base_url" env:"LINKEDIN_BASE_URL" env-default:"https://api.linkedin.com"`
	APIVersion   string   `yaml:"api_version" env:"LINKEDIN_API_VERSION" env-default:"202502"`
	AuthURL      string   `yaml:"auth_url" env:"LINKEDIN_AUTH_URL" env-default:"https://www.linkedin.com/oauth/v2/authorization"`
	TokenURL     string   `yaml:"token_url" env:"LINKEDIN_TOKEN_URL" env-default:"https://www.linkedin.com/oauth/v2/accessToken"`
	Scopes       []string `yaml:"scopes" env:"LINKEDIN_SCOPES" env-separator:" " env-default:"openid profile w_member_social"`
}

// Configured reports whether the OAuth app credentials are present
func (l LinkedIn) Configured() bool {
	return l.ClientID != "" && l.ClientSecret != ""
}

// OAuth holds the local callback listener configuration
type OAuth struct {
	CallbackHost string        `yaml:"callback_host" env:"OAUTH_CALLBACK_HOST" env-default:"localhost"`
	CallbackPort int           `yaml:"callback_port" env:"OAUTH_CALLBACK_PORT" env-default:"8099"`
	CallbackPath string        `yaml:"callback_path" env:"OAUTH_CALLBACK_PATH" env-default:"/callback"`
	WaitTimeout  time.Duration `yaml:"wait_timeout" env:"OAUTH_WAIT_TIMEOUT" env-default:"120s"`
}

// RedirectURL returns the redirect URL registered with LinkedIn
func (o OAuth) RedirectURL() string {
	return "http://" + net.JoinHostPort(o.CallbackHost, strconv.Itoa(o.CallbackPort)) + o.CallbackPath
}

// Storage holds persistence configuration
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"json"`
	// DataDir holds the JSON stores, settings and credentials. Defaults to ~/.linkedin-mcp
	DataDir    string `yaml:"data_dir" env:"LINKEDIN_MCP_DATA_DIR"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`

	// PostgreSQL
	PostgresDSN string `yaml:"postgres_dsn" env:"DATABASE_URL"`

	// Connection pool settings
	MaxConns int32 `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10"`
	MinConns int32 `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"1"`
}

// Scheduler holds scheduler configuration
type Scheduler struct {
	Enabled  bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"false"`
	Spec     string        `yaml:"spec" env:"SCHEDULER_SPEC" env-default:"@every 1m"`
	Timezone string        `yaml:"timezone" env:"SCHEDULER_TIMEZONE" env-default:"UTC"`
	Timeout  time.Duration `yaml:"timeout" env:"SCHEDULER_TIMEOUT" env-default:"5m"`
}

// S3 holds S3/MinIO export configuration
type S3 struct {
	Enabled         bool   `yaml:"enabled" env:"S3_ENABLED" env-default:"false"`
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET" env-default:"linkedin-mcp"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Prefix          string `yaml:"prefix" env:"S3_PREFIX" env-default:"exports"`
	PublicURL       string `yaml:"public_url" env:"S3_PUBLIC_URL"`
}

// Log holds logger configuration
type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SlogLevel converts the configured level name
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", l.Level)
	}
	return level, nil
}

// MCP holds tool server configuration
type MCP struct {
	Transport string `yaml:"transport" env:"MCP_TRANSPORT" env-default:"stdio"`
	Path      string `yaml:"path" env:"MCP_HTTP_PATH" env-default:"/mcp"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	// Load .env file if exists (for development)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.finish(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.finish(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	if c.Storage.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		c.Storage.DataDir = filepath.Join(home, ".linkedin-mcp")
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.Storage.DataDir, "posts.db")
	}
	return c.Validate()
}

// Validate checks enumerated values and required combinations
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverJSON, DriverSQLite:
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	switch c.MCP.Transport {
	case TransportStdio, TransportHTTP:
	default:
		errs = append(errs, fmt.Errorf("unknown MCP transport %q", c.MCP.Transport))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if c.S3.Enabled && c.S3.Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required when S3 export is enabled"))
	}

	return errors.Join(errs...)
}
