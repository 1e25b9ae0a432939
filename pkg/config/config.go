// Package config provides the Craft Plan server configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when a nil config is passed around.
var ErrNilConfig = errors.New("nil config")

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// AllowedOrigins are glob patterns of origins allowed to call the API
	// from a browser. An empty list disables CORS headers.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," yaml:"allowed_origins"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// IdentityConfig is the identity provider configuration.
type IdentityConfig struct {
	// Issuer is the expected `iss` claim of identity provider tokens.
	Issuer string `env:"ISSUER" yaml:"issuer"`

	// JWKSURL is the URL of the provider's JSON Web Key Set.
	JWKSURL string `env:"JWKS_URL" yaml:"jwks_url"`

	// WebhookSecret is the shared secret used to authenticate identity
	// provider webhook deliveries.
	WebhookSecret string `env:"WEBHOOK_SECRET" yaml:"webhook_secret"`
}

// ShareConfig is the project sharing configuration.
type ShareConfig struct {
	// InviteTTL is how long an unaccepted share invite lives before the
	// expiry job removes it. Accepts human durations such as "2w" or "30d".
	InviteTTL string `env:"INVITE_TTL" yaml:"invite_ttl"`
}

// WebhookConfig is the outbound webhook configuration.
type WebhookConfig struct {
	// DeliveryRetention is how long delivery records are kept before the
	// prune job removes them.
	DeliveryRetention string `env:"DELIVERY_RETENTION" yaml:"delivery_retention"`
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	// ExpireShares is the cron spec for the share invite expiry job.
	ExpireShares string `env:"EXPIRE_SHARES" yaml:"expire_shares"`

	// PruneDeliveries is the cron spec for the webhook delivery prune job.
	PruneDeliveries string `env:"PRUNE_DELIVERIES" yaml:"prune_deliveries"`
}

// Config is the configuration for Craft Plan.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Identity is the identity provider configuration.
	Identity IdentityConfig `envPrefix:"IDENTITY_" yaml:"identity"`

	// Share is the project sharing configuration.
	Share ShareConfig `envPrefix:"SHARE_" yaml:"share"`

	// Webhook is the outbound webhook configuration.
	Webhook WebhookConfig `envPrefix:"WEBHOOK_" yaml:"webhook"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// DataPath is the path to the directory where Craft Plan will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	// TODO: do this dynamically
	envs = append(envs, []string{
		fmt.Sprintf("CRAFTPLAN_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("CRAFTPLAN_NAME=%s", c.Name),
		fmt.Sprintf("CRAFTPLAN_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("CRAFTPLAN_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("CRAFTPLAN_HTTP_ALLOWED_ORIGINS=%s", strings.Join(c.HTTP.AllowedOrigins, ",")),
		fmt.Sprintf("CRAFTPLAN_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("CRAFTPLAN_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("CRAFTPLAN_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("CRAFTPLAN_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("CRAFTPLAN_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("CRAFTPLAN_IDENTITY_ISSUER=%s", c.Identity.Issuer),
		fmt.Sprintf("CRAFTPLAN_IDENTITY_JWKS_URL=%s", c.Identity.JWKSURL),
		fmt.Sprintf("CRAFTPLAN_SHARE_INVITE_TTL=%s", c.Share.InviteTTL),
		fmt.Sprintf("CRAFTPLAN_WEBHOOK_DELIVERY_RETENTION=%s", c.Webhook.DeliveryRetention),
		fmt.Sprintf("CRAFTPLAN_JOBS_EXPIRE_SHARES=%s", c.Jobs.ExpireShares),
		fmt.Sprintf("CRAFTPLAN_JOBS_PRUNE_DELIVERIES=%s", c.Jobs.PruneDeliveries),
	}...)

	return envs
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("CRAFTPLAN_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("CRAFTPLAN_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "CRAFTPLAN_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, b, 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the CRAFTPLAN_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("CRAFTPLAN_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string { // nolint:revive
	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(filepath.Join(c.DataPath, "config.yaml"))
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Craft Plan",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr: ":23230",
			PublicURL:  "http://localhost:23230",
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:23233",
		},
		DB: DBConfig{
			Driver:     "sqlite",
			DataSource: "craftplan.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: "2006-01-02 15:04:05",
		},
		Share: ShareConfig{
			InviteTTL: "2w",
		},
		Webhook: WebhookConfig{
			DeliveryRetention: "90d",
		},
		Jobs: JobsConfig{
			ExpireShares:    "@every 1h",
			PruneDeliveries: "@daily",
		},
	}
}

// Validate validates the config and fills in absolute paths.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.DB.Driver == "sqlite" && !strings.Contains(c.DB.DataSource, "://") &&
		!filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	return nil
}
