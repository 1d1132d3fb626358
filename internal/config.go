package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration of the CLI
type Config struct {
	Email             string        `mapstructure:"email"`
	Password          string        `mapstructure:"password"`
	Timezone          string        `mapstructure:"timezone"`
	Unit              string        `mapstructure:"unit"`
	ClientID          string        `mapstructure:"client_id"`
	ClientSecret      string        `mapstructure:"client_secret"`
	AuthURL           string        `mapstructure:"auth_url"`
	ClientAPIURL      string        `mapstructure:"client_api_url"`
	AppAPIURL         string        `mapstructure:"app_api_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	LogLevel          string        `mapstructure:"log_level"`
	TokenCache        string        `mapstructure:"token_cache"`
}

// EnvPrefix prefixes every environment variable, e.g. EIGHTSLEEP_EMAIL
const EnvPrefix = "EIGHTSLEEP"

// DefaultConfigPath is ~/.eight-sleep.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eight-sleep.yaml"
	}
	return filepath.Join(home, ".eight-sleep.yaml")
}

// DefaultTokenCachePath is ~/.eight-sleep/session.db
func DefaultTokenCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".eight-sleep", "session.db")
	}
	return filepath.Join(home, ".eight-sleep", "session.db")
}

// SetConfigDefaults registers the default of every key on v
func SetConfigDefaults(v *viper.Viper) {
	// keys only known from the environment must still have a default to
	// show up in Unmarshal
	for _, key := range []string{"email", "password", "client_id", "client_secret"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("timezone", defaultTimezone())
	v.SetDefault("unit", "celsius")
	v.SetDefault("auth_url", DefaultAuthURL)
	v.SetDefault("client_api_url", DefaultClientAPIURL)
	v.SetDefault("app_api_url", DefaultAppAPIURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("requests_per_second", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("token_cache", DefaultTokenCachePath())
}

func defaultTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return "UTC"
}

// LoadConfig reads the config file at path (optional when it does not
// exist), the environment and anything already bound on v
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	SetConfigDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || os.IsNotExist(err)) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		LogDebug("No config file at %s", path)
	} else {
		LogDebug("Using config file %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Location resolves the configured IANA timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TemperatureUnit resolves the configured display unit
func (c *Config) TemperatureUnit() (Unit, error) {
	return ParseUnit(c.Unit)
}

// Validate checks everything needed to talk to the API
func (c *Config) Validate() error {
	if c.Email == "" {
		return errors.New("email is required (--email, EIGHTSLEEP_EMAIL or config file)")
	}
	if c.Password == "" {
		return errors.New("password is required (--password, EIGHTSLEEP_PASSWORD or config file)")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.TemperatureUnit(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("requests_per_second must not be negative")
	}
	return nil
}

// NewClientFromConfig builds a Client with an HTTP transport
func NewClientFromConfig(c *Config) (*Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return NewClient(ClientOptions{
		Credentials: Credentials{
			Email:        c.Email,
			Password:     c.Password,
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
		},
		Location: loc,
		Transport: NewHTTPTransport(HTTPTransportOptions{
			Timeout:           c.Timeout,
			RequestsPerSecond: c.RequestsPerSecond,
		}),
		AuthURL:      c.AuthURL,
		ClientAPIURL: c.ClientAPIURL,
		AppAPIURL:    c.AppAPIURL,
	}), nil
}
