package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/systra-connect/portal/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "portal.json"

	// DefaultPort is the default server port.
	DefaultPort = 5173

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultLocale is the default and fallback UI locale.
	DefaultLocale = "en"

	// DefaultShutdownTimeout is how long the server waits for in-flight requests.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultExplorerRoot is the local directory served by the file explorer.
	DefaultExplorerRoot = "user_files"

	// DefaultTracerName is the OpenTelemetry tracer name.
	DefaultTracerName = "portal"
)

// Explorer backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config represents the complete portal.json configuration.
type Config struct {
	// Name is the application name shown in page titles.
	Name string `json:"name,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// I18n contains translation catalog configuration.
	I18n I18nConfig `json:"i18n,omitempty"`

	// Explorer contains file explorer configuration.
	Explorer ExplorerConfig `json:"explorer,omitempty"`

	// Telemetry contains metrics and tracing configuration.
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ShutdownTimeout is the graceful shutdown window (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`

	// AllowedOrigins are the origins accepted for WebSocket navigation sessions.
	// Empty means same-origin only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// I18nConfig contains translation catalog settings.
type I18nConfig struct {
	// Default is the locale used when none is requested.
	Default string `json:"default,omitempty"`

	// Fallback is the locale consulted for keys missing in the active locale.
	Fallback string `json:"fallback,omitempty"`

	// Dir optionally overrides the embedded locale files with a directory of
	// <locale>.yaml files.
	Dir string `json:"dir,omitempty"`
}

// ExplorerConfig contains file explorer settings.
type ExplorerConfig struct {
	// Backend selects the storage adapter: "local" or "s3".
	Backend string `json:"backend,omitempty"`

	// Root is the directory served by the local backend.
	Root string `json:"root,omitempty"`

	// S3 contains settings for the s3 backend.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config contains S3 listing settings.
type S3Config struct {
	// Bucket is the bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every listed folder.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the service endpoint (MinIO, LocalStack).
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// TelemetryConfig contains metrics and tracing settings.
type TelemetryConfig struct {
	// Metrics enables the Prometheus /metrics endpoint.
	Metrics bool `json:"metrics"`

	// TracerName is the OpenTelemetry tracer name.
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "Systra Connect",
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout.String(),
		},
		I18n: I18nConfig{
			Default:  DefaultLocale,
			Fallback: DefaultLocale,
		},
		Explorer: ExplorerConfig{
			Backend: BackendLocal,
			Root:    DefaultExplorerRoot,
		},
		Telemetry: TelemetryConfig{
			Metrics:    true,
			TracerName: DefaultTracerName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for portal.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No portal.json found in " + filepath.Dir(path)).
				WithSuggestion("Create portal.json or run without --config to use defaults")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse portal.json: " + err.Error()).
			WithSuggestion("Check that portal.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads portal.json from dir, or returns defaults when the file
// does not exist. Defaults still resolve relative paths against dir and Save
// creates dir's portal.json. Parse errors are still reported.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err != nil {
		if errors.CodeOf(err) == "E100" {
			cfg = New()
			cfg.configPath = filepath.Join(dir, ConfigFileName)
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E101").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout.String()
	}

	if c.I18n.Default == "" {
		c.I18n.Default = DefaultLocale
	}
	if c.I18n.Fallback == "" {
		c.I18n.Fallback = c.I18n.Default
	}

	if c.Explorer.Backend == "" {
		c.Explorer.Backend = BackendLocal
	}
	if c.Explorer.Root == "" {
		c.Explorer.Root = DefaultExplorerRoot
	}

	if c.Telemetry.TracerName == "" {
		c.Telemetry.TracerName = DefaultTracerName
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid. Locale names are checked
// against the catalog by the caller, since the catalog owns the supported set.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetailf("Port %d is not between 0 and 65535", c.Server.Port)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.New("E101").
			WithDetailf("server.shutdownTimeout %q is not a duration", c.Server.ShutdownTimeout).
			Wrap(err)
	}

	if c.I18n.Default == "" || c.I18n.Fallback == "" {
		return errors.New("E103")
	}

	switch c.Explorer.Backend {
	case BackendLocal:
		if c.Explorer.Root == "" {
			return errors.New("E104").WithDetail("explorer.root is required for the local backend")
		}
	case BackendS3:
		if c.Explorer.S3.Bucket == "" {
			return errors.New("E104").WithDetail("explorer.s3.bucket is required for the s3 backend")
		}
	default:
		return errors.New("E104").
			WithDetailf("Unknown explorer backend %q", c.Explorer.Backend).
			WithSuggestion(`Use "local" or "s3"`)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E105").WithDetailf("Unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E105").WithDetailf("Unknown log format %q", c.Log.Format)
	}

	return nil
}

// Address returns the host:port string for the server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ShutdownTimeout returns the parsed graceful shutdown window.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return DefaultShutdownTimeout
	}
	return d
}

// ExplorerRoot returns the absolute path to the local explorer root.
func (c *Config) ExplorerRoot() string {
	if filepath.IsAbs(c.Explorer.Root) {
		return c.Explorer.Root
	}
	return filepath.Join(c.Dir(), c.Explorer.Root)
}

// LocaleDir returns the absolute path to the locale override directory,
// or "" when the embedded locales are used.
func (c *Config) LocaleDir() string {
	if c.I18n.Dir == "" {
		return ""
	}
	if filepath.IsAbs(c.I18n.Dir) {
		return c.I18n.Dir
	}
	return filepath.Join(c.Dir(), c.I18n.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
