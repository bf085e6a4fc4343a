package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyBackendHost    = "backend.host"
	KeyBackendPort    = "backend.port"
	KeySelfHost       = "self.host"
	KeySelfPort       = "self.port"
	KeyAssetsDir      = "assets.dir"
	KeySuccessDelay   = "dialog.success_delay"
	KeyConfirmLaunch  = "dialog.confirm_launch"
	KeyDestinationTTL = "upload.destination_ttl"
	KeyLogLevel       = "logging.level"
	KeyDevelopment    = "development"
)

// Default values
const (
	DefaultBackendHost    = "127.0.0.1"
	DefaultBackendPort    = 5000
	DefaultSelfHost       = "127.0.0.1"
	DefaultSelfPort       = 5010
	DefaultAssetsDir      = "assets"
	DefaultSuccessDelay   = 10 * time.Second
	DefaultDestinationTTL = 600 * time.Second
	DefaultLogLevel       = "info"

	EnvPrefix     = "YTM"
	ConfigName    = "config"
	ConfigType    = "yaml"
	AppDirName    = "ytm-offline"
	UploadsSubdir = "uploads"
	LegacyEnvHost = "BACKEND_HOST"
	LegacyEnvPort = "BACKEND_PORT"
)

// Config holds all application configuration
type Config struct {
	Backend     EndpointConfig `mapstructure:"backend"`
	Self        EndpointConfig `mapstructure:"self"`
	Assets      AssetsConfig   `mapstructure:"assets"`
	Dialog      DialogConfig   `mapstructure:"dialog"`
	Upload      UploadConfig   `mapstructure:"upload"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	Development bool           `mapstructure:"development"`
}

// EndpointConfig is a host:port pair
type EndpointConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AssetsConfig locates the local assets directory. Downloaded artifacts
// go to its uploads subdirectory.
type AssetsConfig struct {
	Dir string `mapstructure:"dir"`
}

// DialogConfig holds notification behaviour
type DialogConfig struct {
	SuccessDelay  time.Duration `mapstructure:"success_delay"`
	ConfirmLaunch bool          `mapstructure:"confirm_launch"`
}

// UploadConfig holds file upload behaviour
type UploadConfig struct {
	DestinationTTL time.Duration `mapstructure:"destination_ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: EndpointConfig{Host: DefaultBackendHost, Port: DefaultBackendPort},
		Self:    EndpointConfig{Host: DefaultSelfHost, Port: DefaultSelfPort},
		Assets:  AssetsConfig{Dir: DefaultAssetsDir},
		Dialog:  DialogConfig{SuccessDelay: DefaultSuccessDelay},
		Upload:  UploadConfig{DestinationTTL: DefaultDestinationTTL},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Loader reads configuration from an optional file, the environment and
// bound command-line flags, in increasing order of precedence.
type Loader struct {
	v    *viper.Viper
	file string
}

// NewLoader creates a loader. An empty file means the default search path.
func NewLoader(file string) *Loader {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyBackendHost, defaults.Backend.Host)
	v.SetDefault(KeyBackendPort, defaults.Backend.Port)
	v.SetDefault(KeySelfHost, defaults.Self.Host)
	v.SetDefault(KeySelfPort, defaults.Self.Port)
	v.SetDefault(KeyAssetsDir, defaults.Assets.Dir)
	v.SetDefault(KeySuccessDelay, defaults.Dialog.SuccessDelay)
	v.SetDefault(KeyConfirmLaunch, defaults.Dialog.ConfirmLaunch)
	v.SetDefault(KeyDestinationTTL, defaults.Upload.DestinationTTL)
	v.SetDefault(KeyLogLevel, defaults.Logging.Level)
	v.SetDefault(KeyDevelopment, defaults.Development)

	// YTM_BACKEND_HOST, YTM_DIALOG_SUCCESS_DELAY, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Older deployments set the backend with unprefixed names
	_ = v.BindEnv(KeyBackendHost, EnvPrefix+"_BACKEND_HOST", LegacyEnvHost)
	_ = v.BindEnv(KeyBackendPort, EnvPrefix+"_BACKEND_PORT", LegacyEnvPort)

	return &Loader{v: v, file: file}
}

// BindFlag binds a command-line flag to a config key
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %s is nil", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads and validates the configuration
func (l *Loader) Load() (*Config, error) {
	if l.file != "" {
		l.v.SetConfigFile(l.file)
	} else {
		l.v.SetConfigName(ConfigName)
		l.v.SetConfigType(ConfigType)
		l.v.AddConfigPath(defaultConfigPath())
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || l.file != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the client cannot work with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.Host) == "" {
		return errors.New("backend host is empty")
	}
	if strings.TrimSpace(c.Self.Host) == "" {
		return errors.New("self host is empty")
	}
	if err := validatePort("backend", c.Backend.Port); err != nil {
		return err
	}
	if err := validatePort("self", c.Self.Port); err != nil {
		return err
	}
	if c.Dialog.SuccessDelay <= 0 {
		return fmt.Errorf("dialog success delay must be positive, got %s", c.Dialog.SuccessDelay)
	}
	if c.Upload.DestinationTTL <= 0 {
		return fmt.Errorf("upload destination ttl must be positive, got %s", c.Upload.DestinationTTL)
	}
	if strings.TrimSpace(c.Assets.Dir) == "" {
		return errors.New("assets dir is empty")
	}
	return nil
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s port out of range: %d", name, port)
	}
	return nil
}

// BackendURL returns the backend base URL, e.g. "http://127.0.0.1:5000"
func (c *Config) BackendURL() string {
	return "http://" + c.Backend.Address()
}

// SelfURL returns the base URL of the local assets server
func (c *Config) SelfURL() string {
	return "http://" + c.Self.Address()
}

// Address joins host and port
func (e EndpointConfig) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// UploadsDir returns the directory downloaded artifacts are written to
func (c *Config) UploadsDir() string {
	return filepath.Join(c.Assets.Dir, UploadsSubdir)
}

// defaultConfigPath returns the per-user config directory
func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppDirName)
}
