// Package config holds the configuration of a renew run.
//
// Values are resolved in increasing order of precedence: built-in defaults, an optional
// configuration file (yaml, toml or json), RENEW_LOCALES_* environment variables (a .env file
// in the working directory is honored) and finally command line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/napalu/renew-locales/internal/discovery"
	"github.com/napalu/renew-locales/internal/errors"
	"github.com/napalu/renew-locales/internal/reconcile"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RENEW_LOCALES"

// DefaultConfigName is the base name of the configuration file searched for in the working
// directory when no explicit path is given.
const DefaultConfigName = ".renew-locales"

// Fallbacks applied by Normalize to settings left empty.
const (
	FallbackOutput   = "result.json"
	FallbackFilesReg = ".html$"
)

// DefaultSrc is the base-language dictionary of a browser extension laid out the usual way.
var DefaultSrc = filepath.Join("Extension", "_locales", "en", "messages.json")

// Config describes one run.
type Config struct {
	// Src is the base-language dictionary.
	Src string `mapstructure:"src"`
	// Targets are the directories scanned for key usage.
	Targets []string `mapstructure:"targets"`
	// Output receives the pruned dictionary. It may equal Src.
	Output string `mapstructure:"output"`
	// FilesReg selects the scanned files by path.
	FilesReg string `mapstructure:"files_reg"`
	// PersistedMessages are kept whether or not they are used.
	PersistedMessages []string `mapstructure:"persisted_messages"`
	// PersistedPatterns keep every source key matching one of these globs.
	PersistedPatterns []string `mapstructure:"persisted_patterns"`
	// Exclude lists doublestar patterns of paths that are not scanned.
	Exclude []string `mapstructure:"exclude"`
	// Locales lists doublestar patterns of other-language dictionaries pruned alongside.
	Locales []string `mapstructure:"locales"`
	// BackupDir, when set, receives a copy of every dictionary before it is overwritten.
	BackupDir string `mapstructure:"backup_dir"`
	// Concurrency bounds the number of files read at once.
	Concurrency int `mapstructure:"concurrency"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration of a browser extension keeping its manifest strings.
func Default() *Config {
	return &Config{
		Src:               DefaultSrc,
		Targets:           []string{"./Extension/"},
		Output:            DefaultSrc,
		FilesReg:          "(.js|.html)$",
		PersistedMessages: []string{"name", "short_name", "description"},
		Concurrency:       runtime.NumCPU(),
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load resolves the configuration from defaults, the file at path, the environment and a
// .env file. With an empty path a DefaultConfigName file in the working directory is used if
// there is one. An output left unset follows src.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.ErrFailedToLoadConfig.WithArgs(".env").Wrap(err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.ErrFailedToLoadConfig.WithArgs(path).Wrap(err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.ErrFailedToLoadConfig.WithArgs(DefaultConfigName).Wrap(err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.ErrFailedToLoadConfig.WithArgs(v.ConfigFileUsed()).Wrap(err)
	}
	if cfg.Output == "" {
		cfg.Output = cfg.Src
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("src", d.Src)
	v.SetDefault("targets", d.Targets)
	v.SetDefault("output", "")
	v.SetDefault("files_reg", d.FilesReg)
	v.SetDefault("persisted_messages", d.PersistedMessages)
	v.SetDefault("persisted_patterns", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("locales", []string{})
	v.SetDefault("backup_dir", "")
	v.SetDefault("concurrency", d.Concurrency)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Normalize fills empty settings with their fallbacks and drops blank list entries.
func (c *Config) Normalize() {
	c.Src = strings.TrimSpace(c.Src)
	c.Targets = compact(c.Targets)
	c.PersistedMessages = compact(c.PersistedMessages)
	c.PersistedPatterns = compact(c.PersistedPatterns)
	c.Exclude = compact(c.Exclude)
	c.Locales = compact(c.Locales)

	if strings.TrimSpace(c.Output) == "" {
		c.Output = FallbackOutput
	}
	if c.FilesReg == "" {
		c.FilesReg = FallbackFilesReg
	}
	if c.Concurrency < 1 {
		c.Concurrency = runtime.NumCPU()
	}
}

// Validate reports the first configuration error. It performs no I/O.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Src) == "" {
		return errors.ErrNoSourcePath
	}
	if len(compact(c.Targets)) == 0 {
		return errors.ErrNoTargets
	}
	if _, err := c.Matcher(); err != nil {
		return err
	}
	if _, err := c.Allowlist(); err != nil {
		return err
	}
	for _, pattern := range c.Locales {
		if !discovery.ValidPattern(pattern) {
			return errors.ErrFailedToExpandLocales.WithArgs(pattern)
		}
	}
	return nil
}

// Matcher returns the file matcher described by FilesReg and Exclude.
func (c *Config) Matcher() (*discovery.Matcher, error) {
	return discovery.NewMatcher(c.FilesReg, c.Exclude)
}

// Allowlist returns the persisted keys and patterns.
func (c *Config) Allowlist() (*reconcile.Allowlist, error) {
	return reconcile.NewAllowlist(c.PersistedMessages, c.PersistedPatterns)
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
