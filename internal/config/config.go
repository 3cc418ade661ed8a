package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server  string        `mapstructure:"server"`
	Timeout time.Duration `mapstructure:"timeout"`
	Log     LogConfig     `mapstructure:"log"`
	Serve   ServeConfig   `mapstructure:"serve"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type ServeConfig struct {
	Addr  string `mapstructure:"addr"`
	Store string `mapstructure:"store"`
	DB    string `mapstructure:"db"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

const (
	DefaultServer = "http://127.0.0.1:8000"
	DefaultAddr   = "127.0.0.1:8000"
	EnvPrefix     = "TRACKUP"
)

// HomeDir is ~/.trackup (or $TRACKUP_HOME).
func HomeDir() string {
	if v := strings.TrimSpace(os.Getenv("TRACKUP_HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".trackup"
	}
	return filepath.Join(home, ".trackup")
}

func DefaultLogFile() string {
	if v := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); v != "" {
		return filepath.Join(v, "trackup", "trackup.log")
	}
	return filepath.Join(HomeDir(), "trackup.log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server", DefaultServer)
	v.SetDefault("timeout", 60*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("serve.addr", DefaultAddr)
	v.SetDefault("serve.store", "memory")
	v.SetDefault("serve.db", filepath.Join(HomeDir(), "trackup.sqlite"))
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-4o")
}

// Load resolves configuration: flags > TRACKUP_* env > config file > defaults.
// A .env file in the working directory is loaded first (existing env wins).
// flagKeys maps viper keys to flag names in flags.
func Load(configPath string, flags *pflag.FlagSet, flagKeys map[string]string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The assistant backend conventionally reads the bare OpenAI variables.
	_ = v.BindEnv("openai.api_key", EnvPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.base_url", EnvPrefix+"_OPENAI_BASE_URL", "OPENAI_API_BASE")
	_ = v.BindEnv("openai.model", EnvPrefix+"_OPENAI_MODEL", "MODEL_NAME")

	explicit := strings.TrimSpace(configPath) != ""
	if explicit {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(HomeDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Server = strings.TrimRight(strings.TrimSpace(cfg.Server), "/")
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return cfg, nil
}
