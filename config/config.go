// Package config загружает настройки из YAML-файла и переменных окружения через Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix для переменных окружения: IPMANAGER_AUTH_SECRET, IPMANAGER_DATABASE_DSN, ...
const EnvPrefix = "IPMANAGER"

type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Logging  Logging  `mapstructure:"logging"`
	Auth     Auth     `mapstructure:"auth"`
}

type Server struct {
	Address  string `mapstructure:"address"`
	HTTPPort string `mapstructure:"http_port"`
	// StaticDir: каталог собранного клиента. Пустая строка отключает UI.
	StaticDir string `mapstructure:"static_dir"`
	// CORSOrigins: разрешённые Origin для браузерного клиента с другого хоста.
	// "*" разрешает любой, пустой список отключает CORS.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type Database struct {
	Driver string `mapstructure:"driver"` // sqlite|postgres|mysql
	DSN    string `mapstructure:"dsn"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type Auth struct {
	// Secret подписывает токены (HS256). Обязателен.
	Secret     string        `mapstructure:"secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

// Load читает конфиг (Read) и проверяет его целиком (Validate).
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read читает файл path (если задан), затем переменные окружения поверх него.
// Без проверки: вызывающий сам решает, какие секции ему нужны.
func Read(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.http_port", "3001")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "ipmanager.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("auth.bcrypt_cost", 10)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := c.ValidateStorage(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("config: auth.secret must be set")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: auth.token_ttl must be positive")
	}
	if c.Server.HTTPPort == "" {
		return errors.New("config: server.http_port must be set")
	}
	return nil
}

// ValidateStorage проверяет только то, что нужно для заведения пользователей:
// БД и bcrypt_cost. Секрет подписи токенов здесь не требуется.
func (c *Config) ValidateStorage() error {
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return errors.New("config: auth.bcrypt_cost must be between 4 and 31")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("config: unsupported database.driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("config: database.dsn must be set")
	}
	return nil
}
