package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/aidar/member-search/internal/domain"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server     ServerConfig     // Настройки HTTP сервера
	Database   DatabaseConfig   // Настройки подключения к БД
	Log        LogConfig        // Настройки логирования
	Pagination PaginationConfig // Настройки пагинации поиска
	Seed       SeedConfig       // Начальное наполнение данными
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host           string `envconfig:"DB_HOST" default:"localhost"`
	Port           string `envconfig:"DB_PORT" default:"5432"`
	User           string `envconfig:"DB_USER" default:"member_search"`
	Password       string `envconfig:"DB_PASSWORD" default:"member_search_pass"`
	Name           string `envconfig:"DB_NAME" default:"member_search"`
	SSLMode        string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns       int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns       int32  `envconfig:"DB_MIN_CONNS" default:"5"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_PATH" default:"migrations"`
	AutoMigrate    bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// LogConfig содержит настройки логгера
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Format      string `envconfig:"LOG_FORMAT" default:"json"`
	ServiceName string `envconfig:"LOG_SERVICE_NAME" default:"member-search"`
}

// PaginationConfig содержит настройки постраничного поиска
type PaginationConfig struct {
	DefaultSize     int    `envconfig:"PAGE_DEFAULT_SIZE" default:"20"`
	MaxSize         int    `envconfig:"PAGE_MAX_SIZE" default:"2000"`
	EmptyPagePolicy string `envconfig:"PAGE_EMPTY_POLICY" default:"count"`
	DefaultStrategy string `envconfig:"PAGE_DEFAULT_STRATEGY" default:"optimized"`
}

// Policy возвращает разобранную политику пустой страницы
func (p PaginationConfig) Policy() domain.EmptyPagePolicy {
	policy, err := domain.ParseEmptyPagePolicy(p.EmptyPagePolicy)
	if err != nil {
		return domain.EmptyPageCount
	}
	return policy
}

// Strategy возвращает разобранную стратегию по умолчанию
func (p PaginationConfig) Strategy() domain.PageStrategy {
	strategy, err := domain.ParsePageStrategy(p.DefaultStrategy)
	if err != nil {
		return domain.StrategyOptimized
	}
	return strategy
}

// SeedConfig управляет загрузкой тестовых данных при старте
type SeedConfig struct {
	OnStart bool `envconfig:"SEED_ON_START" default:"false"`
	Members int  `envconfig:"SEED_MEMBERS" default:"100"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Validate проверяет значения, которые envconfig не может проверить сам
func (c *Config) Validate() error {
	if _, err := domain.ParseEmptyPagePolicy(c.Pagination.EmptyPagePolicy); err != nil {
		return err
	}
	if _, err := domain.ParsePageStrategy(c.Pagination.DefaultStrategy); err != nil {
		return err
	}
	if c.Pagination.DefaultSize <= 0 || c.Pagination.MaxSize < c.Pagination.DefaultSize {
		return fmt.Errorf("invalid page sizes: default=%d max=%d", c.Pagination.DefaultSize, c.Pagination.MaxSize)
	}
	if c.Seed.Members < 0 {
		return fmt.Errorf("invalid seed member count %d", c.Seed.Members)
	}
	return nil
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
