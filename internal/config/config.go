// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Availability AvailabilityConfig `toml:"availability"`
	Booking      BookingConfig      `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityConfig настройки клиента провайдера расписания
type AvailabilityConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig бизнес-параметры календаря и бронирования
type BookingConfig struct {
	StepMinutes          int `toml:"step_minutes"`           // Шаг сетки слотов
	HoldTTLMinutes       int `toml:"hold_ttl_minutes"`       // TTL удержания
	HorizonDays          int `toml:"horizon_days"`           // Горизонт генерации слотов
	UnpaidRetentionHours int `toml:"unpaid_retention_hours"` // Срок хранения неоплаченных сессий
	BufferMinutes        int `toml:"buffer_minutes"`         // Буфер после сессии
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.StepMinutes == 0 {
		c.Booking.StepMinutes = domain.DefaultStepMinutes
	}
	if c.Booking.HoldTTLMinutes == 0 {
		c.Booking.HoldTTLMinutes = domain.DefaultHoldTTLMinutes
	}
	if c.Booking.HorizonDays == 0 {
		c.Booking.HorizonDays = domain.DefaultHorizonDays
	}
	if c.Booking.UnpaidRetentionHours == 0 {
		c.Booking.UnpaidRetentionHours = domain.DefaultUnpaidRetentionHours
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in (0, 65535], got %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Availability.URL == "" {
		return fmt.Errorf("availability.url is required")
	}
	if c.Booking.StepMinutes < domain.MinStepMinutes || c.Booking.StepMinutes > domain.MaxStepMinutes {
		return fmt.Errorf("booking.step_minutes must be in [%d, %d], got %d",
			domain.MinStepMinutes, domain.MaxStepMinutes, c.Booking.StepMinutes)
	}
	if domain.MinutesPerDay%c.Booking.StepMinutes != 0 {
		return fmt.Errorf("booking.step_minutes must divide a day evenly, got %d", c.Booking.StepMinutes)
	}
	if c.Booking.HoldTTLMinutes < domain.MinHoldTTLMinutes || c.Booking.HoldTTLMinutes > domain.MaxHoldTTLMinutes {
		return fmt.Errorf("booking.hold_ttl_minutes must be in [%d, %d], got %d",
			domain.MinHoldTTLMinutes, domain.MaxHoldTTLMinutes, c.Booking.HoldTTLMinutes)
	}
	if c.Booking.HorizonDays < domain.MinHorizonDays || c.Booking.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("booking.horizon_days must be in [%d, %d], got %d",
			domain.MinHorizonDays, domain.MaxHorizonDays, c.Booking.HorizonDays)
	}
	if c.Booking.BufferMinutes < 0 {
		return fmt.Errorf("booking.buffer_minutes must be non-negative, got %d", c.Booking.BufferMinutes)
	}
	if c.Booking.BufferMinutes%c.Booking.StepMinutes != 0 {
		return fmt.Errorf("booking.buffer_minutes must be a multiple of step_minutes, got %d",
			c.Booking.BufferMinutes)
	}
	return nil
}
