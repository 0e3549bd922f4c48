package utils

import (
	"fmt"

	"github.com/spf13/viper"
)

// PricingSource decides which price field booking totals are computed
// from. The schema carries both a per-movie ticket price and a
// per-schedule price; totals have always been computed from the movie,
// so that stays the default until the product decides otherwise.
type PricingSource string

const (
	PricingSourceMovie    PricingSource = "movie"
	PricingSourceSchedule PricingSource = "schedule"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type BookingConfig struct {
	PricingSource PricingSource
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("BOOKING_PRICING_SOURCE", string(PricingSourceMovie))
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	pricing := PricingSource(viper.GetString("BOOKING_PRICING_SOURCE"))
	if pricing != PricingSourceMovie && pricing != PricingSourceSchedule {
		return nil, fmt.Errorf("invalid BOOKING_PRICING_SOURCE %q: want movie or schedule", pricing)
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			PricingSource: pricing,
		},
	}

	return config, nil
}
