package config

import (
	"fmt"
	"time"
)

// Booking store backends for the sandbox booker
const (
	BookingStoreMemory   = "memory"
	BookingStorePostgres = "postgres"
)

// ServerConfig holds sandbox server configuration
type ServerConfig struct {
	Port                   string
	BookerPort             string
	BookingStore           string
	PerformanceGlitchDelay time.Duration
}

// LoadServerConfig loads sandbox server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	config := ServerConfig{
		Port:         valueOrDefault(getenv("PORT"), "8080"),
		BookerPort:   valueOrDefault(getenv("BOOKER_PORT"), "3001"),
		BookingStore: valueOrDefault(getenv("BOOKING_STORE"), BookingStoreMemory),
	}

	delay, err := durationOrDefault(getenv, "PERFORMANCE_GLITCH_DELAY", time.Second)
	if err != nil {
		return ServerConfig{}, err
	}
	config.PerformanceGlitchDelay = delay

	switch config.BookingStore {
	case BookingStoreMemory, BookingStorePostgres:
	default:
		return ServerConfig{}, fmt.Errorf("BOOKING_STORE must be %q or %q, got %q",
			BookingStoreMemory, BookingStorePostgres, config.BookingStore)
	}

	return config, nil
}
