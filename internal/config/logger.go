package config

import "strconv"

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string
	Format      string
	ServiceName string
	LogFile     string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
	Compress    bool
}

// LoadLoggerConfig loads logging configuration from environment variables
func LoadLoggerConfig(getenv func(string) string, serviceName string) LoggerConfig {
	return LoggerConfig{
		Level:       valueOrDefault(getenv("LOG_LEVEL"), "info"),
		Format:      valueOrDefault(getenv("LOG_FORMAT"), "console"),
		ServiceName: serviceName,
		LogFile:     getenv("LOG_FILE"),
		MaxSize:     intOrDefault(getenv("LOG_MAX_SIZE_MB"), 10),
		MaxBackups:  intOrDefault(getenv("LOG_MAX_BACKUPS"), 3),
		MaxAge:      intOrDefault(getenv("LOG_MAX_AGE_DAYS"), 7),
		Compress:    getenv("LOG_COMPRESS") == "true",
	}
}

func intOrDefault(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
