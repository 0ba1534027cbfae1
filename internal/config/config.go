package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI       string
	Database  string
	Timeout   time.Duration
	UseMemory bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", GetEnv("PORT", "8080"))
	viper.SetDefault("Server.AllowedHosts", GetEnvAsSlice("ALLOWED_HOSTS", ",", []string{"localhost:3000"}))
	viper.SetDefault("MongoDB.URI", GetEnv("MONGODB_URI", "mongodb://localhost:27017"))
	viper.SetDefault("MongoDB.Database", GetEnv("MONGODB_DATABASE", "referral-ledger"))
	viper.SetDefault("MongoDB.Timeout", time.Duration(GetEnvAsInt("MONGODB_TIMEOUT_SECONDS", 5))*time.Second)
	viper.SetDefault("MongoDB.UseMemory", GetEnvAsBool("STORE_USE_MEMORY", false))
	viper.SetDefault("LogLevel", GetEnv("LOG_LEVEL", "info"))
}
