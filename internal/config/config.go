package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	MQTT      MQTTConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MQTTConfig covers both the listener's long-lived subscription and the
// per-command publish sessions used by the API.
type MQTTConfig struct {
	Broker              string
	ClientID            string
	Username            string
	Password            string
	KeepAlive           int
	ConnectTimeout      int
	StatusTopic         string
	CommandTopicPattern string
	QoS                 int
	PublishTimeout      int
}

type AuthConfig struct {
	JWTSecret            string
	ExpiryHours          int
	OperatorUsername     string
	OperatorPasswordHash string
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	viper.SetDefault("MQTT_BROKER", "tcp://test.mosquitto.org:1883")
	viper.SetDefault("MQTT_KEEPALIVE_SECONDS", 60)
	viper.SetDefault("MQTT_CONNECT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MQTT_STATUS_TOPIC", "iot/devices/status")
	viper.SetDefault("MQTT_COMMAND_TOPIC_PATTERN", "iot/devices/%s/comando")
	viper.SetDefault("MQTT_QOS", 1)
	viper.SetDefault("MQTT_PUBLISH_TIMEOUT_SECONDS", 3)
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		MQTT: MQTTConfig{
			Broker:              viper.GetString("MQTT_BROKER"),
			ClientID:            viper.GetString("MQTT_CLIENT_ID"),
			Username:            viper.GetString("MQTT_USERNAME"),
			Password:            viper.GetString("MQTT_PASSWORD"),
			KeepAlive:           viper.GetInt("MQTT_KEEPALIVE_SECONDS"),
			ConnectTimeout:      viper.GetInt("MQTT_CONNECT_TIMEOUT_SECONDS"),
			StatusTopic:         viper.GetString("MQTT_STATUS_TOPIC"),
			CommandTopicPattern: viper.GetString("MQTT_COMMAND_TOPIC_PATTERN"),
			QoS:                 viper.GetInt("MQTT_QOS"),
			PublishTimeout:      viper.GetInt("MQTT_PUBLISH_TIMEOUT_SECONDS"),
		},
		Auth: AuthConfig{
			JWTSecret:            viper.GetString("JWT_SECRET"),
			ExpiryHours:          viper.GetInt("JWT_EXPIRY_HOURS"),
			OperatorUsername:     viper.GetString("OPERATOR_USERNAME"),
			OperatorPasswordHash: viper.GetString("OPERATOR_PASSWORD_HASH"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
