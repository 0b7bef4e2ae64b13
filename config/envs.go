package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beka-birhanu/mazebot/robot"
	"github.com/joho/godotenv"
)

// ErrMissingEnv is returned when required environment variables are not set.
var ErrMissingEnv = errors.New("missing required environment variables")

// Config holds the settings shared by every entry point.
type Config struct {
	Rotation   robot.RotationMode // How the harness interprets relative moves
	StepBudget int                // Maximum number of decisions per run
	LogLevel   string             // Minimum log level (debug, info, warn, error)
}

// ServerConfig holds the settings of the sandbox server.
type ServerConfig struct {
	Config
	HostIP         string  // Host IP for the server
	RESTPort       int     // Port for the REST API
	DBHost         string  // Hostname or IP address for the database
	DBPort         int     // Port number for the database
	DBUser         string  // Username for the database
	DBPassword     string  // Password for the database
	DBName         string  // Name of the database
	RedisAddr      string  // Address of the redis server holding leaderboards
	RedisPassword  string  // Password for the redis server
	GinMode        string  // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret      string  // Secret key for JWT signing
	JWTIssuer      string  // Issuer claim for JWTs
	RateLimitRPS   float64 // Requests per second allowed per client
	RateLimitBurst int     // Burst size allowed per client
}

// Load reads the .env file if present and returns the shared configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	rotation, err := robot.ParseRotationMode(getEnvWithDefault("ROTATION_MODE", "fixed"))
	if err != nil {
		return Config{}, fmt.Errorf("ROTATION_MODE: %w", err)
	}
	budget, err := getEnvAsIntWithDefault("STEP_BUDGET", 2000)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Rotation:   rotation,
		StepBudget: budget,
		LogLevel:   getEnvWithDefault("LOG_LEVEL", "info"),
	}, nil
}

// LoadServer returns the server configuration. Every missing required
// variable is reported at once.
func LoadServer() (ServerConfig, error) {
	base, err := Load()
	if err != nil {
		return ServerConfig{}, err
	}

	env := &requiredEnv{}
	cfg := ServerConfig{
		Config:        base,
		HostIP:        getEnvWithDefault("HOST_IP", "0.0.0.0"),
		DBHost:        env.get("DB_HOST"),
		DBUser:        env.get("DB_USER"),
		DBPassword:    env.get("DB_PASS"),
		DBName:        env.get("DB_NAME"),
		RedisAddr:     env.get("REDIS_ADDR"),
		RedisPassword: getEnvWithDefault("REDIS_PASS", ""),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:     env.get("JWT_SECRET"),
		JWTIssuer:     getEnvWithDefault("JWT_ISSUER", "mazebot"),
	}
	if len(env.missing) > 0 {
		return ServerConfig{}, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(env.missing, ", "))
	}

	if cfg.RESTPort, err = getEnvAsIntWithDefault("REST_PORT", 8080); err != nil {
		return ServerConfig{}, err
	}
	if cfg.DBPort, err = getEnvAsIntWithDefault("DB_PORT", 27017); err != nil {
		return ServerConfig{}, err
	}
	if cfg.RateLimitBurst, err = getEnvAsIntWithDefault("RATE_LIMIT_BURST", 10); err != nil {
		return ServerConfig{}, err
	}
	rps := getEnvWithDefault("RATE_LIMIT_RPS", "5")
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64); err != nil {
		return ServerConfig{}, fmt.Errorf("environment variable RATE_LIMIT_RPS must be a number: %w", err)
	}

	return cfg, nil
}

// requiredEnv collects the names of required variables that are not set.
type requiredEnv struct {
	missing []string
}

func (r *requiredEnv) get(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		r.missing = append(r.missing, key)
	}
	return value
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer or returns a default value if not set.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
