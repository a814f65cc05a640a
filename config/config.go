package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds application configuration loaded from environment variables and .env file.
type AppConfig struct {
	// Central database config
	DBHost string
	DBPort int
	DBUser string
	DBPass string
	DBName string

	// Plant registry config
	PlantKeys []string // Declared plant keys, e.g. "CAIRO,LUXOR"

	// Logging config
	LogLevel      string
	LogFile       string
	LogMaxSize    int // MB
	LogMaxBackups int
	LogMaxAge     int // days
	LogCompress   bool

	// Database operation timeouts
	ConnectTimeout     time.Duration // Timeout for establishing a plant pool
	AccessQueryTimeout time.Duration // Timeout for the authorization query
	ProbeTimeout       time.Duration // Per-database health probe timeout

	// Connection pool limits, applied to every plant pool and the central pool
	PoolMaxOpenConns    int
	PoolMaxIdleConns    int
	PoolConnMaxLifetime time.Duration
}

// Cfg is the global application configuration instance.
var Cfg AppConfig

// Plants is the global plant registry, built once by LoadConfig.
var Plants *PlantRegistry

// LoadConfig loads and validates application configuration from .env file and
// environment variables. An incomplete plant credential group is a fatal
// configuration error: the caller should abort startup rather than defer the
// failure to request time.
func LoadConfig() error {
	err := godotenv.Load()
	if err != nil {
		// Use standard log here since logger is not initialized yet
		log.Printf("[WARN] .env file not found or cannot be loaded: %v", err)
	} else {
		log.Printf("[INFO] .env file loaded successfully")
	}

	Cfg.DBHost = getEnv("DB_HOST", "127.0.0.1")
	Cfg.DBUser = getEnv("DB_USER", "root")
	Cfg.DBPass = getEnv("DB_PASS", "")
	Cfg.DBName = getEnv("DB_NAME", "central_db")

	portStr := getEnv("DB_PORT", "3306")
	portInt, _ := strconv.Atoi(portStr)
	Cfg.DBPort = portInt

	Cfg.PlantKeys = getEnvStringSlice("PLANTS", []string{})

	// Load logging config
	Cfg.LogLevel = getEnv("LOG_LEVEL", "DEBUG")
	Cfg.LogFile = getEnv("LOG_FILE", "/var/log/plantchat/plantchatapi.log")
	Cfg.LogMaxSize = getEnvInt("LOG_MAX_SIZE", 10)
	Cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 3)
	Cfg.LogMaxAge = getEnvInt("LOG_MAX_AGE", 28)
	Cfg.LogCompress = getEnvBool("LOG_COMPRESS", true)

	// Load timeout config
	Cfg.ConnectTimeout = time.Duration(getEnvInt("CONNECT_TIMEOUT", 10)) * time.Second
	Cfg.AccessQueryTimeout = time.Duration(getEnvInt("ACCESS_QUERY_TIMEOUT", 5)) * time.Second
	Cfg.ProbeTimeout = time.Duration(getEnvInt("PROBE_TIMEOUT", 5)) * time.Second

	// Load pool limits
	Cfg.PoolMaxOpenConns = getEnvInt("POOL_MAX_OPEN_CONNS", 20)
	Cfg.PoolMaxIdleConns = getEnvInt("POOL_MAX_IDLE_CONNS", 5)
	Cfg.PoolConnMaxLifetime = time.Duration(getEnvInt("POOL_CONN_MAX_LIFETIME", 1800)) * time.Second

	registry, err := LoadPlantRegistry(Cfg.PlantKeys)
	if err != nil {
		return err
	}
	Plants = registry

	log.Printf("[INFO] Config loaded - Central DB: %s@%s:%d/%s, Plants: %v, LogLevel: %s",
		Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName, registry.Keys(), Cfg.LogLevel)
	log.Printf("[INFO] Timeouts - Connect: %v, AccessQuery: %v, Probe: %v",
		Cfg.ConnectTimeout, Cfg.AccessQueryTimeout, Cfg.ProbeTimeout)

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// getEnvStringSlice parses comma-separated environment variable into string slice
// Format: "item1,item2,item3" -> []string{"item1", "item2", "item3"}
func getEnvStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		items := strings.Split(val, ",")
		result := make([]string, 0, len(items))
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultVal
}
