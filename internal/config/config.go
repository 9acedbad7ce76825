package config

import (
	"os"            // For environment variables
	"path/filepath" // For the default token file
	"strconv"       // For string to int conversion
	"time"          // For token lifetime

	"github.com/joho/godotenv" // For loading .env files
)

// Supported values for STORE_DRIVER
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	StoreDriver string        // Backing store: mysql, sqlite or mongo
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	SQLitePath  string        // SQLite database file
	MongoURI    string        // MongoDB connection string
	MongoDB     string        // MongoDB database name
	JWTSecret   string        // JWT secret key
	JWTTTL      time.Duration // Token lifetime
	RedisAddr   string        // Redis server address, empty disables the shared cache
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheSize   int           // In-process recipe cache entries
	IsProd      bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:     getenv("APP_PORT", "3000"),
		StoreDriver: getenv("STORE_DRIVER", DriverMySQL),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      getenv("DB_HOST", "127.0.0.1"),
		DBPort:      getenv("DB_PORT", "3306"),
		DBName:      getenv("DB_NAME", "recipe_manager"),
		SQLitePath:  getenv("SQLITE_PATH", "recipe_manager.db"),
		MongoURI:    getenv("MONGO_URI", getenv("MONGODB", "")), // MONGODB kept for older deployments
		MongoDB:     getenv("MONGO_DB", "recipe-manager"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      getDuration("JWT_TTL", time.Hour),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASS"),
		RedisDB:     getInt("REDIS_DB", 0),
		CacheSize:   getInt("CACHE_SIZE", 256),
		IsProd:      os.Getenv("IS_PROD") == "true",
	}
}

// ClientConfig holds the settings of cmd/recipectl
type ClientConfig struct {
	APIURL    string // API root, including /api
	TokenFile string // Persistent token slot
}

// LoadClientConfig loads the recipectl configuration from environment variables
func LoadClientConfig() *ClientConfig {
	_ = godotenv.Load() // Load .env file if present
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &ClientConfig{
		APIURL:    getenv("RECIPE_API_URL", "http://localhost:3000/api"),
		TokenFile: getenv("RECIPE_TOKEN_FILE", filepath.Join(home, ".recipectl", "session.json")),
	}
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
