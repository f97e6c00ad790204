package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"habilitations-core/internal/infrastructure/database/mongodb"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/infrastructure/database/redis"

	"github.com/joho/godotenv"
)

// Uniquement variables d'environnement

// Config structure unifiée
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	Session     SessionConfig
	SuperAdmin  SuperAdminConfig
	Security    SecurityConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig configuration PostgreSQL
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	ConnectionTTL  time.Duration `env:"DB_CONNECTION_TTL"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	AcquireTimeout time.Duration `env:"DB_ACQUIRE_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Host        string        `env:"REDIS_HOST"`
	Port        int           `env:"REDIS_PORT"`
	Password    string        `env:"REDIS_PASSWORD"`
	Database    int           `env:"REDIS_DATABASE"`
	MaxRetries  int           `env:"REDIS_MAX_RETRIES"`
	PoolSize    int           `env:"REDIS_POOL_SIZE"`
	PoolTimeout time.Duration `env:"REDIS_POOL_TIMEOUT"`
}

// MongoConfig configuration MongoDB (journal des transactions, optionnel)
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// SessionConfig configuration du cookie et du stockage de session
type SessionConfig struct {
	Name            string        `env:"SESSION_NAME"`
	Secret          string        `env:"SESSION_SECRET"`
	MaxAge          time.Duration `env:"SESSION_MAX_AGE"`
	Secure          bool
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL"`
}

// SuperAdminConfig identité du super administrateur créé au bootstrap
type SuperAdminConfig struct {
	Login       string `env:"SUPER_ADMIN_LOGIN"`
	Nom         string `env:"SUPER_ADMIN_NOM"`
	Prenom      string `env:"SUPER_ADMIN_PRENOM"`
	Email       string `env:"SUPER_ADMIN_EMAIL"`
	Tel         string `env:"SUPER_ADMIN_TEL"`
	Genre       string `env:"SUPER_ADMIN_GENRE"`
	InitPass    string `env:"SUPER_ADMIN_INIT_PASSWORD"`
	ProfileLib  string `env:"SUPER_ADMIN_PROFILE_LIB"`
	DefaultDays int    `env:"PASSWORD_DEFAULT_EXPIR_DAYS"`
}

// SecurityConfig paramètres de hachage et de limitation des tentatives
type SecurityConfig struct {
	BcryptCost       int           `env:"BCRYPT_COST"`
	HashConcurrency  int           `env:"HASH_CONCURRENCY"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS"`
	LoginLockWindow  time.Duration `env:"LOGIN_LOCK_WINDOW"`
	ActivityTimeout  time.Duration `env:"ACTIVITY_TIMEOUT"`
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// NewConfig charge la configuration depuis les variables d'environnement uniquement
func NewConfig() (*Config, error) {
	// Charger le fichier .env (optionnel)
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] Warning: Fichier .env non trouvé: %v\n", err)
	}

	config := &Config{}

	// Déterminer environnement
	config.Environment = getEnv("APP_ENV", "development")
	isDevelopment := config.Environment == "development"

	// Charger configuration serveur
	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 4000),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration database
	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", "habilitations"),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 25),
		ConnectionTTL:  getEnvDuration("DB_CONNECTION_TTL", 300) * time.Second,
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 30) * time.Second,
		AcquireTimeout: getEnvDuration("DB_ACQUIRE_TIMEOUT", 10) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	// Charger configuration Redis
	config.Redis = RedisConfig{
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnvInt("REDIS_PORT", 6379),
		Password:    getEnv("REDIS_PASSWORD", ""),
		Database:    getEnvInt("REDIS_DATABASE", 0),
		MaxRetries:  getEnvInt("REDIS_MAX_RETRIES", 3),
		PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration MongoDB (vide = journal désactivé)
	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", ""),
		Database:       getEnv("MONGODB_DATABASE", "habilitations_journal"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 20),
	}

	defaultSecret := ""
	if isDevelopment {
		defaultSecret = "development-session-secret"
	}

	// Charger configuration session
	config.Session = SessionConfig{
		Name:            getEnv("SESSION_NAME", "habilitations.sid"),
		Secret:          getEnv("SESSION_SECRET", defaultSecret),
		MaxAge:          getEnvDuration("SESSION_MAX_AGE", 3600) * time.Second,
		Secure:          !isDevelopment,
		CleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", 900) * time.Second,
	}

	defaultInitPass := ""
	if isDevelopment {
		defaultInitPass = "SuperAdminPassword"
	}

	// Charger identité super administrateur
	config.SuperAdmin = SuperAdminConfig{
		Login:       strings.ToUpper(strings.TrimSpace(getEnv("SUPER_ADMIN_LOGIN", "ADMIN"))),
		Nom:         getEnv("SUPER_ADMIN_NOM", "ADMINISTRATEUR"),
		Prenom:      getEnv("SUPER_ADMIN_PRENOM", ""),
		Email:       getEnv("SUPER_ADMIN_EMAIL", ""),
		Tel:         getEnv("SUPER_ADMIN_TEL", ""),
		Genre:       getEnv("SUPER_ADMIN_GENRE", "Masculin"),
		InitPass:    getEnv("SUPER_ADMIN_INIT_PASSWORD", defaultInitPass),
		ProfileLib:  strings.ToUpper(strings.TrimSpace(getEnv("SUPER_ADMIN_PROFILE_LIB", "Super administrateur"))),
		DefaultDays: getEnvInt("PASSWORD_DEFAULT_EXPIR_DAYS", 90),
	}

	// Charger configuration sécurité
	config.Security = SecurityConfig{
		BcryptCost:       getEnvInt("BCRYPT_COST", 10),
		HashConcurrency:  getEnvInt("HASH_CONCURRENCY", 4),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockWindow:  getEnvDuration("LOGIN_LOCK_WINDOW", 900) * time.Second,
		ActivityTimeout:  getEnvDuration("ACTIVITY_TIMEOUT", 5) * time.Second,
	}

	// Charger configuration logging
	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "debug"),
	}

	// Charger configuration CORS
	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	// Validation configuration critique
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	fmt.Printf("[CONFIG] ✅ Configuration chargée pour environnement: %s\n", config.Environment)
	return config, nil
}

func (c *Config) GetServer() ServerConfig   { return c.Server }
func (c *Config) GetCORS() CORSConfig       { return c.CORS }
func (c *Config) IsDevelopment() bool       { return c.Environment == "development" }
func (c *Config) GetLogging() LoggingConfig { return c.Logging }

// Convertisseurs vers configurations infrastructure

func NewPostgresConfig(config *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		Host:           config.Database.Host,
		Port:           config.Database.Port,
		Database:       config.Database.Database,
		Username:       config.Database.Username,
		Password:       config.Database.Password,
		SSLMode:        config.Database.SSLMode,
		MaxConnections: config.Database.MaxConnections,
		ConnectionTTL:  config.Database.ConnectionTTL,
		QueryTimeout:   config.Database.QueryTimeout,
		AcquireTimeout: config.Database.AcquireTimeout,
	}
}

func NewRedisConfig(config *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:        config.Redis.Host,
		Port:        config.Redis.Port,
		Password:    config.Redis.Password,
		Database:    config.Redis.Database,
		MaxRetries:  config.Redis.MaxRetries,
		PoolSize:    config.Redis.PoolSize,
		PoolTimeout: config.Redis.PoolTimeout,
		KeyPrefix:   "habilitations_" + config.Environment,
	}
}

func NewMongoConfig(config *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:            config.MongoDB.URI,
		Database:       config.MongoDB.Database,
		ConnectTimeout: config.MongoDB.ConnectTimeout,
		MaxPoolSize:    config.MongoDB.MaxPoolSize,
	}
}

func NewSessionConfig(config *Config) *SessionConfig {
	return &config.Session
}

func NewSuperAdminConfig(config *Config) *SuperAdminConfig {
	return &config.SuperAdmin
}

func NewSecurityConfig(config *Config) *SecurityConfig {
	return &config.Security
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

// validateConfig valide la configuration selon l'environnement
func validateConfig(config *Config) error {
	env := config.Environment

	// Validation environnements supportés
	if env != "development" && env != "docker" {
		return fmt.Errorf("environnement non supporté: %s (utilisez 'development' ou 'docker')", env)
	}

	if config.SuperAdmin.Genre != "Masculin" && config.SuperAdmin.Genre != "Féminin" {
		return fmt.Errorf("SUPER_ADMIN_GENRE invalide: %s (Masculin ou Féminin)", config.SuperAdmin.Genre)
	}

	if config.SuperAdmin.DefaultDays <= 0 {
		return fmt.Errorf("PASSWORD_DEFAULT_EXPIR_DAYS doit être positif: %d", config.SuperAdmin.DefaultDays)
	}

	missingVars := []string{}

	if config.Session.Secret == "" {
		missingVars = append(missingVars, "SESSION_SECRET")
	}
	if config.SuperAdmin.InitPass == "" {
		missingVars = append(missingVars, "SUPER_ADMIN_INIT_PASSWORD")
	}

	// Variables critiques en mode docker (production/staging)
	if env == "docker" {
		if config.Database.Password == "" {
			missingVars = append(missingVars, "DB_PASSWORD")
		}

		// Warning pour variables recommandées en docker
		if config.Redis.Password == "" {
			fmt.Printf("[CONFIG] ⚠️ REDIS_PASSWORD non défini pour environnement docker\n")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("variables critiques manquantes pour environnement %s: %v", env, missingVars)
	}

	return nil
}
