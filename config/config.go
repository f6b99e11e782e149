package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	SeedFile string
	LogLevel string
}

type Server struct {
	Port           string
	Mode           string
	FrontendOrigin string
}

type Database struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite file, ignored for postgres
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Addr     string // empty disables the question cache
	Password string
	DB       int
	TTL      time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file, using environment only")
	}

	var config Config

	// Hosting platforms usually inject PORT; SERVER_PORT wins when both are set.
	config.Server.Port = viper.GetString("SERVER_PORT")
	if config.Server.Port == "" {
		config.Server.Port = viper.GetString("PORT")
	}
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Server.FrontendOrigin = viper.GetString("FRONTEND_ORIGIN")

	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Path = viper.GetString("DATABASE_PATH")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.TTL = viper.GetDuration("QUESTION_CACHE_TTL")

	config.SeedFile = viper.GetString("SEED_FILE")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	log.Info().
		Str("port", config.Server.Port).
		Str("mode", config.Server.Mode).
		Str("db_driver", config.Database.Driver).
		Str("seed_file", config.SeedFile).
		Bool("redis_cache", config.Redis.Addr != "").
		Msg("Config loaded")
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "release")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("FRONTEND_ORIGIN", "*")
	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_PATH", "data.db")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("QUESTION_CACHE_TTL", "5m")
	viper.SetDefault("SEED_FILE", "questions.csv")
}
