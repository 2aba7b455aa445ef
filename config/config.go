package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server          Server
	Database        Database
	Signing         Signing
	Attempts        Attempts
	CatalogDir      string
	AssignmentsFile string
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}
type Signing struct {
	Secret     string
	TTLMinutes int
}

// Attempts are the per-mode scored-attempt caps. Zero or negative values
// fall back to the shipped defaults.
type Attempts struct {
	Assignment int
	Session    int
	Practice   int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TOKEN_TTL_MINUTES", 30)
	viper.SetDefault("CATALOG_DIR", "catalog")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Signing.Secret = viper.GetString("SIGNING_SECRET")
	config.Signing.TTLMinutes = viper.GetInt("TOKEN_TTL_MINUTES")

	config.Attempts.Assignment = viper.GetInt("ATTEMPTS_ASSIGNMENT")
	config.Attempts.Session = viper.GetInt("ATTEMPTS_SESSION")
	config.Attempts.Practice = viper.GetInt("ATTEMPTS_PRACTICE")

	config.CatalogDir = viper.GetString("CATALOG_DIR")
	config.AssignmentsFile = viper.GetString("ASSIGNMENTS_FILE")

	log.Info().
		Str("serverPort", config.Server.Port).
		Str("catalogDir", config.CatalogDir).
		Int("tokenTTLMinutes", config.Signing.TTLMinutes).
		Msg("Config loaded")
	return &config, nil
}
