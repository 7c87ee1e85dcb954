package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	DbHost      string
	DbPort      string
	DbUser      string
	DbPass      string
	DbName      string
	DbSSLMode   string

	JWTSecret      string
	AccessTokenTTL string

	FrontendURL   string
	SeedSecretKey string
	RedisAddr     string

	Log      string
	LogLevel string
	Env      string // dev|prod
}

// LoadConfig charge .env puis lit les variables d'environnement avec leurs
// défauts. Ne logue rien pour ne pas dépendre du logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:        def(os.Getenv("PORT"), "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DbHost:      os.Getenv("DB_HOST"),
		DbPort:      def(os.Getenv("DB_PORT"), "5432"),
		DbUser:      os.Getenv("DB_USER"),
		DbPass:      os.Getenv("DB_PASSWORD"),
		DbName:      os.Getenv("DB_NAME"),
		DbSSLMode:   def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "24h"),

		FrontendURL:   def(os.Getenv("FRONTEND_URL"), "http://localhost:5173"),
		SeedSecretKey: os.Getenv("SEED_SECRET_KEY"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),
	}

	return cfg, nil
}

// Validate retourne des avertissements et une erreur fatale si la config est
// inutilisable. Un JWT_SECRET absent est fatal : pas de secret par défaut.
func (c *Config) Validate() (warnings []string, err error) {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET est obligatoire")
	}

	if c.DatabaseURL == "" && (c.DbHost == "" || c.DbUser == "" || c.DbName == "") {
		return nil, fmt.Errorf("config base incomplète (DATABASE_URL ou DB_HOST/DB_USER/DB_NAME)")
	}

	if c.SeedSecretKey == "" {
		warnings = append(warnings, "SEED_SECRET_KEY absent : l'endpoint de seed est désactivé")
	}
	if c.RedisAddr == "" {
		warnings = append(warnings, "REDIS_ADDR absent : rate-limit en mémoire (mono-instance uniquement)")
	}

	return warnings, nil
}

// GetDSN — DSN complète. DATABASE_URL prime sur les variables DB_*.
func (c *Config) GetDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN sans mot de passe (pour les logs).
func (c *Config) GetDSNSafe() string {
	if c.DatabaseURL != "" {
		return "postgres://***(DATABASE_URL)"
	}
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
