package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Google sign-in
	GoogleClientID string

	// Google Books catalog
	BooksAPIURL    string
	BooksAPIKey    string
	SearchMaxItems int

	// Server
	Port        string
	CORSOrigins string

	// Demo access (issues tokens for the provisioned demo user)
	DemoMode bool
}

// Load reads configuration from the environment, with an optional
// config.yaml overlay for local development. Environment variables win.
func Load() *Config {
	v := viper.New()

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "bookshelf")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_access_expiry", "15m")
	v.SetDefault("jwt_refresh_expiry", "168h")

	v.SetDefault("google_client_id", "")

	v.SetDefault("books_api_url", "https://www.googleapis.com/books/v1/volumes")
	v.SetDefault("books_api_key", "")
	v.SetDefault("search_max_items", 20)

	v.SetDefault("port", "8080")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("demo_mode", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// Missing config file is fine; env vars and defaults cover everything.
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	return &Config{
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetString("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBSSLMode:  v.GetString("db_sslmode"),

		JWTSecret:        v.GetString("jwt_secret"),
		JWTAccessExpiry:  v.GetDuration("jwt_access_expiry"),
		JWTRefreshExpiry: v.GetDuration("jwt_refresh_expiry"),

		GoogleClientID: v.GetString("google_client_id"),

		BooksAPIURL:    v.GetString("books_api_url"),
		BooksAPIKey:    v.GetString("books_api_key"),
		SearchMaxItems: v.GetInt("search_max_items"),

		Port:        v.GetString("port"),
		CORSOrigins: v.GetString("cors_origins"),
		DemoMode:    v.GetBool("demo_mode"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
