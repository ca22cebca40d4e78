package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Admin    AdminConfig
	JWT      JWTConfig
	Metrics  MetricsConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type CatalogConfig struct {
	// DataFile is the flat JSON document that backs the catalog.
	DataFile string
}

type CartConfig struct {
	// MirrorDir is where the cart's durable mirror file is kept.
	MirrorDir string
}

type AdminConfig struct {
	Email    string
	Password string
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CATALOG_DATA_FILE", "data/products.json")
	viper.SetDefault("CART_MIRROR_DIR", "data")
	viper.SetDefault("ADMIN_EMAIL", "admin@audiophile.local")
	viper.SetDefault("JWT_TOKEN_TTL_MINUTES", 15)
	viper.SetDefault("METRICS_ENABLED", false)
	viper.SetDefault("CHECKOUT_DELAY_MS", 2000)

	// Missing .env is fine; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Catalog: CatalogConfig{
			DataFile: viper.GetString("CATALOG_DATA_FILE"),
		},
		Cart: CartConfig{
			MirrorDir: viper.GetString("CART_MIRROR_DIR"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("JWT_SECRET"),
			TokenTTL: time.Duration(viper.GetInt("JWT_TOKEN_TTL_MINUTES")) * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Token:   viper.GetString("METRICS_TOKEN"),
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: time.Duration(viper.GetInt("CHECKOUT_DELAY_MS")) * time.Millisecond,
		},
	}
}
