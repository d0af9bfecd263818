package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Billing struct {
		WindowDays   int    `mapstructure:"window_days"`
		LookbackDays int    `mapstructure:"lookback_days"`
		CronSecret   string `mapstructure:"cron_secret"`
	} `mapstructure:"billing"`

	WhatsApp struct {
		Provider      string `mapstructure:"provider"`
		APIURL        string `mapstructure:"api_url"`
		APIKey        string `mapstructure:"api_key"`
		PhoneNumberID string `mapstructure:"phone_number_id"`
	} `mapstructure:"whatsapp"`

	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"archive"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "rentora_db")
	v.SetDefault("billing.window_days", 7)
	v.SetDefault("billing.lookback_days", 45)
	v.SetDefault("archive.region", "auto")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// The billing trigger secret must come from the environment in
	// production. A missing secret leaves the endpoint open, so warn.
	if secret := os.Getenv("CRON_SECRET"); secret != "" {
		cfg.Billing.CronSecret = secret
	}
	if cfg.Billing.CronSecret == "" || cfg.Billing.CronSecret == "${CRON_SECRET}" {
		log.Printf("[Config] CRON_SECRET not set, billing trigger endpoint is unprotected")
		cfg.Billing.CronSecret = ""
	}

	// WhatsApp gateway settings from environment
	if p := os.Getenv("WHATSAPP_PROVIDER"); p != "" {
		cfg.WhatsApp.Provider = p
	}
	if u := os.Getenv("WHATSAPP_API_URL"); u != "" {
		cfg.WhatsApp.APIURL = u
	}
	if k := os.Getenv("WHATSAPP_API_KEY"); k != "" {
		cfg.WhatsApp.APIKey = k
	}
	if id := os.Getenv("WHATSAPP_PHONE_NUMBER_ID"); id != "" {
		cfg.WhatsApp.PhoneNumberID = id
	}

	// R2 archive credentials from environment
	if key := os.Getenv("R2_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if key := os.Getenv("R2_SECRET_KEY"); key != "" {
		cfg.Archive.SecretKey = key
	}
	if ep := os.Getenv("R2_ENDPOINT"); ep != "" {
		cfg.Archive.Endpoint = ep
	}
	if b := os.Getenv("R2_BUCKET"); b != "" {
		cfg.Archive.Bucket = b
	}

	return &cfg
}
