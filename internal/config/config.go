package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string  `mapstructure:"port"`
	DBDSN            string  `mapstructure:"db_dsn"`
	LogFile          string  `mapstructure:"log_file"`
	TemplatesDir     string  `mapstructure:"templates_dir"`
	SeedSample       bool    `mapstructure:"seed_sample"`
	LoginMaxAttempts int     `mapstructure:"login_max_attempts"`
	RateLimitPerMin  int     `mapstructure:"rate_limit_per_min"`
	DefaultPriceMax  float64 `mapstructure:"default_price_max"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_dsn", ":memory:") // sample data only; state resets on restart
	v.SetDefault("log_file", "")
	v.SetDefault("templates_dir", "./web/templates")
	v.SetDefault("seed_sample", true)
	v.SetDefault("login_max_attempts", 5)
	v.SetDefault("rate_limit_per_min", 60)
	v.SetDefault("default_price_max", 10.0)
}

// Load reads configuration from the environment (PORT, DB_DSN, LOG_FILE, ...).
func Load() Config {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	cfg := Config{
		Port:             v.GetString("port"),
		DBDSN:            v.GetString("db_dsn"),
		LogFile:          v.GetString("log_file"),
		TemplatesDir:     v.GetString("templates_dir"),
		SeedSample:       v.GetBool("seed_sample"),
		LoginMaxAttempts: v.GetInt("login_max_attempts"),
		RateLimitPerMin:  v.GetInt("rate_limit_per_min"),
		DefaultPriceMax:  v.GetFloat64("default_price_max"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TEMPLATES_DIR=%s SEED_SAMPLE=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TemplatesDir, cfg.SeedSample)
	return cfg
}
