package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Engine string // "sqlite" or "mongo"
		Path   string // sqlite file path
		URL    string // mongodb connection string
		Name   string // mongodb database name
	}
	Auth struct {
		SessionDays int
		BcryptCost  int
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("KEGWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.engine", "sqlite")
	v.SetDefault("database.path", "data/kegwatch.db")
	v.SetDefault("database.url", "mongodb://localhost:27017")
	v.SetDefault("database.name", "statusdb")
	v.SetDefault("auth.sessiondays", 90)
	v.SetDefault("auth.bcryptcost", 0)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Database.Engine {
	case "sqlite", "mongo":
	default:
		return Config{}, fmt.Errorf("unknown database engine %q", cfg.Database.Engine)
	}
	if cfg.Auth.SessionDays <= 0 {
		return Config{}, fmt.Errorf("auth.sessiondays must be positive")
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
