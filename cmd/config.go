package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type EnvConfig map[string]string

var defaults = EnvConfig{
	"PORT":            "8080",
	"POSTGRES_DSN":    "postgresql://localhost/ascended?sslmode=disable",
	"MONGODB_URI":     "mongodb://localhost:27017",
	"MONGODB_DB":      "ascended",
	"REDIS_ADDR":      "redis://localhost:6379",
	"LOG_LEVEL":       "info",
	"STARTING_ENERGY": "100",
}

// readConfig merges .env, the process environment and defaults, in that
// order of precedence. A missing .env file is not an error.
func readConfig() EnvConfig {
	env, err := godotenv.Read()
	if err != nil {
		log.Println("config: no .env file, using the environment:", err)
		env = map[string]string{}
	}

	cfg := EnvConfig{}
	for k, v := range defaults {
		cfg[k] = v
	}
	for k := range defaults {
		if v, ok := os.LookupEnv(k); ok {
			cfg[k] = v
		}
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		cfg["SECRET_KEY"] = v
	}
	for k, v := range env {
		cfg[k] = v
	}

	if cfg["SECRET_KEY"] == "" {
		log.Fatal("config: SECRET_KEY is required")
	}
	return cfg
}

func (cfg EnvConfig) Int(key string) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil {
		log.Fatalf("config: %s must be a number, got %q", key, cfg[key])
	}
	return n
}
