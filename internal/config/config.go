// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr        string
	MySQLDSN        string
	RedisAddr       string
	LogisticsTopic  string
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	sec, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/ecommerce?parseTime=true"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		LogisticsTopic:  getenv("LOGISTICS_TOPIC", "ecommerce-logistics"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
	}
}
