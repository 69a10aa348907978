/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package benchstore

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/suparena/benchstore/datastore"
	"github.com/suparena/benchstore/datastore/ddb"
	"github.com/suparena/benchstore/datastore/mock"
	"github.com/suparena/benchstore/datastore/redisstore"
)

// Config selects and configures a document storage backend. Credentials are
// never kept in the config file; they come from the environment (optionally
// populated from a .env file).
type Config struct {
	// Backend is one of "dynamodb", "redis", "memory".
	Backend string `yaml:"backend"`

	DynamoDB struct {
		Region string `yaml:"region"`
		Table  string `yaml:"table"`
	} `yaml:"dynamodb"`

	Redis struct {
		Addr      string `yaml:"addr"`
		DB        int    `yaml:"db"`
		Namespace string `yaml:"namespace"`
	} `yaml:"redis"`
}

// LoadConfig reads a YAML config file. A .env file in the working directory,
// when present, is loaded into the environment first.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if cfg.Backend == "" {
		cfg.Backend = "memory"
	}
	return &cfg, nil
}

// OpenStore constructs the configured document store backend.
func (c *Config) OpenStore() (datastore.DocumentStore, error) {
	switch c.Backend {
	case "dynamodb":
		if c.DynamoDB.Table == "" {
			return nil, fmt.Errorf("dynamodb backend requires a table name")
		}
		return ddb.New(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			c.DynamoDB.Region,
			c.DynamoDB.Table,
		)
	case "redis":
		if c.Redis.Addr == "" {
			return nil, fmt.Errorf("redis backend requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       c.Redis.DB,
		})
		return redisstore.New(client, c.Redis.Namespace), nil
	case "memory":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}
