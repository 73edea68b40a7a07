// ABOUTME: Environment variable overrides for configuration.
// ABOUTME: Mirrors the deployment variables of the hosted service.

package config

import "os"

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("TODO_ENV"); v != "" {
		cfg.Env = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("TODO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	if v := os.Getenv("TODO_STORE"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("TODO_DB"); v != "" {
		cfg.Store.Path = v
	}

	m := &cfg.Store.Mongo
	if v := os.Getenv("MONGO_URI"); v != "" {
		m.URI = v
	}
	if v := os.Getenv("MONGO_USER"); v != "" {
		m.User = v
	}
	if v := os.Getenv("MONGO_PASSWORD"); v != "" {
		m.Password = v
	}
	if v := os.Getenv("MONGO_CLUSTER"); v != "" {
		m.Cluster = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		m.Database = v
	}
	if v := os.Getenv(envDatabaseVar(cfg.Env)); v != "" {
		m.Database = v
	}

	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// envDatabaseVar names the per-environment database variable.
func envDatabaseVar(env string) string {
	switch env {
	case EnvTest:
		return "MONGO_TEST_DB"
	case EnvProduction:
		return "MONGO_PROD_DB"
	default:
		return "MONGO_DEV_DB"
	}
}
