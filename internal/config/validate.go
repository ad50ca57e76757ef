package config

import (
	"fmt"
	"slices"
)

var validEnvs = []string{"development", "production"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(validEnvs, c.App.Env) {
		return fmt.Errorf("app.env must be one of %v (got %q)", validEnvs, c.App.Env)
	}

	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 {
		return fmt.Errorf("database.min_conns must be >= 0 (got %d)", c.Database.MinConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed database.max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("database.connect_timeout must be positive (got %v)", c.Database.ConnectTimeout)
	}

	if c.Audit.RetentionDays < 1 {
		return fmt.Errorf("audit.retention_days must be >= 1 (got %d)", c.Audit.RetentionDays)
	}

	return nil
}
