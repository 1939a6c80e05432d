package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be > 0 (got %d)", c.Cache.Capacity)
	}
	if c.Cache.NumShards <= 0 {
		return fmt.Errorf("cache.num_shards must be > 0 (got %d)", c.Cache.NumShards)
	}

	if strings.HasSuffix(c.Assets.LogoHost, "/") {
		return fmt.Errorf("assets.logo_host must not end with a slash (got %q)", c.Assets.LogoHost)
	}

	if !strings.HasPrefix(c.Phoenix.APIEndpoint, "/") {
		return fmt.Errorf("phoenix.api_endpoint must start with a slash (got %q)", c.Phoenix.APIEndpoint)
	}

	return nil
}
