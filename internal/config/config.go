package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Assets   AssetsConfig   `yaml:"assets"`
	Phoenix  PhoenixConfig  `yaml:"phoenix"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// CacheConfig holds sizing for the in-process cache tiers. TTLs are fixed
// per tier (entity reads 15m, assembled exports 1h) and are deliberately not
// configurable.
type CacheConfig struct {
	Capacity  int `yaml:"capacity"   env:"CACHE_CAPACITY"   env-default:"100000"`
	NumShards int `yaml:"num_shards" env:"CACHE_NUM_SHARDS" env-default:"64"`
}

// AssetsConfig holds logo asset settings.
type AssetsConfig struct {
	// LogoHost is the asset-host prefix assembled exports use for the
	// fully qualified image URL, e.g. "https://s3.tosdr.org/logos".
	LogoHost string `yaml:"logo_host" env:"ASSETS_LOGO_HOST" env-required:"true"`

	// ThemeDir and Theme locate the themed logo directory probed for
	// per-service .svg/.png files.
	ThemeDir string `yaml:"theme_dir" env:"ASSETS_THEME_DIR" env-default:"themes"`
	Theme    string `yaml:"theme"     env:"ASSETS_THEME"     env-default:"crisp"`
}

// PhoenixConfig holds settings for the deprecated remote Phoenix API.
type PhoenixConfig struct {
	URL         string `yaml:"url"          env:"PHOENIX_URL"          env-default:"https://api.tosdr.org"`
	APIEndpoint string `yaml:"api_endpoint" env:"PHOENIX_API_ENDPOINT" env-default:"/v1"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
