package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	ServeRESTAddress string `envconfig:"serve_rest_address" default:":8000"`
	DatabaseDSN      string `envconfig:"database_dsn" default:"storefront:storefront@tcp(localhost:3306)/storefront?parseTime=true"`

	// Demo credentials, override in any real deployment.
	AdminEmail    string `envconfig:"admin_email" default:"admin@admin.in"`
	AdminPassword string `envconfig:"admin_password" default:"Admin"`

	RateLimitWindow      time.Duration `envconfig:"rate_limit_window" default:"10s"`
	RateLimitMaxRequests int           `envconfig:"rate_limit_max_requests" default:"50"`
}

func Parse(prefix string) (*Config, error) {
	c := new(Config)
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return c, nil
}
