package config

import (
	"errors"
	"strings"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Mongo_uri      string `mapstructure:"MONGO_URI"`
	Mongo_database string `mapstructure:"MONGO_DATABASE"`
	Jwt_secret     string `mapstructure:"JWT_SECRET"`
	Store_driver   string `mapstructure:"STORE_DRIVER"`
	Auth_required  bool   `mapstructure:"AUTH_REQUIRED"`
	Cors_origins   string `mapstructure:"CORS_ORIGINS"`
	S3_bucket      string `mapstructure:"S3_BUCKET"`
	S3_region      string `mapstructure:"S3_REGION"`
	S3_endpoint    string `mapstructure:"S3_ENDPOINT"`
	S3_public_url  string `mapstructure:"S3_PUBLIC_URL"`
}

func (c *Config) Validate() error {
	if c.Jwt_secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch c.Store_driver {
	case StoreDriverMongo:
		if c.Mongo_uri == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER is mongo")
		}
	case StoreDriverMemory:
	default:
		return errors.New("STORE_DRIVER must be mongo or memory")
	}

	return nil
}

func (c *Config) AllowedOrigins() []string {
	origins := []string{}

	for _, o := range strings.Split(c.Cors_origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	if len(origins) == 0 {
		return []string{"*"}
	}

	return origins
}
