package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/flames/pkg/middleware"
	"github.com/JaimeStill/flames/pkg/pagination"
)

const EnvAPIBasePath = "FLAMES_API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "FLAMES_CORS_ENABLED",
	Origins:          "FLAMES_CORS_ORIGINS",
	AllowedMethods:   "FLAMES_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "FLAMES_CORS_ALLOWED_HEADERS",
	AllowCredentials: "FLAMES_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "FLAMES_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "FLAMES_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "FLAMES_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds the JSON API mount point, CORS policy, and paging limits.
// Pagination also bounds the HTML history page.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}

	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 || c.BasePath == "/" {
		return fmt.Errorf("base_path must be a single-level path like /api: %q", c.BasePath)
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}
