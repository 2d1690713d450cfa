package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/groundtruth/pkg/formatting"
	"github.com/JaimeStill/groundtruth/pkg/middleware"
	"github.com/JaimeStill/groundtruth/pkg/openapi"
	"github.com/JaimeStill/groundtruth/pkg/pagination"
)

const (
	EnvAPIMaxBodySize      = "GROUNDTRUTH_API_MAX_BODY_SIZE"
	EnvAPIDefaultAnnotator = "GROUNDTRUTH_API_DEFAULT_ANNOTATOR"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "GROUNDTRUTH_CORS_ENABLED",
	Origins:          "GROUNDTRUTH_CORS_ORIGINS",
	AllowedMethods:   "GROUNDTRUTH_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "GROUNDTRUTH_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "GROUNDTRUTH_CORS_EXPOSED_HEADERS",
	AllowCredentials: "GROUNDTRUTH_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "GROUNDTRUTH_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "GROUNDTRUTH_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "GROUNDTRUTH_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "GROUNDTRUTH_OPENAPI_TITLE",
	Description: "GROUNDTRUTH_OPENAPI_DESCRIPTION",
	Servers:     "GROUNDTRUTH_OPENAPI_SERVERS",
}

// APIConfig holds request limits, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	MaxBodySize      string                `toml:"max_body_size"`
	DefaultAnnotator string                `toml:"default_annotator"`
	CORS             middleware.CORSConfig `toml:"cors"`
	Pagination       pagination.Config     `toml:"pagination"`
	OpenAPI          openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024 // 1MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.DefaultAnnotator != "" {
		c.DefaultAnnotator = overlay.DefaultAnnotator
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.DefaultAnnotator == "" {
		c.DefaultAnnotator = "anonymous"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
	if v := os.Getenv(EnvAPIDefaultAnnotator); v != "" {
		c.DefaultAnnotator = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	return nil
}
