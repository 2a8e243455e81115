// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the server refuses to start.
package config

import (
	"fmt"
	"os"
)

// Config holds all runtime configuration for the portfolio server.
type Config struct {
	Port          string
	ProjectID     string // content store project
	Dataset       string
	APIVersion    string // e.g. "v2024-01-01"
	ViewerToken   string // required for draft reads
	SessionSecret string // signs the preview cookie
	PreviewSecret string // shared secret checked by the enable endpoint
	UseCDN        bool
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	projectID := os.Getenv("SANITY_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("SANITY_PROJECT_ID is required")
	}

	sessionSecret := os.Getenv("SANITY_SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SANITY_SESSION_SECRET is required")
	}

	dataset := os.Getenv("SANITY_DATASET")
	if dataset == "" {
		dataset = "production"
	}

	apiVersion := os.Getenv("SANITY_API_VERSION")
	if apiVersion == "" {
		apiVersion = "v2024-01-01"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	return &Config{
		Port:          port,
		ProjectID:     projectID,
		Dataset:       dataset,
		APIVersion:    apiVersion,
		ViewerToken:   os.Getenv("SANITY_VIEWER_TOKEN"),
		SessionSecret: sessionSecret,
		PreviewSecret: os.Getenv("PREVIEW_SECRET"),
		UseCDN:        os.Getenv("SANITY_USE_CDN") == "true",
	}, nil
}
