package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("SANITY_PROJECT_ID", "proj123")
	t.Setenv("SANITY_SESSION_SECRET", "session-secret")
	t.Setenv("SANITY_DATASET", "")
	t.Setenv("SANITY_API_VERSION", "")
	t.Setenv("PORT", "")
	t.Setenv("SANITY_VIEWER_TOKEN", "")
	t.Setenv("PREVIEW_SECRET", "")
	t.Setenv("SANITY_USE_CDN", "")
}

func TestLoad_RequiresProjectID(t *testing.T) {
	setRequired(t)
	t.Setenv("SANITY_PROJECT_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SANITY_PROJECT_ID")
}

func TestLoad_RequiresSessionSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("SANITY_SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SANITY_SESSION_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Dataset)
	assert.Equal(t, "v2024-01-01", cfg.APIVersion)
	assert.Equal(t, "3000", cfg.Port)
	assert.False(t, cfg.UseCDN)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SANITY_DATASET", "staging")
	t.Setenv("PORT", "8080")
	t.Setenv("SANITY_USE_CDN", "true")
	t.Setenv("SANITY_VIEWER_TOKEN", "viewer-token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Dataset)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.UseCDN)
	assert.Equal(t, "viewer-token", cfg.ViewerToken)
}
