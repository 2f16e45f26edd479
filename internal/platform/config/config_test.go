// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shipdoc/internal/platform/config"
)

/*
TestLoad_Defaults verifies required variables and default values.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/shipdoc")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 5*time.Minute, cfg.TypesCacheTTL)
	assert.False(t, cfg.HasObjectStore())
	assert.Equal(t, 10, cfg.RedisPoolSize)
}

/*
TestLoad_MissingRequired fails fast when the database URL is absent.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestConfig_AllowedOrigins splits and trims the comma-separated origin list.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " https://docs.example.com, ,https://admin.example.com"}
	assert.Equal(t, []string{"https://docs.example.com", "https://admin.example.com"}, cfg.AllowedOrigins())
	assert.Empty(t, (&config.Config{}).AllowedOrigins())
}
