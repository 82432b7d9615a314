package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/notelog/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	assert.True(t, setupLogger(config.EnvLocal).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(config.EnvDev).Enabled(ctx, slog.LevelDebug))
	assert.False(t, setupLogger(config.EnvProd).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(config.EnvProd).Enabled(ctx, slog.LevelInfo))
}

func TestBuildServices_Memory(t *testing.T) {
	cfg := config.Config{
		Env:   config.EnvLocal,
		Auth:  config.AuthConfig{JWTSecret: "s", JWTTTL: time.Hour},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
	}

	svc, closeStore, err := buildServices(context.Background(), cfg, setupLogger(cfg.Env))
	require.NoError(t, err)
	defer closeStore()

	require.NotNil(t, svc.Auth)
	require.NotNil(t, svc.Notes)
	require.NotNil(t, svc.Todos)
	require.NotNil(t, svc.Contacts)
	require.NotNil(t, svc.CustomNotes)
}

func TestBuildServices_BadSecret(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}

	_, _, err := buildServices(context.Background(), cfg, setupLogger(config.EnvProd))
	require.Error(t, err)
}
