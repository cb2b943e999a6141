package main

import (
	"context"
	"testing"
	"time"

	"github.com/fullstackdevx/fso-part4/internal/logger"
	"github.com/fullstackdevx/fso-part4/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	return &config.Config{
		Port:                "0",
		Env:                 "test",
		MongoURI:            "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200",
		MongoDatabase:       "bloglist_test",
		MongoConnectTimeout: 500 * time.Millisecond,
		Secret:              "secret",
		TokenTTL:            time.Hour,
		BcryptCost:          4,
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Secret = ""

	err := run(context.Background(), cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRunReportsUnreachableDatabase(t *testing.T) {
	err := run(context.Background(), validConfig(), logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize database")
}
