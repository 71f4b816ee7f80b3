package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"meetcal/config"
)

// HealthStatus is the latest snapshot of the stores the service depends on:
// the auth-token cache, the password-reset cache, and the session database.
type HealthStatus struct {
	AuthCache  bool      `json:"authCache"`
	ResetCache bool      `json:"resetCache"`
	Mongo      bool      `json:"mongo"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(status HealthStatus) {
	healthMu.Lock()
	currentHealth = status
	healthMu.Unlock()
}

// checkStores pings each store once and reports which ones answered.
func checkStores(ctx context.Context, authCache, resetCache *redis.Client, mongoClient *mongo.Client) HealthStatus {
	status := HealthStatus{CheckedAt: time.Now()}

	if err := authCache.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("health: auth cache ping failed", zap.Error(err))
	} else {
		status.AuthCache = true
	}

	if err := resetCache.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("health: reset cache ping failed", zap.Error(err))
	} else {
		status.ResetCache = true
	}

	if mongoClient == nil {
		GetLogger().Warn("health: mongo client not initialized")
	} else if err := mongoClient.Ping(ctx, nil); err != nil {
		GetLogger().Warn("health: mongo ping failed", zap.Error(err))
	} else {
		status.Mongo = true
	}

	return status
}

// StartHealthMonitor checks the auth cache, reset cache, and Mongo on the
// configured interval and keeps the latest snapshot for the health endpoint.
func StartHealthMonitor(authCache, resetCache *redis.Client, mongoClient *mongo.Client) {
	interval := time.Duration(config.AppConfig.HealthCheckSeconds) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			setHealthStatus(checkStores(ctx, authCache, resetCache, mongoClient))
			cancel()
		}
	}()
}
