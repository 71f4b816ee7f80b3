package utils

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestCheckStoresReportsUnreachableStores(t *testing.T) {
	down := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	defer down.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := checkStores(ctx, down, down, nil)

	assert.False(t, status.AuthCache)
	assert.False(t, status.ResetCache)
	assert.False(t, status.Mongo)
	assert.WithinDuration(t, time.Now(), status.CheckedAt, time.Minute)
}

func TestHealthStatusSnapshot(t *testing.T) {
	want := HealthStatus{
		AuthCache:  true,
		ResetCache: true,
		Mongo:      true,
		CheckedAt:  time.Now(),
	}
	setHealthStatus(want)

	assert.Equal(t, want, GetHealthStatus())
}
