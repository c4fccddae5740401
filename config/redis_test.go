package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_NoAddrConfigured(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	assert.Nil(t, NewRedisClient())
}

func TestNewRedisClient_UnreachableServer(t *testing.T) {
	// nothing listens on port 1; the failed ping closes the client and
	// disables the cache instead of returning a dead handle
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
	assert.Nil(t, NewRedisClient())
}
