package cache

import (
	"testing"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"vendorportal/internal/config"
)

func TestRedis_KeyNamespace(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	assert.Equal(t, "vendorportal:company-details:v-1", NewRedisWithClient(client, "vendorportal").key("company-details:v-1"))
	assert.Equal(t, "document-presets", NewRedisWithClient(client, "").key("document-presets"))
}

func TestNewRedis_Validation(t *testing.T) {
	_, err := NewRedis(config.CacheConfig{Backend: "redis"})
	assert.EqualError(t, err, "redis address required")

	_, err = NewRedis(config.CacheConfig{Backend: "redis", RedisAddr: "127.0.0.1:1"})
	assert.ErrorContains(t, err, "redis ping")
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, "vendorportal:company-details:v-1", escapeGlob("vendorportal:company-details:v-1"))
	assert.Equal(t, `a\*b\?c\[d\]e\\f`, escapeGlob(`a*b?c[d]e\f`))
}
