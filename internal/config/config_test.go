package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_STATS_TTL", "not-a-duration")
	t.Setenv("LOG_MAX_BACKUPS", "3")
	t.Setenv("ADMIN_USERNAMES", "root, ops")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 15*time.Second, cfg.Redis.StatsTTL)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxImageBytes)
	assert.Equal(t, []string{"root", "ops"}, cfg.AdminUsernames)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", d.DSN())
}
