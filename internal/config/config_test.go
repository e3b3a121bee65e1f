package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()

	if c.AppPort != "8080" {
		t.Errorf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.MySQLDB != "chama" {
		t.Errorf("MySQLDB = %q, want chama", c.MySQLDB)
	}
	if c.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q, want redis:6379", c.RedisAddr)
	}
	if c.IdempTTLSecs != 300 {
		t.Errorf("IdempTTLSecs = %d, want 300", c.IdempTTLSecs)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "600")

	c := Load()
	if c.AppPort != "9090" {
		t.Errorf("AppPort = %q, want 9090", c.AppPort)
	}
	if c.MySQLHost != "db.internal" {
		t.Errorf("MySQLHost = %q, want db.internal", c.MySQLHost)
	}
	if c.RedisDB != 2 {
		t.Errorf("RedisDB = %d, want 2", c.RedisDB)
	}
	if c.IdempTTLSecs != 600 {
		t.Errorf("IdempTTLSecs = %d, want 600", c.IdempTTLSecs)
	}
}

func TestValidate_BadPort(t *testing.T) {
	c := Load()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Error("expected error for invalid MYSQL_PORT")
	}

	c = Load()
	c.MySQLHost = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing MYSQL_HOST")
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("MYSQL_HOST", "127.0.0.1")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_DB", "chama_test")
	t.Setenv("MYSQL_USER", "app")
	t.Setenv("MYSQL_PASS", "secret")

	dsn := Load().MySQLDSN()
	if !strings.HasPrefix(dsn, "app:secret@tcp(127.0.0.1:3307)/chama_test?") {
		t.Errorf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("dsn missing parseTime: %q", dsn)
	}
}
