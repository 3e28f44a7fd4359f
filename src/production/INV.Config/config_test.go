package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("expected default port 9000, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.QueryTimeout != 10*time.Second {
		t.Errorf("expected default query timeout 10s, got %v", cfg.Database.QueryTimeout)
	}
	if cfg.MQTT.Topic != "scales/+/weight" {
		t.Errorf("expected default topic, got %q", cfg.MQTT.Topic)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.QueryTimeout != 3*time.Second {
		t.Errorf("expected query timeout 3s, got %v", cfg.Database.QueryTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "postgres", DBName: "inventory"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for postgres without DB_USER")
	}

	cfg = &Config{Database: DatabaseConfig{Driver: "sqlite"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sqlite without path")
	}

	cfg = &Config{Database: DatabaseConfig{Driver: "oracle"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver: "mysql", Host: "db", Port: 3306, User: "inv", Password: "secret", DBName: "inventory",
	}}
	want := "inv:secret@tcp(db:3306)/inventory?charset=utf8mb4&parseTime=true&loc=UTC"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("mysql DSN = %q, want %q", got, want)
	}

	cfg.Database.Driver = "postgres"
	cfg.Database.Port = 5432
	cfg.Database.SSLMode = "disable"
	want = "host=db port=5432 user=inv password=secret dbname=inventory sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("postgres DSN = %q, want %q", got, want)
	}

	cfg.Database.Driver = "sqlite"
	cfg.Database.SQLitePath = "/data/inventory.db"
	if got := cfg.GetDatabaseDSN(); got != "/data/inventory.db" {
		t.Errorf("sqlite DSN = %q", got)
	}
}

func TestGetMQTTBrokerURL(t *testing.T) {
	cfg := &IngestorConfig{MQTT: MQTTConfig{BrokerHost: "broker", BrokerPort: 1883}}
	if got := cfg.GetMQTTBrokerURL(); got != "tcp://broker:1883" {
		t.Errorf("broker URL = %q", got)
	}

	cfg.MQTT.UseTLS = true
	cfg.MQTT.BrokerPort = 8883
	if got := cfg.GetMQTTBrokerURL(); got != "tcps://broker:8883" {
		t.Errorf("TLS broker URL = %q", got)
	}
}
