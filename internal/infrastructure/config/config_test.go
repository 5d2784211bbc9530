package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
dataset:
  root: /srv/standing-data
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset.Root != "/srv/standing-data" {
		t.Errorf("Dataset.Root = %q, want /srv/standing-data", cfg.Dataset.Root)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want default 8080", cfg.API.Port)
	}
	if cfg.API.Timeouts.Read != 30 {
		t.Errorf("API.Timeouts.Read = %d, want default 30", cfg.API.Timeouts.Read)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
	if cfg.MQTT.Enabled {
		t.Error("MQTT.Enabled = true, want disabled by default")
	}
	if cfg.MQTT.RefreshTopic != "standingdata/dataset/refresh" {
		t.Errorf("MQTT.RefreshTopic = %q, want default refresh topic", cfg.MQTT.RefreshTopic)
	}
	if cfg.InfluxDB.BatchSize != 100 {
		t.Errorf("InfluxDB.BatchSize = %d, want default 100", cfg.InfluxDB.BatchSize)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
dataset:
  root: /data
api:
  host: 127.0.0.1
  port: 9090
  timeouts:
    read: 5
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want 127.0.0.1", cfg.API.Host)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
	if cfg.API.Timeouts.Read != 5 {
		t.Errorf("API.Timeouts.Read = %d, want 5", cfg.API.Timeouts.Read)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
dataset:
  root: /data
`)

	t.Setenv("STANDINGDATA_DATASET_ROOT", "/override/data")
	t.Setenv("STANDINGDATA_API_PORT", "8181")
	t.Setenv("STANDINGDATA_INFLUXDB_TOKEN", "secret-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset.Root != "/override/data" {
		t.Errorf("Dataset.Root = %q, want env override /override/data", cfg.Dataset.Root)
	}
	if cfg.API.Port != 8181 {
		t.Errorf("API.Port = %d, want env override 8181", cfg.API.Port)
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want env override", cfg.InfluxDB.Token)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() with missing file should return error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "dataset: [unclosed")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() with invalid YAML should return error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults with root",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing dataset root",
			mutate:  func(c *Config) { c.Dataset.Root = "" },
			wantErr: "dataset.root",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.API.Port = 70000 },
			wantErr: "api.port",
		},
		{
			name:    "invalid qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name: "mqtt enabled without topic",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.RefreshTopic = ""
			},
			wantErr: "refresh_topic",
		},
		{
			name: "influxdb enabled without url",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.Bucket = "metrics"
			},
			wantErr: "influxdb.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestTimeoutHelpers(t *testing.T) {
	cfg := defaultConfig()
	if cfg.GetReadTimeout().Seconds() != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30s", cfg.GetReadTimeout())
	}
	if cfg.GetIdleTimeout().Seconds() != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60s", cfg.GetIdleTimeout())
	}
}
