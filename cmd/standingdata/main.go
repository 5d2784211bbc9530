// Standing Data Service
//
// This is the main entry point for the standing data lookup service. It
// serves read-only searches over a sharded CSV tree of aviation reference
// data: aircraft, airlines, airports, routes, countries, model types,
// Mode-S code blocks and registration prefixes.
//
// The dataset is published out-of-band (git checkout, rsync, volume mount);
// the service only ever reads it, caching shards lazily in memory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/random-robbie/standing-data/internal/api"
	"github.com/random-robbie/standing-data/internal/dataset"
	"github.com/random-robbie/standing-data/internal/infrastructure/config"
	"github.com/random-robbie/standing-data/internal/infrastructure/influxdb"
	"github.com/random-robbie/standing-data/internal/infrastructure/logging"
	"github.com/random-robbie/standing-data/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// cacheStatsInterval is how often cache counters are pushed to InfluxDB.
const cacheStatsInterval = time.Minute

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting standing data service",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Bind the dataset store
	store := dataset.NewStore(cfg.Dataset.Root)
	store.SetLogger(log)

	// An unreadable dataset is not fatal at startup: the tree may be
	// mounted or synced after the service comes up. /health reports it.
	if err := store.HealthCheck(ctx); err != nil {
		log.Warn("dataset not readable at startup", "root", cfg.Dataset.Root, "error", err)
	} else {
		log.Info("dataset ready", "root", cfg.Dataset.Root)
	}

	// Connect to MQTT broker (optional refresh listener)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		if err := subscribeRefresh(cfg, mqttClient, store, log); err != nil {
			return fmt.Errorf("subscribing to refresh topic: %w", err)
		}
		log.Info("dataset refresh listener active", "topic", cfg.MQTT.RefreshTopic)
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional metrics sink)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		go cacheStatsLoop(ctx, store, influxClient)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start the API server
	server, err := api.New(api.Deps{
		Config:  cfg.API,
		Logger:  log,
		Store:   store,
		MQTT:    mqttClient,
		Influx:  influxClient,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server listening", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)

	log.Info("standing data service stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses STANDINGDATA_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("STANDINGDATA_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// subscribeRefresh wires the MQTT refresh topic to a cache reload.
//
// Any payload counts as a refresh signal; the dataset publisher owns the
// snapshot semantics, the service only swaps its cache.
func subscribeRefresh(cfg *config.Config, client *mqtt.Client, store *dataset.Store, log *logging.Logger) error {
	return client.Subscribe(cfg.MQTT.RefreshTopic, byte(cfg.MQTT.QoS),
		func(topic string, _ []byte) error {
			log.Info("dataset refresh notification received", "topic", topic)
			store.Reload()

			payload := fmt.Sprintf(`{"status":"reloaded","timestamp":"%s"}`,
				time.Now().UTC().Format(time.RFC3339))
			if err := client.PublishRetained(mqtt.Topics{}.DatasetStatus(), []byte(payload)); err != nil {
				log.Warn("failed to publish reload status", "error", err)
			}
			return nil
		})
}

// cacheStatsLoop periodically pushes shard cache counters to InfluxDB.
func cacheStatsLoop(ctx context.Context, store *dataset.Store, influx *influxdb.Client) {
	ticker := time.NewTicker(cacheStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := store.GetStats()
			influx.WriteCacheStats(stats.Shards, stats.Hits, stats.Misses, stats.SkippedRows)
		}
	}
}
