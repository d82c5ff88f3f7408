// AirGrid Core - Environmental Sensor Platform
//
// This is the main entry point for the AirGrid Core application.
// AirGrid collects temperature and gas concentration readings from a
// fleet of sensor devices over HTTP and MQTT, persists them in SQLite,
// and serves query, statistics, and maintenance endpoints.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/airgrid-core/migrations"

	"github.com/nerrad567/airgrid-core/internal/api"
	"github.com/nerrad567/airgrid-core/internal/infrastructure/config"
	"github.com/nerrad567/airgrid-core/internal/infrastructure/database"
	"github.com/nerrad567/airgrid-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/airgrid-core/internal/infrastructure/logging"
	"github.com/nerrad567/airgrid-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/airgrid-core/internal/ingest"
	"github.com/nerrad567/airgrid-core/internal/measurement"
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
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting AirGrid Core",
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

	// Open database
	db, err := database.Open(database.Config{
		Path:         cfg.Database.Path,
		WALMode:      cfg.Database.WALMode,
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Connect to InfluxDB (optional mirror of accepted readings)
	var influxClient *influxdb.Client
	var mirror measurement.ReadingMirror
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
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		mirror = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build the measurement service over the SQLite store
	repo := measurement.NewSQLiteRepository(db.DB)
	service := measurement.NewService(repo, mirror, log)

	// Connect to MQTT broker and start the ingest bridge (optional)
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

		bridge := ingest.NewBridge(mqttClient, service, log)
		if startErr := bridge.Start(byte(cfg.MQTT.QoS)); startErr != nil {
			return fmt.Errorf("starting ingest bridge: %w", startErr)
		}
		defer func() {
			log.Info("stopping ingest bridge")
			if stopErr := bridge.Stop(); stopErr != nil {
				log.Error("error stopping ingest bridge", "error", stopErr)
			}
		}()
	} else {
		log.Info("MQTT ingest disabled")
	}

	// Start the HTTP API server
	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		Security: cfg.Security,
		Logger:   log,
		Service:  service,
		DB:       db,
		MQTT:     mqttClient,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	// Start the retention sweeper (optional)
	if cfg.Retention.Enabled {
		go runRetention(ctx, cfg, service, log)
		log.Info("retention sweeper started",
			"age_days", cfg.Retention.AgeDays,
			"interval_hours", cfg.Retention.IntervalHours,
		)
	} else {
		log.Info("retention sweeper disabled")
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. Ingest bridge + MQTT (if enabled)
	// 3. InfluxDB (if enabled)
	// 4. Database

	log.Info("AirGrid Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses AIRGRID_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("AIRGRID_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// runRetention purges measurements older than the configured age on a
// fixed interval until the context is cancelled.
//
// One sweep runs immediately on startup so a long-stopped instance
// catches up without waiting a full interval.
func runRetention(ctx context.Context, cfg *config.Config, service *measurement.Service, log *logging.Logger) {
	sweep := func() {
		sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		result, err := service.Purge(sweepCtx, cfg.Retention.AgeDays)
		if err != nil {
			log.Error("retention sweep failed", "error", err)
			return
		}
		log.Info("retention sweep complete",
			"removed", result.Removed,
			"cutoff", result.Cutoff,
		)
	}

	sweep()

	ticker := time.NewTicker(cfg.RetentionInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
