package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nerrad567/airgrid-core/internal/infrastructure/logging"
	"github.com/nerrad567/airgrid-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/airgrid-core/internal/measurement"
)

// ingestTimeout bounds how long a single reading may take to persist.
const ingestTimeout = 10 * time.Second

// Bridge feeds readings published over MQTT into the measurement service.
//
// Devices publish the same JSON payload the HTTP API accepts ("tipo",
// "valor", optional "timestamp") to airgrid/readings/{deviceTag}. The
// bridge applies the exact same validation as HTTP ingest: invalid
// payloads are logged and dropped, never retried.
type Bridge struct {
	client  *mqtt.Client
	service *measurement.Service
	logger  *logging.Logger
}

// NewBridge creates an MQTT ingest bridge.
//
// Parameters:
//   - client: Connected MQTT client
//   - service: Measurement service readings are fed into
//   - logger: Structured logger
//
// Returns:
//   - *Bridge: Bridge ready to Start
func NewBridge(client *mqtt.Client, service *measurement.Service, logger *logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.Default()
	}
	return &Bridge{
		client:  client,
		service: service,
		logger:  logger.With("component", "ingest"),
	}
}

// Start subscribes to the device readings topic pattern.
//
// The subscription is tracked by the MQTT client and automatically
// restored on reconnect.
//
// Parameters:
//   - qos: QoS level for the subscription
//
// Returns:
//   - error: nil on success, otherwise the subscribe failure
func (b *Bridge) Start(qos byte) error {
	topic := mqtt.Topics{}.AllDeviceReadings()
	if err := b.client.Subscribe(topic, qos, b.handleReading); err != nil {
		return err
	}

	b.logger.Info("mqtt ingest bridge started", "topic", topic)
	return nil
}

// Stop unsubscribes from the device readings topic pattern.
//
// Returns:
//   - error: nil on success (an already-closed client is not an error)
func (b *Bridge) Stop() error {
	if !b.client.IsConnected() {
		return nil
	}
	return b.client.Unsubscribe(mqtt.Topics{}.AllDeviceReadings())
}

// handleReading processes one published reading.
//
// Decode and validation failures are logged and dropped; the broker
// never redelivers a rejected payload. Storage failures are logged as
// errors since they indicate the server, not the device, is unhealthy.
func (b *Bridge) handleReading(topic string, payload []byte) error {
	deviceTag := deviceTagFromTopic(topic)

	var raw measurement.RawReading
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		b.logger.Warn("dropping undecodable reading",
			"device", deviceTag,
			"error", err,
		)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	stored, err := b.service.Ingest(ctx, &raw)
	if err != nil {
		if measurement.IsValidationError(err) {
			b.logger.Warn("dropping invalid reading",
				"device", deviceTag,
				"error", err,
			)
			return nil
		}
		b.logger.Error("failed to persist reading",
			"device", deviceTag,
			"error", err,
		)
		return nil
	}

	b.logger.Debug("reading ingested via mqtt",
		"device", deviceTag,
		"id", stored.ID,
		"type", stored.Type,
	)
	return nil
}

// deviceTagFromTopic extracts the device tag from a readings topic.
func deviceTagFromTopic(topic string) string {
	return strings.TrimPrefix(topic, mqtt.TopicPrefixReadings+"/")
}
