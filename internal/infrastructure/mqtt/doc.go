// Package mqtt provides MQTT client connectivity for AirGrid Core.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// AirGrid uses MQTT as an alternative ingest transport: field devices
// publish sensor readings to the broker, and the ingest bridge
// (internal/ingest) subscribes and feeds them through the same
// measurement service the HTTP API uses.
//
//	Sensor Devices → MQTT Broker → AirGrid Core
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to readings from every device
//	err = client.Subscribe(mqtt.Topics{}.AllDeviceReadings(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish a reading (device side / testing)
//	topic := mqtt.Topics{}.DeviceReadings("greenhouse-01")
//	client.Publish(topic, []byte(`{"tipo":"gas","valor":412}`), 1, false)
package mqtt
