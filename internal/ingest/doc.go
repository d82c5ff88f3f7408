// Package ingest bridges MQTT-published sensor readings into the
// measurement service.
//
// Devices publish the same JSON payload the HTTP API accepts to
// airgrid/readings/{deviceTag}. Validation is identical on both
// transports; the bridge simply moves bytes from the broker into
// the service and logs what it drops.
package ingest
