package mqtt

import "fmt"

// Topic prefixes for the AirGrid MQTT namespace.
//
// All topics use the flat scheme: airgrid/{category}/{identifier}.
const (
	// TopicPrefix is the base for all AirGrid topics.
	TopicPrefix = "airgrid"

	// TopicPrefixReadings is the base for device reading publications.
	TopicPrefixReadings = "airgrid/readings"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "airgrid/system"
)

// Topics provides builders for AirGrid MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	readingTopic := topics.DeviceReadings("greenhouse-01")
//	// Returns: "airgrid/readings/greenhouse-01"
type Topics struct{}

// =============================================================================
// Reading Topics
// =============================================================================

// DeviceReadings returns the topic a device publishes its readings to.
//
// Example: airgrid/readings/greenhouse-01
func (Topics) DeviceReadings(deviceTag string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixReadings, deviceTag)
}

// AllDeviceReadings returns a pattern matching readings from every device.
//
// Pattern: airgrid/readings/+
func (Topics) AllDeviceReadings() string {
	return fmt.Sprintf("%s/+", TopicPrefixReadings)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the system status topic.
//
// Example: airgrid/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// SystemShutdown returns the shutdown signal topic.
//
// Example: airgrid/system/shutdown
func (Topics) SystemShutdown() string {
	return fmt.Sprintf("%s/shutdown", TopicPrefixSystem)
}

// AllTopics returns a pattern matching all AirGrid topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: airgrid/#
func (Topics) AllTopics() string {
	return "airgrid/#"
}
