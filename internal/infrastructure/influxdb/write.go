package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteReading mirrors an accepted sensor reading to InfluxDB.
//
// This is the primary method for recording telemetry accepted by the
// measurement service. The write is non-blocking; data is batched and
// sent asynchronously, and a disconnected client drops the point.
//
// Parameters:
//   - deviceID: Numeric device identifier
//   - readingType: Reading type ("temperatura" or "gas")
//   - value: The reading value
//   - timestamp: When the reading was taken
//
// Example:
//
//	client.WriteReading(1, "temperatura", 21.5, time.Now())
func (c *Client) WriteReading(deviceID int64, readingType string, value float64, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_readings",
		map[string]string{
			"device_id": strconv.FormatInt(deviceID, 10),
			"type":      readingType,
		},
		map[string]interface{}{
			"value": value,
		},
		timestamp,
	)

	c.writeAPI.WritePoint(point)
}
