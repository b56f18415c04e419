package ingestion

import (
	"encoding/json"
	"fmt"
)

// StatusReport is the decoded payload of one telemetry message published on
// the device status topic. It is consumed immediately by the processor and
// never buffered or retried.
//
// The wire field for the distance reading is "distancia"; that is what the
// sensor firmware sends.
type StatusReport struct {
	DeviceCode string   `json:"device_code"`
	Status     string   `json:"status"`
	Distance   *float64 `json:"distancia"`
}

// ParseStatusReport parses a JSON payload into a StatusReport. A syntax
// error is returned to the caller and must never crash the receive loop.
// Unknown or missing status values are passed through unchanged; the store
// write layer is the final authority on legal values.
func ParseStatusReport(payload []byte) (*StatusReport, error) {
	var report StatusReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	return &report, nil
}
