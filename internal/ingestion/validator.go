package ingestion

import "fmt"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

// ValidateStatusReport checks that a decoded report can be applied. Only
// the device code is mandatory: a report without it cannot be keyed to any
// row and is dropped before any store write is attempted. Status and
// distance are deliberately not validated here.
func ValidateStatusReport(report *StatusReport) error {
	if report.DeviceCode == "" {
		return &ValidationError{Field: "device_code", Message: "device_code is required"}
	}

	return nil
}
