package ingestion

import "testing"

func TestValidateStatusReport(t *testing.T) {
	tests := []struct {
		name    string
		report  StatusReport
		wantErr bool
	}{
		{
			name:   "complete report",
			report: StatusReport{DeviceCode: "S1", Status: "occupied", Distance: floatPtr(10)},
		},
		{
			name:   "status and distance are optional",
			report: StatusReport{DeviceCode: "S1"},
		},
		{
			name:    "missing device code",
			report:  StatusReport{Status: "available"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateStatusReport(&test.report)
			if test.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !test.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
