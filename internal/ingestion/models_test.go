package ingestion

import "testing"

func TestParseStatusReport(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantErr      bool
		wantCode     string
		wantStatus   string
		wantDistance *float64
	}{
		{
			name:         "occupied report with distance",
			payload:      `{"device_code":"S1","status":"occupied","distancia":12.4}`,
			wantCode:     "S1",
			wantStatus:   "occupied",
			wantDistance: floatPtr(12.4),
		},
		{
			name:       "available report without distance",
			payload:    `{"device_code":"S2","status":"available"}`,
			wantCode:   "S2",
			wantStatus: "available",
		},
		{
			name:       "unknown status value passes through",
			payload:    `{"device_code":"S3","status":"maintenance"}`,
			wantCode:   "S3",
			wantStatus: "maintenance",
		},
		{
			name:     "missing status decodes to empty",
			payload:  `{"device_code":"S4"}`,
			wantCode: "S4",
		},
		{
			name:    "malformed json",
			payload: `{not valid json`,
			wantErr: true,
		},
		{
			name:    "empty payload",
			payload: ``,
			wantErr: true,
		},
		{
			name:    "json scalar instead of object",
			payload: `42`,
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report, err := ParseStatusReport([]byte(test.payload))
			if test.wantErr {
				if err == nil {
					t.Fatalf("ParseStatusReport(%q): expected error, got %+v", test.payload, report)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatusReport(%q): %v", test.payload, err)
			}

			if report.DeviceCode != test.wantCode {
				t.Errorf("DeviceCode = %q, want %q", report.DeviceCode, test.wantCode)
			}
			if report.Status != test.wantStatus {
				t.Errorf("Status = %q, want %q", report.Status, test.wantStatus)
			}
			switch {
			case test.wantDistance == nil && report.Distance != nil:
				t.Errorf("Distance = %v, want nil", *report.Distance)
			case test.wantDistance != nil && report.Distance == nil:
				t.Errorf("Distance = nil, want %v", *test.wantDistance)
			case test.wantDistance != nil && *report.Distance != *test.wantDistance:
				t.Errorf("Distance = %v, want %v", *report.Distance, *test.wantDistance)
			}
		})
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
