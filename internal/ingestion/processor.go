package ingestion

import (
	"context"
	"time"

	"go.uber.org/zap"

	"yard-monitor/internal/domain/device"
	"yard-monitor/internal/logger"
)

// StatusStore is the write side of the device state store.
type StatusStore interface {
	ApplyStatusUpdate(ctx context.Context, code, status string, distance *float64) (int64, error)
	ClearVehicleAssignment(ctx context.Context, code string) (int64, error)
}

const defaultStoreTimeout = 5 * time.Second

// Processor applies one decoded status report at a time. It is stateless
// across messages: handling runs synchronously on the MQTT callback loop,
// so two reports are never applied concurrently.
type Processor struct {
	store        StatusStore
	storeTimeout time.Duration
	metrics      *MetricsTracker
}

func NewProcessor(store StatusStore) *Processor {
	return &Processor{
		store:        store,
		storeTimeout: defaultStoreTimeout,
		metrics:      NewMetricsTracker(),
	}
}

// HandleStatusMessage is the per-message entry point. Every failure mode is
// recovered here: a bad payload or a failed write is logged and dropped,
// and the receive loop keeps consuming subsequent messages.
func (p *Processor) HandleStatusMessage(payload []byte) {
	p.metrics.Update(func(m *IngestMetrics) {
		m.ReportsReceived++
	})

	report, err := ParseStatusReport(payload)
	if err != nil {
		logger.Warn("dropping malformed status payload", zap.Error(err))
		p.metrics.Update(func(m *IngestMetrics) {
			m.ReportsRejected++
		})
		return
	}

	if err := ValidateStatusReport(report); err != nil {
		logger.Warn("dropping status report without device_code", zap.Error(err))
		p.metrics.Update(func(m *IngestMetrics) {
			m.ReportsRejected++
		})
		return
	}

	if err := p.applyReport(report); err != nil {
		logger.Error("failed to apply status report",
			zap.String("device_code", report.DeviceCode),
			zap.Error(err),
		)
		p.metrics.Update(func(m *IngestMetrics) {
			m.ReportsFailed++
		})
	}
}

// applyReport runs the state transition for one report: the status write
// first, then, if and only if the applied status is available, the vehicle
// assignment clear. The clear is attempted regardless of whether a vehicle
// was assigned, so a stale reference left by an earlier crash heals on the
// next available report.
func (p *Processor) applyReport(report *StatusReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.storeTimeout)
	defer cancel()

	rows, err := p.store.ApplyStatusUpdate(ctx, report.DeviceCode, report.Status, report.Distance)
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.Debug("status report for unprovisioned device",
			zap.String("device_code", report.DeviceCode),
		)
	}

	cleared := int64(0)
	if device.SpotStatus(report.Status) == device.StatusAvailable {
		cleared, err = p.store.ClearVehicleAssignment(ctx, report.DeviceCode)
		if err != nil {
			return err
		}
	}

	p.metrics.Update(func(m *IngestMetrics) {
		m.ReportsApplied++
		if cleared > 0 {
			m.AssignmentsCleared++
		}
		m.LastProcessedAt = time.Now()
	})

	logger.Info("device status updated",
		zap.String("device_code", report.DeviceCode),
		zap.String("status", report.Status),
	)

	return nil
}

// Metrics returns a copy of the current ingest counters.
func (p *Processor) Metrics() IngestMetrics {
	return p.metrics.Snapshot()
}
