package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"yard-monitor/internal/logger"
	pkgmqtt "yard-monitor/pkg/mqtt"
)

// MQTTIngestionConfig describes the status topic and connection parameters.
type MQTTIngestionConfig struct {
	ClientConfig *pkgmqtt.Config
	StatusTopic  string
	QoS          byte
}

// MQTTIngestionClient wires device status messages into the processor. It
// owns the listener's single long-lived broker connection.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu      sync.Mutex
	started bool
}

// NewMQTTIngestionClient builds a new MQTT client for ingestion.
func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if cfg.StatusTopic == "" {
		return nil, errors.New("status topic is required")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	client := pkgmqtt.NewClient(cfg.ClientConfig)
	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    client,
		processor: processor,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the status topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.StatusTopic, c.cfg.QoS, c.handleStatusMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.StatusTopic, err)
	}

	logger.Info("listening for device status messages",
		zap.String("topic", c.cfg.StatusTopic),
		zap.Uint8("qos", c.cfg.QoS),
	)

	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.StatusTopic); err != nil {
		logger.Warn("failed to unsubscribe from status topic", zap.Error(err))
	}

	c.client.Disconnect()
	c.started = false
}

func (c *MQTTIngestionClient) handleStatusMessage(_ string, payload []byte) {
	c.processor.HandleStatusMessage(payload)
}
