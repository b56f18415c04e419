package command

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yard-monitor/internal/config"
	"yard-monitor/internal/logger"
	pkgerrors "yard-monitor/pkg/errors"
	pkgmqtt "yard-monitor/pkg/mqtt"
)

// Command tokens understood by the device firmware. The dispatcher accepts
// any non-empty token; these constants document the operator surface.
const (
	TokenBuzzerAlert = "1"
	TokenLEDGreen    = "led_verde"
	TokenLEDRed      = "led_vermelho"
	TokenLEDOff      = "led_off"
)

// Session is one transient broker connection used for a single command
// publish. pkg/mqtt's Client satisfies it.
type Session interface {
	Connect() error
	PublishWait(topic string, qos byte, retained bool, payload []byte, timeout time.Duration) error
	Disconnect()
}

// SessionFactory builds a fresh session with the given client identity.
type SessionFactory func(clientID string) Session

// Dispatcher delivers operator commands to individual devices. Every
// dispatch opens its own connection under a unique client id so it never
// collides with the listener's broker identity, and tears it down on every
// exit path. At most one publish is attempted per invocation; retrying is
// the caller's decision.
type Dispatcher struct {
	newSession     SessionFactory
	topicPattern   string
	qos            byte
	publishTimeout time.Duration
}

func NewDispatcher(newSession SessionFactory, topicPattern string, qos byte, publishTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		newSession:     newSession,
		topicPattern:   topicPattern,
		qos:            qos,
		publishTimeout: publishTimeout,
	}
}

// NewDispatcherFromConfig wires a dispatcher to real broker sessions.
func NewDispatcherFromConfig(cfg *config.MQTTConfig) *Dispatcher {
	factory := func(clientID string) Session {
		return pkgmqtt.NewClient(&pkgmqtt.Config{
			Broker:         cfg.Broker,
			ClientID:       clientID,
			Username:       cfg.Username,
			Password:       cfg.Password,
			CleanSession:   true,
			KeepAlive:      cfg.KeepAlive,
			ConnectTimeout: cfg.ConnectTimeout,
		})
	}

	return NewDispatcher(factory, cfg.CommandTopicPattern, byte(cfg.QoS), time.Duration(cfg.PublishTimeout)*time.Second)
}

// Dispatch publishes one command to the device's command topic and waits,
// bounded, for broker acknowledgment. A nil return means delivered.
func (d *Dispatcher) Dispatch(deviceCode, token string) error {
	if deviceCode == "" {
		return pkgerrors.ErrEmptyDeviceCode
	}
	if token == "" {
		return pkgerrors.ErrEmptyCommand
	}

	topic := fmt.Sprintf(d.topicPattern, deviceCode)
	clientID := "yard-cmd-" + uuid.NewString()

	session := d.newSession(clientID)
	if err := session.Connect(); err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrBrokerUnavailable, err)
	}
	// Teardown must never mask the publish result already computed.
	defer session.Disconnect()

	if err := session.PublishWait(topic, d.qos, false, []byte(token), d.publishTimeout); err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrCommandNotConfirmed, err)
	}

	logger.Info("command delivered",
		zap.String("device_code", deviceCode),
		zap.String("command", token),
		zap.String("topic", topic),
	)

	return nil
}
