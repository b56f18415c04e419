package command

import (
	"errors"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"yard-monitor/internal/logger"
	pkgerrors "yard-monitor/pkg/errors"
	pkgmqtt "yard-monitor/pkg/mqtt"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type fakeSession struct {
	clientID string

	connectErr error
	publishErr error

	connected    bool
	published    bool
	disconnected bool

	topic   string
	payload string
	timeout time.Duration
}

func (s *fakeSession) Connect() error {
	if s.connectErr != nil {
		return s.connectErr
	}
	s.connected = true
	return nil
}

func (s *fakeSession) PublishWait(topic string, qos byte, retained bool, payload []byte, timeout time.Duration) error {
	s.published = true
	s.topic = topic
	s.payload = string(payload)
	s.timeout = timeout
	return s.publishErr
}

func (s *fakeSession) Disconnect() {
	s.disconnected = true
}

func newTestDispatcher(session *fakeSession) *Dispatcher {
	factory := func(clientID string) Session {
		session.clientID = clientID
		return session
	}
	return NewDispatcher(factory, "iot/devices/%s/comando", 1, 3*time.Second)
}

func TestDispatchDelivered(t *testing.T) {
	session := &fakeSession{}
	dispatcher := newTestDispatcher(session)

	if err := dispatcher.Dispatch("S1", TokenLEDGreen); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if session.topic != "iot/devices/S1/comando" {
		t.Errorf("topic = %q, want iot/devices/S1/comando", session.topic)
	}
	if session.payload != "led_verde" {
		t.Errorf("payload = %q, want led_verde", session.payload)
	}
	if session.timeout != 3*time.Second {
		t.Errorf("ack timeout = %v, want 3s", session.timeout)
	}
	if !session.disconnected {
		t.Error("session not torn down after successful dispatch")
	}
}

func TestDispatchAckTimeout(t *testing.T) {
	session := &fakeSession{publishErr: pkgmqtt.ErrPublishTimeout}
	dispatcher := newTestDispatcher(session)

	err := dispatcher.Dispatch("S1", TokenBuzzerAlert)
	if !errors.Is(err, pkgerrors.ErrCommandNotConfirmed) {
		t.Fatalf("Dispatch error = %v, want ErrCommandNotConfirmed", err)
	}
	if !session.disconnected {
		t.Error("session not torn down after ack timeout")
	}
}

func TestDispatchConnectFailure(t *testing.T) {
	session := &fakeSession{connectErr: errors.New("connection refused")}
	dispatcher := newTestDispatcher(session)

	err := dispatcher.Dispatch("S1", TokenLEDRed)
	if !errors.Is(err, pkgerrors.ErrBrokerUnavailable) {
		t.Fatalf("Dispatch error = %v, want ErrBrokerUnavailable", err)
	}
	if session.published {
		t.Error("publish attempted after failed connect")
	}
}

func TestDispatchInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		token   string
		wantErr error
	}{
		{name: "empty device code", code: "", token: TokenLEDOff, wantErr: pkgerrors.ErrEmptyDeviceCode},
		{name: "empty command", code: "S1", token: "", wantErr: pkgerrors.ErrEmptyCommand},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			session := &fakeSession{}
			dispatcher := newTestDispatcher(session)

			err := dispatcher.Dispatch(test.code, test.token)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Dispatch error = %v, want %v", err, test.wantErr)
			}
			if session.connected {
				t.Error("session opened for invalid input")
			}
		})
	}
}

func TestDispatchUsesFreshClientIdentity(t *testing.T) {
	first := &fakeSession{}
	second := &fakeSession{}
	sessions := []*fakeSession{first, second}

	i := 0
	factory := func(clientID string) Session {
		sessions[i].clientID = clientID
		session := sessions[i]
		i++
		return session
	}
	dispatcher := NewDispatcher(factory, "iot/devices/%s/comando", 1, time.Second)

	if err := dispatcher.Dispatch("S1", TokenLEDGreen); err != nil {
		t.Fatalf("first Dispatch: %v", err)
	}
	if err := dispatcher.Dispatch("S1", TokenLEDOff); err != nil {
		t.Fatalf("second Dispatch: %v", err)
	}

	if first.clientID == "" || first.clientID == second.clientID {
		t.Errorf("client identities not unique per dispatch: %q vs %q", first.clientID, second.clientID)
	}
}
