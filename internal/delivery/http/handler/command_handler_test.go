package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	pkgerrors "yard-monitor/pkg/errors"
)

type fakeDispatcher struct {
	err error

	code  string
	token string
}

func (d *fakeDispatcher) Dispatch(deviceCode, token string) error {
	d.code = deviceCode
	d.token = token
	return d.err
}

func newCommandRouter(dispatcher *fakeDispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCommandHandler(dispatcher).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestDispatchCommand(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		dispatchErr error
		wantStatus  int
	}{
		{
			name:       "delivered",
			body:       `{"command":"led_verde"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing command field",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "broker unreachable",
			body:        `{"command":"1"}`,
			dispatchErr: pkgerrors.ErrBrokerUnavailable,
			wantStatus:  http.StatusBadGateway,
		},
		{
			name:        "ack timeout",
			body:        `{"command":"led_off"}`,
			dispatchErr: pkgerrors.ErrCommandNotConfirmed,
			wantStatus:  http.StatusGatewayTimeout,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dispatcher := &fakeDispatcher{err: test.dispatchErr}
			router := newCommandRouter(dispatcher)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/devices/S1/command", strings.NewReader(test.body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", recorder.Code, test.wantStatus, recorder.Body.String())
			}
			if test.wantStatus == http.StatusOK && dispatcher.code != "S1" {
				t.Errorf("dispatched device = %q, want S1", dispatcher.code)
			}
		})
	}
}
