package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized access")

	ErrDeviceNotFound = errors.New("device not found")
	ErrYardNotFound   = errors.New("yard not found")

	ErrEmptyDeviceCode = errors.New("device code must not be empty")
	ErrEmptyCommand    = errors.New("command must not be empty")

	ErrBrokerUnavailable   = errors.New("cannot reach MQTT broker")
	ErrCommandNotConfirmed = errors.New("command delivery not confirmed by broker")

	ErrInvalidInput = errors.New("invalid input data")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
