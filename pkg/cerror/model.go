package cerror

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CustomError struct {
	error          `json:"-"`
	HttpStatusCode int             `json:"httpStatus"`
	Message        string          `json:"message"`
	LogMessage     string          `json:"-"`
	LogSeverity    zapcore.Level   `json:"-"`
	LogFields      []zapcore.Field `json:"-"`
}

func (cerr *CustomError) Error() string {
	return cerr.Message
}

func NewError(httpStatusCode int, message string, logFields ...zap.Field) *CustomError {
	return &CustomError{
		HttpStatusCode: httpStatusCode,
		Message:        message,
		LogMessage:     message,
		LogSeverity:    zapcore.ErrorLevel,
		LogFields:      logFields,
	}
}

func (cerr *CustomError) SetSeverity(severity zapcore.Level) *CustomError {
	cerr.LogSeverity = severity
	return cerr
}

func (cerr *CustomError) SetFields(logFields ...zap.Field) *CustomError {
	cerr.LogFields = logFields
	return cerr
}
