package rabbitmq

import (
	"fmt"

	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/pkg/rabbitmq"
)

// loggerBridge адаптирует port.LoggerPort к интерфейсу логгера из pkg/rabbitmq.
type loggerBridge struct {
	logger port.LoggerPort
}

// NewLoggerBridge оборачивает LoggerPort для использования внутри pkg/rabbitmq.
func NewLoggerBridge(logger port.LoggerPort) rabbitmq.Logger {
	return &loggerBridge{logger: logger}
}

// argsToFields превращает чередующиеся пары ключ-значение в port.Fields.
func argsToFields(args []interface{}) port.Fields {
	fields := make(port.Fields, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		fields[key] = args[i+1]
	}
	return fields
}

func (b *loggerBridge) Debug(msg string, args ...interface{}) {
	b.logger.Debug(msg, argsToFields(args))
}

func (b *loggerBridge) Info(msg string, args ...interface{}) {
	b.logger.Info(msg, argsToFields(args))
}

func (b *loggerBridge) Warn(msg string, args ...interface{}) {
	b.logger.Warn(msg, argsToFields(args))
}

func (b *loggerBridge) Error(msg string, args ...interface{}) {
	b.logger.Error(msg, nil, argsToFields(args))
}
