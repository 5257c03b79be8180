package rabbitmq

// Logger — минимальный контракт логирования для этого пакета.
// Пакет ничего не знает о логгере приложения, адаптеры-"мосты"
// подключают его снаружи.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewNoopLogger возвращает логгер, который ничего не делает.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct{}

func (n *noopLogger) Debug(msg string, args ...interface{}) {}
func (n *noopLogger) Info(msg string, args ...interface{})  {}
func (n *noopLogger) Warn(msg string, args ...interface{})  {}
func (n *noopLogger) Error(msg string, args ...interface{}) {}
