package port

// Fields - структурированные данные для лога.
type Fields map[string]interface{}

// LoggerPort абстрагирует ядро от конкретной реализации логгера.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields возвращает логгер с добавленным контекстом (trace_id, component, ...)
	WithFields(fields Fields) LoggerPort
}
