package karmalog

import "go.uber.org/zap"

// Sink mirrors recorded entries somewhere external to the log. Write must
// not block the caller.
type Sink interface {
	Write(e *Entry)
	Close()
}

// LogSink emits entries as structured log lines, the local-development
// counterpart to a real event store.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink writing to the given logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(e *Entry) {
	s.logger.Info("karma_entry",
		zap.String("entry_id", e.ID),
		zap.String("action_id", e.Action.ID),
		zap.String("agent", e.Action.Agent),
		zap.String("parent_id", e.ParentID),
		zap.String("consequence", e.Consequence),
		zap.Time("recorded_at", e.RecordedAt),
	)
}

func (s *LogSink) Close() {}
