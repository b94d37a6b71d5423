package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType defines the category of an audit event.
type EventType string

const (
	EventValidation      EventType = "validation"
	EventValidationError EventType = "validation_error"
	EventPolicyDenied    EventType = "policy_denied"
	EventWorkoutRecorded EventType = "workout_recorded"
	EventToolCall        EventType = "tool_call"
	EventAgentResponse   EventType = "agent_response"
	EventHeartbeat       EventType = "heartbeat"
)

// Event is a single audit log entry. Data is redacted before it is
// written to the sink.
type Event struct {
	Type          EventType `json:"type"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Data          any       `json:"data,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// AuditLogger appends redacted JSON events to a file. Safe for
// concurrent use.
type AuditLogger struct {
	mu      sync.Mutex
	path    string
	maxSize int64
	log     *zap.SugaredLogger
}

func NewAuditLogger(path string, log *zap.SugaredLogger) *AuditLogger {
	return &AuditLogger{
		path:    path,
		maxSize: 10 * 1024 * 1024, // 10MB
		log:     log,
	}
}

// Log writes one event. Sink failures are logged and swallowed; audit
// logging must never fail a request.
func (l *AuditLogger) Log(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Data = Redact(evt.Data)

	data, err := json.Marshal(evt)
	if err != nil {
		l.log.Errorw("failed to marshal audit event", "error", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeLine(data)
}

func (l *AuditLogger) writeLine(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		l.log.Errorw("failed to create audit log directory", "error", err)
		return
	}

	info, err := os.Stat(l.path)
	if err == nil && info.Size() > l.maxSize {
		l.rotate()
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.log.Errorw("failed to open audit log", "error", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		l.log.Errorw("failed to write audit event", "error", err)
	}
}

func (l *AuditLogger) rotate() {
	// Simple rotation: keep one .old file
	oldPath := l.path + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.path, oldPath)
}

// NewZapLogger builds the operational logger used across the service.
func NewZapLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
