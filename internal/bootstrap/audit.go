package bootstrap

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type AuditEvent struct {
	Action   string
	ActorID  string
	Resource string
	Status   int
	Detail   string
}

type AuditLogger interface {
	Record(event AuditEvent)
}

type stdoutAuditLogger struct {
	logger *zap.Logger
}

// NewStdoutAuditLogger writes audit events as JSON lines to stdout, separate
// from the application log.
func NewStdoutAuditLogger() AuditLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		zap.InfoLevel,
	)
	return &stdoutAuditLogger{logger: zap.New(core).Named("audit")}
}

func NewAuditLogger(logger *zap.Logger) AuditLogger {
	return &stdoutAuditLogger{logger: logger.Named("audit")}
}

func (a *stdoutAuditLogger) Record(e AuditEvent) {
	a.logger.Info(e.Action,
		zap.String("actor_id", e.ActorID),
		zap.String("resource", e.Resource),
		zap.Int("status", e.Status),
		zap.String("detail", e.Detail),
		zap.Time("at", time.Now().UTC()),
	)
}
