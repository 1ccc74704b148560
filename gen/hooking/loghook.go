package hooking

import (
	"github.com/sarchlab/datagen/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A LogHook writes the hook invocations of generators into a zap logger.
// Products are logged at debug level and lifecycle events at info level.
type LogHook struct {
	logger *zap.Logger
}

// NewLogHook creates a LogHook.
func NewLogHook(logger *zap.Logger) *LogHook {
	return &LogHook{logger: logger}
}

// Func logs the invocation.
func (h *LogHook) Func(ctx HookCtx) {
	lvl := zapcore.InfoLevel
	if ctx.Pos == HookPosGenerate {
		lvl = zapcore.DebugLevel
	}

	ce := h.logger.Check(lvl, ctx.Pos.Name)
	if ce == nil {
		return
	}

	fields := []zap.Field{logging.Generator(DomainName(ctx))}

	if ctx.Pos == HookPosGenerate {
		fields = append(fields, zap.Any("value", ctx.Item))

		if tags, ok := ctx.Detail.(map[string]string); ok {
			fields = append(fields, zap.Any("tags", tags))
		}
	}

	ce.Write(fields...)
}
