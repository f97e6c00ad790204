package logger

import (
	"fmt"
	"strings"

	"habilitations-core/internal/app/config"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Module = fx.Options(
	fx.Provide(NewLogger),
)

// WithFxLogger redirige les événements fx vers zap
var WithFxLogger = fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger.Named("fx")}
})

// NewLogger construit le logger selon l'environnement
// development : console colorée ; docker : JSON
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return Build(cfg.Environment, cfg.GetLogging().Level)
}

func Build(environment, level string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if environment == "development" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.TimeKey = "timestamp"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	atomicLevel, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL invalide %q: %w", level, err)
	}
	zapConfig.Level = atomicLevel

	logger, err := zapConfig.Build(zap.Fields(zap.String("env", environment)))
	if err != nil {
		return nil, fmt.Errorf("construction du logger: %w", err)
	}
	return logger, nil
}
