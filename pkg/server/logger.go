package server

import (
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/zap"

	"github.com/Ramsey-B/clover/config"
)

// NewLogger builds the service logger from config. Pretty logs use zap's
// development encoder. The zap globals are replaced so transport-level
// loggers (kafka-go) share the same sink.
func NewLogger(cfg *config.Config) (ectologger.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = level
	}

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(zapLogger)

	return zapadapter.NewZapEctoLogger(zapLogger, nil), nil
}
