package logger

import (
	"go.uber.org/zap"
)

// Init builds the global zap logger. Call once at startup; call sites use
// zap.L() / zap.S().
func Init(dev bool) error {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	return nil
}

func Sync() {
	_ = zap.L().Sync()
}
