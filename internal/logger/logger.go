package logger

import (
	"go.uber.org/zap"
)

// L is the process-wide logger. It is a no-op logger until Init runs so
// packages can log from tests without setup.
var L = zap.NewNop()

// Init replaces L with a production (JSON) or development (console) logger.
func Init(production bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if production {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	L = l
	zap.ReplaceGlobals(l)
	return nil
}

func Sync() {
	_ = L.Sync()
}
