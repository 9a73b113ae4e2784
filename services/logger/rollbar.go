package logsvc

import (
	"github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
)

// RollbarLogger writes entries to zap & reports them to Rollbar.
type RollbarLogger struct {
	zap *zap.SugaredLogger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewZap builds the zap logger: human readable in debug, JSON otherwise.
func NewZap(debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, errors.Wrap(err, "building zap logger")
	}
	return l.Sugar(), nil
}

func NewRollbarLogger(sugar *zap.SugaredLogger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(rollbarerrors.StackTracer)

	l := &RollbarLogger{zap: sugar}
	l.Enable(!conf.Debug && conf.RollbarToken != "")
	return l
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Sync flushes both zap's buffer and Rollbar's queue.
func (l *RollbarLogger) Sync() {
	_ = l.zap.Sync()
	rollbar.Wait()
}

// expected fmt: msg | error, map[string]interface{}
func (l *RollbarLogger) rollbarArgs(msg string, args []interface{}) []interface{} {
	return append([]interface{}{msg}, args...)
}

// zapArgs flattens errors & extras into zap key/value pairs.
func (l *RollbarLogger) zapArgs(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, 2*len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			kvs = append(kvs, zap.Error(a))
		case map[string]interface{}:
			for k, v := range a {
				kvs = append(kvs, k, v)
			}
		default:
			kvs = append(kvs, zap.Any("extra", a))
		}
	}
	return kvs
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.rollbarArgs(msg, args)...)
	l.zap.Debugw(msg, l.zapArgs(args)...)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.rollbarArgs(msg, args)...)
	l.zap.Infow(msg, l.zapArgs(args)...)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.rollbarArgs(msg, args)...)
	l.zap.Warnw(msg, l.zapArgs(args)...)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.rollbarArgs(msg, args)...)
	l.zap.Errorw(msg, l.zapArgs(args)...)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.rollbarArgs(msg, args)...)
	rollbar.Wait()
	l.zap.Fatalw(msg, l.zapArgs(args)...)
}
