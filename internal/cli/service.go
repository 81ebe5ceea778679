package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/vburojevic/rlc/internal/caller"
	"github.com/vburojevic/rlc/internal/domain"
	"github.com/vburojevic/rlc/internal/ros"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelService is the orchestrator surface the commands drive. Implemented
// by caller.ServiceCaller; substituted by a fake in tests.
type LevelService interface {
	Levels() []domain.Level
	NodeNames(ctx context.Context) ([]string, error)
	Loggers(ctx context.Context, node string) ([]caller.LoggerState, error)
	CurrentLevel(scope domain.Scope) (domain.Level, bool)
	Level(ctx context.Context, scope domain.Scope) (domain.Level, error)
	SetLevel(ctx context.Context, scope domain.Scope, level domain.Level) (bool, error)
}

// service returns the injected fake or builds the real caller over the
// ros2 CLI.
func service(globals *Globals) LevelService {
	if globals.Service != nil {
		return globals.Service
	}
	cfg := globals.Config
	logger := newLogger(globals)
	graph := ros.NewExecGraph(cfg.Ros2Path)
	factory := ros.NewExecClientFactory(cfg.Ros2Path)
	invoker := caller.NewInvoker(factory, logger, caller.InvokerOptions{
		AttemptWait: cfg.AttemptWait(),
		MaxWait:     cfg.MaxWait(),
		CallTimeout: cfg.CallTimeout(),
	})
	return caller.New(graph, invoker, logger)
}

// newLogger builds the diagnostics sink: a console zap logger on stderr.
// Warnings are the default; --quiet keeps only errors, --verbose opens up
// debug output.
func newLogger(globals *Globals) *zap.Logger {
	level := zapcore.WarnLevel
	if globals.Quiet {
		level = zapcore.ErrorLevel
	}
	if globals.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	if f, ok := globals.Stderr.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(globals.Stderr),
		level,
	)
	return zap.New(core)
}

// scopeFor builds the scope addressed by the -n/-l flag pair.
func scopeFor(node, logger string) domain.Scope {
	if logger == "" {
		return domain.NodeScope(node)
	}
	return domain.LoggerScope(node, logger)
}
