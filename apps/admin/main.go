package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	l, _ := zap.NewDevelopment()
	logger := l.Sugar().Named("dashctl")
	defer func() { _ = logger.Sync() }()

	cli := newCommandLine(os.Stdout)
	if err := cli.run(os.Args[1:]); err != nil {
		logger.Errorf("error: %v", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
