package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New builds the process logger: human-readable in dev, JSON in any other
// environment.
func New(environment string) *zap.SugaredLogger {
	var (
		log *zap.Logger
		err error
	)
	if strings.ToLower(environment) == "dev" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}
	return log.Sugar()
}

// Nop returns a logger that discards everything; used in tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
