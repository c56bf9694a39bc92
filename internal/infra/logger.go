// README: Structured logger construction; services receive *zap.Logger explicitly.
package infra

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Development mode switches
// to the console encoder with debug level enabled.
func NewLogger(development bool) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if development {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("zap init: %w", err)
	}
	return log, nil
}
