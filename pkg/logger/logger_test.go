package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/quimidom/quimidom-api/pkg/logger"
)

func TestNew_NivelPorEntorno(t *testing.T) {
	tests := []struct {
		name string
		cfg  logger.Config
		want zerolog.Level
	}{
		{"development sin nivel usa debug", logger.Config{Env: "development"}, zerolog.DebugLevel},
		{"production sin nivel usa info", logger.Config{Env: "production"}, zerolog.InfoLevel},
		{"nivel explícito manda sobre el entorno", logger.Config{Env: "development", Level: "warn"}, zerolog.WarnLevel},
		{"nivel desconocido cae al default del entorno", logger.Config{Env: "production", Level: "verbose"}, zerolog.InfoLevel},
		{"error en development", logger.Config{Env: "development", Level: "error"}, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := logger.New(tt.cfg)
			assert.Equal(t, tt.want, l.Level())
		})
	}
}
