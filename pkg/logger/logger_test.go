package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	log.Component("landed_cost").Info().Str("landed_cost_id", "lc-1").Msg("costo calculado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "landed_cost", entry["component"])
	assert.Equal(t, "lc-1", entry["landed_cost_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNivel(t *testing.T) {
	tests := []struct {
		level  string
		debug  bool
		errors bool
	}{
		{"debug", true, true},
		{"WARN", false, true},
		{"", false, true},
		{"cualquiera", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Level: tt.level, Out: &buf})

			log.Debug().Msg("d")
			assert.Equal(t, tt.debug, buf.Len() > 0)

			buf.Reset()
			log.WithLevel(zerolog.ErrorLevel).Msg("e")
			assert.Equal(t, tt.errors, buf.Len() > 0)
		})
	}
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Component("x").Error().Msg("nada") })
}
