package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/analitica-sedes/pkg/logger"
)

func TestNewWithWriter_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "warn"}, &buf)

	l.Info().Msg("oculto")
	l.Warn().Str("sede", "ladorada").Msg("visible")

	assert.NotContains(t, buf.String(), "oculto")
	assert.Contains(t, buf.String(), `"sede":"ladorada"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNewWithWriter_NivelDesconocidoEsInfo(t *testing.T) {
	l := logger.NewWithWriter(logger.Config{Level: "verboso"}, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Level: "debug"}, &buf)

	ctx := l.WithContext(context.Background())
	zerolog.Ctx(ctx).Debug().Msg("desde contexto")

	assert.Contains(t, buf.String(), "desde contexto")
}
