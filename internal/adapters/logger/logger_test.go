package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sasspipe/internal/adapters/logger"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("compiled /css/site.css")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("sass: $weight is deprecated")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_SetQuiet(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetQuiet(true)
	lg.Info("hidden")
	lg.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())

	lg.SetQuiet(false)
	lg.Info("visible again")
	assert.Contains(t, buf.String(), "visible again")
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "sentinel with metadata",
			err:        zerr.With(domain.ErrRootNotFound, "route", "/css/site.scss"),
			goldenName: "error_sentinel_metadata",
		},
		{
			name: "wrapped chain",
			err: zerr.With(
				zerr.Wrap(errors.New("permission denied"), domain.ErrFileOpenFailed.Error()),
				"route", "/css/_vars.scss",
			),
			goldenName: "error_chain",
		},
		{
			name:       "stdlib chain",
			err:        fmt.Errorf("outer: %w", errors.New("inner")),
			goldenName: "error_stdlib",
		},
		{
			name:       "multiline message",
			err:        zerr.Wrap(errors.New("expected \";\"\n  ╷\n1 │ a {"), "sass compilation failed"),
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.With(domain.ErrRootNotFound, "route", "/css/site.scss"))

	out := buf.String()
	require.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"operation failed"`)
	assert.Contains(t, out, `"error":"root stylesheet not found"`)
	assert.Contains(t, out, `"route":"/css/site.scss"`)

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("pretty again")
	assert.Equal(t, "pretty again\n", buf.String())
}
