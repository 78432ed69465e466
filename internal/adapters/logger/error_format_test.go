package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sasspipe/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer"),
			wantMessages: []string{"outer", "middle", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "metadata on standard error moves to the cause",
			err:          zerr.With(errors.New("disk full"), "path", "/out/site.css"),
			wantMessages: []string{"disk full"},
			wantMetadata: []map[string]any{{"path": "/out/site.css"}},
		},
		{
			name:         "metadata stays on its layer",
			err:          zerr.Wrap(zerr.With(zerr.New("not found"), "route", "/a.scss"), "walk failed"),
			wantMessages: []string{"walk failed", "not found"},
			wantMetadata: []map[string]any{{}, {"route": "/a.scss"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries := logger.CollectErrorEntries(tt.err)
			messages := make([]string, len(entries))
			metadata := make([]map[string]any, len(entries))
			for i, e := range entries {
				messages[i] = e.Message()
				metadata[i] = e.Meta()
			}

			assert.Equal(t, tt.wantMessages, messages)
			assert.Equal(t, tt.wantMetadata, metadata)
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	t.Parallel()

	got := logger.FormatErrorEntries(logger.CollectErrorEntries(
		zerr.Wrap(zerr.With(zerr.New("not found"), "route", "/a.scss"), "walk failed"),
	))

	assert.Equal(t, "Error: walk failed\n\n  Caused by:\n    → not found (route=/a.scss)", got)
}
