package linear_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sasspipe/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr), &stdout, &stderr
}

func TestRenderer_BundleLifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer(t)
	require.NoError(t, r.Start(context.Background()))

	r.OnPlanEmit([]string{"css/main.css", "css/print.css"})
	assert.Contains(t, stderr.String(), "Building 2 bundle(s): css/main.css, css/print.css")

	start := time.Now()
	r.OnTaskStart("span1", "", "css/main.css", start)
	assert.Contains(t, stderr.String(), "[css/main.css] Compiling...")

	r.OnTaskLog("span1", []byte("wrote out/css/main.css\n"))
	assert.Equal(t, "[css/main.css] wrote out/css/main.css\n", stdout.String())

	r.OnTaskComplete("span1", start.Add(120*time.Millisecond), nil)
	assert.Contains(t, stderr.String(), "[css/main.css] ✓ Done in 120ms")

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnTaskStart("span1", "", "css/main.css", time.Now())
	r.OnTaskLog("span1", []byte("partial"))
	assert.Empty(t, stdout.String())

	r.OnTaskLog("span1", []byte(" line\r\nrest"))
	assert.Equal(t, "[css/main.css] partial line\n", stdout.String())

	require.NoError(t, r.Stop())
	assert.Equal(t, "[css/main.css] partial line\n[css/main.css] rest\n", stdout.String())
}

func TestRenderer_Failure(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	start := time.Now()
	r.OnTaskStart("span1", "", "css/broken.css", start)
	r.OnTaskLog("span1", []byte("trailing"))
	r.OnTaskComplete("span1", start.Add(time.Second), errors.New("undefined variable"))

	assert.Equal(t, "[css/broken.css] trailing\n", stdout.String())
	assert.Contains(t, stderr.String(), "[css/broken.css] ✗ Failed after 1s: undefined variable")
}

func TestRenderer_UnknownSpan(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	r.OnTaskLog("missing", []byte("ignored\n"))
	r.OnTaskComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}
