package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/sasspipe/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, termenv.Ascii, output.ColorProfile())
	assert.Equal(t, termenv.Ascii, output.ColorProfileANSI())
}

func TestColorProfileANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	assert.Equal(t, termenv.ANSI, output.ColorProfileANSI())
}

func TestNew_PlainWhenNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	out := output.New(buf)
	_, err := out.WriteString(out.String("compiled").Foreground(termenv.ANSIGreen).String())

	assert.NoError(t, err)
	assert.Equal(t, "compiled", buf.String())
}
