package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sasspipe/internal/core/domain"
)

func TestMakeAbsolute(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		route string
		want  domain.SourceRoute
	}{
		{name: "relative", base: "/css", route: "vars.scss", want: "/css/vars.scss"},
		{name: "parent", base: "/css/theme", route: "../vars.scss", want: "/css/vars.scss"},
		{name: "clamped at root", base: "/", route: "../../x.scss", want: "/x.scss"},
		{name: "leading slash joins onto base", base: "/css", route: "/x.scss", want: "/css/x.scss"},
		{name: "backslashes", base: `\css`, route: `sub\x.scss`, want: "/css/sub/x.scss"},
		{name: "empty", base: "", route: "", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MakeAbsolute(tt.base, tt.route))
		})
	}
}

func TestSourceRoute_Parts(t *testing.T) {
	r := domain.SourceRoute("/css/vars.scss")

	assert.Equal(t, domain.SourceRoute("/css"), r.Dir())
	assert.Equal(t, "vars.scss", r.Base())
	assert.Equal(t, "css/vars.scss", r.Relative())
	assert.False(t, r.IsPartial())
	assert.Equal(t, domain.SourceRoute("/css/_vars.scss"), r.Partial())
	assert.True(t, r.Partial().IsPartial())
	assert.Equal(t, ".", domain.SourceRoute("/").Relative())
}

func TestWithDefaultExtension(t *testing.T) {
	assert.Equal(t, "vars.scss", domain.WithDefaultExtension("vars"))
	assert.Equal(t, "vars.css", domain.WithDefaultExtension("vars.css"))
	assert.Equal(t, "vars..scss", domain.WithDefaultExtension("vars."))
	assert.Equal(t, "dir.v2/vars.scss", domain.WithDefaultExtension("dir.v2/vars"))
}

func TestIsExternalReference(t *testing.T) {
	external := []string{"http://cdn/x.css", "https://cdn/x.css", "//cdn/x.css", "data:text/css,a", "sass:math"}
	for _, ref := range external {
		assert.True(t, domain.IsExternalReference(ref), ref)
	}

	local := []string{"vars", "./vars", "../theme/vars.scss", "/abs/vars", "1http:x"}
	for _, ref := range local {
		assert.False(t, domain.IsExternalReference(ref), ref)
	}
}
