package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sasspipe/internal/adapters/fs"
)

func TestResolver_ResolveInputs(t *testing.T) {
	t.Parallel()

	resolver := fs.NewResolver(fs.NewWalker())

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "literal path",
			patterns: []string{"/css/site.scss"},
			want:     []string{"css/site.scss"},
		},
		{
			name:     "single segment wildcard",
			patterns: []string{"css/*.scss"},
			want:     []string{"css/_vars.scss", "css/site.scss"},
		},
		{
			name:     "recursive wildcard",
			patterns: []string{"**/*.scss"},
			want: []string{
				"css/_vars.scss",
				"css/components/_mixins.scss",
				"css/components/button.scss",
				"css/site.scss",
			},
		},
		{
			name:     "recursive wildcard in the middle",
			patterns: []string{"css/**/button.scss"},
			want:     []string{"css/components/button.scss"},
		},
		{
			name:     "pattern order is kept and duplicates dropped",
			patterns: []string{"css/theme.css", "css/*.*"},
			want:     []string{"css/theme.css", "css/_vars.scss", "css/legacy.sass", "css/site.scss"},
		},
		{
			name:     "no matches",
			patterns: []string{"**/*.less"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.ResolveInputs(stylesheetTree(), tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ResolveInputs_Errors(t *testing.T) {
	t.Parallel()

	resolver := fs.NewResolver(fs.NewWalker())

	_, err := resolver.ResolveInputs(stylesheetTree(), []string{"css/missing.scss"})
	require.ErrorContains(t, err, "input not found")

	_, err = resolver.ResolveInputs(stylesheetTree(), []string{"css"})
	require.ErrorContains(t, err, "input not found")

	_, err = resolver.ResolveInputs(stylesheetTree(), []string{"css/[.scss"})
	require.ErrorContains(t, err, "invalid file pattern")
}
