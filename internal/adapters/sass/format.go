package sass

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// sassIndent is the indentation Dart Sass always emits in expanded output.
const sassIndent = "  "

const inlineMapPrefix = "/*# sourceMappingURL=data:application/json;charset=utf-8;base64,"

// FormatCSS applies the configured indentation and line feed to compiler output.
func FormatCSS(css string, settings domain.CompileSettings) string {
	lines := strings.Split(strings.ReplaceAll(css, "\r\n", "\n"), "\n")

	if settings.OutputStyle == domain.OutputStyleExpanded {
		unit := indentUnit(settings)
		if unit != sassIndent {
			for i, line := range lines {
				lines[i] = reindent(line, unit)
			}
		}
	}

	return strings.Join(lines, settings.LineFeed.String())
}

func indentUnit(settings domain.CompileSettings) string {
	char := " "
	if settings.IndentType == domain.IndentTab {
		char = "\t"
	}
	return strings.Repeat(char, max(settings.IndentWidth, 1))
}

func reindent(line, unit string) string {
	trimmed := strings.TrimLeft(line, " ")
	depth := (len(line) - len(trimmed)) / len(sassIndent)
	if depth == 0 {
		return line
	}
	return strings.Repeat(unit, depth) + line[depth*len(sassIndent):]
}

// AttachSourceMap applies the source map settings to a compiled stylesheet.
// An embedded map is appended to the CSS as a data URL and not returned separately.
func AttachSourceMap(css, sourceMap string, settings domain.CompileSettings) (string, string, error) {
	if !settings.SourceMap || sourceMap == "" {
		return css, "", nil
	}

	if settings.SourceMapRootPath != "" {
		var fields map[string]any
		if err := json.Unmarshal([]byte(sourceMap), &fields); err != nil {
			return "", "", zerr.Wrap(err, domain.ErrCompileFailed.Error())
		}
		fields["sourceRoot"] = settings.SourceMapRootPath
		rewritten, err := json.Marshal(fields)
		if err != nil {
			return "", "", zerr.Wrap(err, domain.ErrCompileFailed.Error())
		}
		sourceMap = string(rewritten)
	}

	if settings.InlineSourceMap {
		encoded := base64.StdEncoding.EncodeToString([]byte(sourceMap))
		return css + settings.LineFeed.String() + inlineMapPrefix + encoded + " */", "", nil
	}

	return css, sourceMap, nil
}
