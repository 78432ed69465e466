package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// OutputStyle selects how the compiler formats CSS.
type OutputStyle string

const (
	// OutputStyleExpanded writes each selector and declaration on its own line.
	OutputStyleExpanded OutputStyle = "expanded"
	// OutputStyleCompressed removes as many extra characters as possible.
	OutputStyleCompressed OutputStyle = "compressed"
)

// WarningLevel controls how chatty the compiler is.
type WarningLevel string

const (
	// WarningLevelQuiet suppresses all compiler warnings.
	WarningLevelQuiet WarningLevel = "quiet"
	// WarningLevelDefault emits warnings, collapsing repeated deprecations.
	WarningLevelDefault WarningLevel = "default"
	// WarningLevelVerbose emits every warning.
	WarningLevelVerbose WarningLevel = "verbose"
)

// IndentType is the character used for indentation in expanded output.
type IndentType uint8

const (
	// IndentSpace indents with spaces.
	IndentSpace IndentType = iota
	// IndentTab indents with tabs.
	IndentTab
)

// LineFeed is the line ending written into compiled output.
type LineFeed uint8

const (
	// LineFeedLF is "\n".
	LineFeedLF LineFeed = iota
	// LineFeedCR is "\r".
	LineFeedCR
	// LineFeedCRLF is "\r\n".
	LineFeedCRLF
	// LineFeedLFCR is "\n\r".
	LineFeedLFCR
)

// String returns the literal line ending.
func (l LineFeed) String() string {
	switch l {
	case LineFeedCR:
		return "\r"
	case LineFeedCRLF:
		return "\r\n"
	case LineFeedLFCR:
		return "\n\r"
	default:
		return "\n"
	}
}

// Options configures SCSS processing for a pipeline.
type Options struct {
	OutputStyle         OutputStyle  `yaml:"outputStyle"`
	GenerateSourceMap   bool         `yaml:"generateSourceMap"`
	SourceMapEmbed      bool         `yaml:"sourceMapEmbed"`
	SourceMapContents   bool         `yaml:"sourceMapContents"`
	OmitSourceMapURL    bool         `yaml:"omitSourceMapUrl"`
	IndentedSyntax      bool         `yaml:"indentedSyntax"`
	Indent              string       `yaml:"indent"`
	Linefeed            string       `yaml:"linefeed"`
	SourceMapRoot       string       `yaml:"sourceMapRoot"`
	IncludePaths        []string     `yaml:"includePaths"`
	WarningLevel        WarningLevel `yaml:"warningLevel"`
	QuietDependencies   bool         `yaml:"quietDependencies"`
	FatalDeprecations   []string     `yaml:"fatalDeprecations"`
	FutureDeprecations  []string     `yaml:"futureDeprecations"`
	SilenceDeprecations []string     `yaml:"silenceDeprecations"`
	MinifyCSS           bool         `yaml:"minifyCss"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		OutputStyle:  OutputStyleExpanded,
		Indent:       "  ",
		Linefeed:     "\n",
		WarningLevel: WarningLevelDefault,
		MinifyCSS:    true,
	}
}

// CompileSettings is the validated form of Options handed to the external compiler.
type CompileSettings struct {
	OutputStyle              OutputStyle
	IndentType               IndentType
	IndentWidth              int
	LineFeed                 LineFeed
	SourceMap                bool
	InlineSourceMap          bool
	SourceMapIncludeContents bool
	OmitSourceMapURL         bool
	SourceMapRootPath        string
	IndentedSyntax           bool
	IncludePaths             []string
	WarningLevel             WarningLevel
	QuietDependencies        bool
	FatalDeprecations        []string
	FutureDeprecations       []string
	SilenceDeprecations      []string
}

// Settings validates the options and derives the compiler settings.
// Invalid values fail immediately instead of falling back to a default.
func (o Options) Settings() (CompileSettings, error) {
	style, err := parseOutputStyle(o.OutputStyle)
	if err != nil {
		return CompileSettings{}, err
	}
	if o.MinifyCSS {
		style = OutputStyleCompressed
	}

	indentType, err := parseIndent(o.Indent)
	if err != nil {
		return CompileSettings{}, err
	}

	lineFeed, err := ParseLineFeed(o.Linefeed)
	if err != nil {
		return CompileSettings{}, err
	}

	level, err := parseWarningLevel(o.WarningLevel)
	if err != nil {
		return CompileSettings{}, err
	}

	return CompileSettings{
		OutputStyle:              style,
		IndentType:               indentType,
		IndentWidth:              len(o.Indent),
		LineFeed:                 lineFeed,
		SourceMap:                o.GenerateSourceMap,
		InlineSourceMap:          o.SourceMapEmbed,
		SourceMapIncludeContents: o.SourceMapContents,
		OmitSourceMapURL:         o.OmitSourceMapURL,
		SourceMapRootPath:        o.SourceMapRoot,
		IndentedSyntax:           o.IndentedSyntax,
		IncludePaths:             o.IncludePaths,
		WarningLevel:             level,
		QuietDependencies:        o.QuietDependencies,
		FatalDeprecations:        o.FatalDeprecations,
		FutureDeprecations:       o.FutureDeprecations,
		SilenceDeprecations:      o.SilenceDeprecations,
	}, nil
}

// Validate reports the first invalid option, if any.
func (o Options) Validate() error {
	_, err := o.Settings()
	return err
}

// ParseLineFeed maps a literal line ending to a LineFeed.
func ParseLineFeed(s string) (LineFeed, error) {
	switch s {
	case "\n":
		return LineFeedLF, nil
	case "\r":
		return LineFeedCR, nil
	case "\r\n":
		return LineFeedCRLF, nil
	case "\n\r":
		return LineFeedLFCR, nil
	default:
		return 0, zerr.With(ErrUnsupportedLinefeed, "linefeed", strconv.Quote(s))
	}
}

func parseOutputStyle(s OutputStyle) (OutputStyle, error) {
	switch s {
	case "", OutputStyleExpanded:
		return OutputStyleExpanded, nil
	case OutputStyleCompressed:
		return OutputStyleCompressed, nil
	default:
		return "", zerr.With(ErrInvalidOutputStyle, "output_style", string(s))
	}
}

func parseIndent(indent string) (IndentType, error) {
	if indent == "" {
		return 0, zerr.With(ErrInvalidIndent, "indent", strconv.Quote(indent))
	}
	if strings.Trim(indent, "\t") == "" {
		return IndentTab, nil
	}
	if strings.Trim(indent, " ") == "" {
		return IndentSpace, nil
	}
	return 0, zerr.With(ErrInvalidIndent, "indent", strconv.Quote(indent))
}

func parseWarningLevel(l WarningLevel) (WarningLevel, error) {
	switch l {
	case "", WarningLevelDefault:
		return WarningLevelDefault, nil
	case WarningLevelQuiet, WarningLevelVerbose:
		return l, nil
	default:
		return "", zerr.With(ErrInvalidWarningLevel, "warning_level", string(l))
	}
}
