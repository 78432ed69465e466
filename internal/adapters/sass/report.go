package sass

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxRepetitions is how many warnings of one deprecation type are shown per compile
// before the rest are summarized.
const maxRepetitions = 5

// report forwards compiler log events to the logger according to the warning level.
// It returns an error for the first deprecation listed as fatal.
func report(
	log ports.Logger,
	route domain.SourceRoute,
	settings domain.CompileSettings,
	events []godartsass.LogEvent,
) error {
	level := settings.WarningLevel
	counts := make(map[string]int)
	var fatal error

	for _, event := range events {
		switch event.Type {
		case godartsass.LogEventTypeDebug:
			if level != domain.WarningLevelQuiet {
				log.Info(event.Message)
			}
		case godartsass.LogEventTypeWarning:
			if level != domain.WarningLevelQuiet {
				log.Warn(event.Message)
			}
		case godartsass.LogEventTypeDeprecated:
			if slices.Contains(settings.FatalDeprecations, event.DeprecationType) {
				if fatal == nil {
					fatal = fatalDeprecation(route, event)
				}
				continue
			}
			if level == domain.WarningLevelQuiet {
				continue
			}
			counts[event.DeprecationType]++
			if level == domain.WarningLevelVerbose || counts[event.DeprecationType] <= maxRepetitions {
				log.Warn(fmt.Sprintf("deprecation [%s]: %s", event.DeprecationType, event.Message))
			}
		}
	}

	if level == domain.WarningLevelDefault {
		kinds := make([]string, 0, len(counts))
		for kind, n := range counts {
			if n > maxRepetitions {
				kinds = append(kinds, kind)
			}
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			log.Warn(fmt.Sprintf("%d repetitive %q deprecation warnings omitted", counts[kind]-maxRepetitions, kind))
		}
	}

	return fatal
}

func fatalDeprecation(route domain.SourceRoute, event godartsass.LogEvent) error {
	err := zerr.Wrap(errors.New(event.Message), domain.ErrCompileFailed.Error())
	err = zerr.With(err, "route", route.String())
	return zerr.With(err, "deprecation", event.DeprecationType)
}

func compileError(err error, route domain.SourceRoute) error {
	var sassErr godartsass.SassError
	if !errors.As(err, &sassErr) {
		return zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "route", route.String())
	}

	wrapped := zerr.Wrap(errors.New(sassErr.Message), domain.ErrCompileFailed.Error())
	wrapped = zerr.With(wrapped, "route", route.String())
	if sassErr.Span.Url != "" {
		wrapped = zerr.With(wrapped, "url", sassErr.Span.Url)
	}
	if sassErr.Span.Text != "" {
		wrapped = zerr.With(wrapped, "span", sassErr.Span.Text)
	}
	return wrapped
}
