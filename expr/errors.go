package expr

import "errors"

var (
	// ErrParsing marks construction-time failures: the source text could not
	// be parsed or compiled by its language's engine.
	ErrParsing = errors.New("expression parsing failed")

	// ErrLanguageUnknown is returned when no parser is registered for an
	// expression's language tag and no default language is set.
	ErrLanguageUnknown = errors.New("unknown expression language")

	// ErrParserRegistration marks an invalid Register or SetDefaultLanguage
	// call.
	ErrParserRegistration = errors.New("invalid parser registration")
)
