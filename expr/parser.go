package expr

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/amansingh-swe/OpenRefine-aman/internal/helpers"
)

// LanguageParser turns source text in one expression language into an
// Evaluable. Implementations are registered on a Registry under a language
// tag; the tag they were resolved through is passed back so the Evaluable
// can report it.
type LanguageParser interface {
	Parse(source string, languagePrefix string) (Evaluable, error)
}

// ParserFunc adapts a plain function to the LanguageParser interface.
type ParserFunc func(source string, languagePrefix string) (Evaluable, error)

func (f ParserFunc) Parse(source string, languagePrefix string) (Evaluable, error) {
	return f(source, languagePrefix)
}

// Registry maps language tags to their parsers and dispatches full
// expression texts of the form "language:source". Registration normally
// happens once at startup; Parse may be called from any goroutine.
type Registry struct {
	mu            sync.RWMutex
	parsers       map[string]LanguageParser
	defaultPrefix string
	logHandler    slog.Handler
	logger        *slog.Logger
}

// NewRegistry creates an empty registry. A nil handler falls back to the
// default logger configuration.
func NewRegistry(handler slog.Handler) *Registry {
	handler, logger := helpers.SetupLogger(handler, "expr", "Registry")
	return &Registry{
		parsers:    make(map[string]LanguageParser),
		logHandler: handler,
		logger:     logger,
	}
}

// Register binds a language tag to its parser. Registering a tag twice
// replaces the earlier parser.
func (r *Registry) Register(languagePrefix string, parser LanguageParser) error {
	if parser == nil {
		return fmt.Errorf("%w: parser is nil", ErrParserRegistration)
	}
	if languagePrefix == "" || strings.ContainsRune(languagePrefix, ':') {
		return fmt.Errorf("%w: bad language prefix %q", ErrParserRegistration, languagePrefix)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.parsers[languagePrefix]; exists {
		r.logger.Warn("replacing language parser", "language", languagePrefix)
	}
	r.parsers[languagePrefix] = parser
	return nil
}

// SetDefaultLanguage selects the language used for expressions that carry no
// registered prefix. The language must already be registered.
func (r *Registry) SetDefaultLanguage(languagePrefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parsers[languagePrefix]; !ok {
		return fmt.Errorf("%w: default language %q is not registered", ErrParserRegistration, languagePrefix)
	}
	r.defaultPrefix = languagePrefix
	return nil
}

// Languages returns the registered language tags in sorted order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse compiles a full expression text. The text before the first colon
// selects the language when it matches a registered tag; otherwise the whole
// text is handed to the default language. Construction failures from the
// underlying parser wrap ErrParsing.
func (r *Registry) Parse(expression string) (Evaluable, error) {
	parser, prefix, source, err := r.route(expression)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("parsing expression", "language", prefix, "sourceLength", len(source))
	return parser.Parse(source, prefix)
}

func (r *Registry) route(expression string) (LanguageParser, string, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if colon := strings.IndexByte(expression, ':'); colon >= 0 {
		prefix := expression[:colon]
		if p, ok := r.parsers[prefix]; ok {
			return p, prefix, expression[colon+1:], nil
		}
	}
	if r.defaultPrefix == "" {
		return nil, "", "", fmt.Errorf("%w: no registered prefix in %q and no default language set", ErrLanguageUnknown, expression)
	}
	return r.parsers[r.defaultPrefix], r.defaultPrefix, expression, nil
}
