package risor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
	"github.com/amansingh-swe/OpenRefine-aman/internal/helpers"
)

// Engine compiles Risor expressions. Unlike the Starlark runtime there is no
// shared interpreter state to guard: every evaluation runs on a fresh VM, so
// the engine itself is stateless beyond logging.
type Engine struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Risor engine. A nil handler falls back to the default logger
// configuration.
func New(handler slog.Handler) *Engine {
	handler, logger := helpers.SetupLogger(handler, "risor", "Engine")
	return &Engine{
		logHandler: handler,
		logger:     logger,
	}
}

func (e *Engine) String() string {
	return "risor.Engine"
}

// Parse implements expr.LanguageParser. The source is compiled once with the
// fixed binding names declared as globals; malformed source wraps
// expr.ErrParsing.
func (e *Engine) Parse(source string, languagePrefix string) (expr.Evaluable, error) {
	code, err := e.compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", expr.ErrParsing, err)
	}

	id := helpers.SHA256(source)[:idHashLength]
	handler, logger := helpers.SetupLogger(e.logHandler, "risor", "Evaluable")
	e.logger.Debug("expression compiled", "id", id, "sourceLength", len(source))
	return &Evaluable{
		code:           code,
		id:             id,
		source:         source,
		languagePrefix: languagePrefix,
		logHandler:     handler,
		logger:         logger,
	}, nil
}

const idHashLength = 12

// compile parses the source and compiles it to bytecode. The binding names
// are appended to the default global names so references to them resolve at
// compile time even though values arrive per evaluation.
func (e *Engine) compile(source string) (*risorCompiler.Code, error) {
	ast, err := risorParser.Parse(context.Background(), source)
	if err != nil {
		errMsg := err.Error()
		var friendlyErr risorErrors.FriendlyError
		if errors.As(err, &friendlyErr) {
			errMsg = friendlyErr.FriendlyErrorMessage()
		}
		return nil, fmt.Errorf("%w: %s", ErrSyntax, errMsg)
	}

	cfg := risorLib.NewConfig()
	globalNames := append(cfg.GlobalNames(), expr.BindingNames()...)
	sort.Strings(globalNames)

	code, err := risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(globalNames))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
	}
	return code, nil
}
