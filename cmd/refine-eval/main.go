package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	refine "github.com/amansingh-swe/OpenRefine-aman"
	"github.com/amansingh-swe/OpenRefine-aman/clustering/binning"
	"github.com/amansingh-swe/OpenRefine-aman/engines/starlark"
	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// CLI configuration
type Config struct {
	ConfigFile  string
	LibraryPath string
	Language    string
	Bindings    map[string]any
	AsKeyer     bool
	JSON        bool
	Verbose     bool
	Expression  string
	Value       *string
}

func main() {
	config := parseFlags()

	fileCfg, err := LoadFileConfig(config.ConfigFile)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	// Flags win over the config file
	if config.LibraryPath == "" {
		config.LibraryPath = fileCfg.LibraryPath
	}
	if config.Language == "" {
		config.Language = fileCfg.DefaultLanguage
	}

	level := fileCfg.slogLevel()
	if config.Verbose {
		level = slog.LevelDebug
	}
	handler := newLogHandler(level)
	logger := slog.New(handler)

	rt, err := starlark.NewRuntime(handler, starlark.Config{LibraryPath: config.LibraryPath})
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	if dir := rt.LibraryDir(); dir != "" {
		logger.Debug("loaded expression libraries", "dir", dir)
	}

	registry, err := refine.RegistryWithRuntime(handler, rt)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	if config.Language != "" {
		if err := registry.SetDefaultLanguage(config.Language); err != nil {
			color.Red("Error: %v", err)
			os.Exit(1)
		}
	}

	if config.AsKeyer {
		runKeyer(registry, config)
		return
	}
	runEvaluate(registry, config)
}

func runEvaluate(registry *expr.Registry, config *Config) {
	ev, err := registry.Parse(config.Expression)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	bindings := expr.NewBindings()
	for name, value := range config.Bindings {
		bindings[name] = value
	}
	if config.Value != nil {
		bindings[expr.BindingValue] = *config.Value
	}

	start := time.Now()
	res, err := ev.Evaluate(context.Background(), bindings)
	duration := time.Since(start)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	if config.Verbose {
		color.White("Evaluated in %v (%s)", duration, ev.GetLanguagePrefix())
	}
	if res.IsErr() {
		color.Red("Error: %s", res.Err.Message)
		os.Exit(1)
	}
	fmt.Println(renderValue(res.Value, config.JSON))
}

func runKeyer(registry *expr.Registry, config *Config) {
	if config.Value == nil {
		color.Red("Error: -keyer requires a value argument")
		os.Exit(1)
	}

	keyer, err := binning.NewUserDefinedKeyer(registry, config.Expression)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	key, err := keyer.Key(context.Background(), *config.Value)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	fmt.Println(key)
}

func renderValue(v any, asJSON bool) string {
	if asJSON {
		if data, err := json.MarshalIndent(v, "", "  "); err == nil {
			return string(data)
		}
	}
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func parseFlags() *Config {
	config := &Config{
		Bindings: make(map[string]any),
	}

	flag.StringVar(&config.ConfigFile, "config", "", "Path to a YAML configuration file (optional)")
	flag.StringVar(&config.LibraryPath, "library", "", "Expression library directory (overrides config file)")
	flag.StringVar(&config.Language, "language", "", "Default expression language: starlark or risor")

	var bindFlags stringSlice
	flag.Var(&bindFlags, "bind", "Binding in format name=value (can be used multiple times)")
	flag.Var(&bindFlags, "b", "Binding in format name=value (shorthand)")

	flag.BoolVar(&config.AsKeyer, "keyer", false, "Run the expression as a canonicalization keyer")
	flag.BoolVar(&config.JSON, "json", false, "Output the result in JSON format")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&config.Verbose, "v", false, "Enable verbose logging (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `refine-eval - Evaluate data-cleaning expressions

Usage: %s [options] <expression> [value]

The expression may carry a language prefix ("starlark:..." or "risor:...");
unprefixed text uses the default language (starlark unless overridden). The
optional value argument is bound as the "value" variable.

Examples:
  # Normalize a string
  %s 'value.strip().lower()' ' Foo '

  # Bind extra variables (values parse as JSON when possible)
  %s -bind rowIndex=1 'value.split(",")[rowIndex].strip()' 'a, b, c'

  # Evaluate with the Risor engine
  %s -bind value=41 'risor:value + 1'

  # Produce a clustering key
  %s -keyer 'value.strip().lower()' ' Foo '

Bindings:
  value, cell, cells, row, rowIndex, value1, value2

Options:
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	// Parse binding flags
	for _, bind := range bindFlags {
		parts := strings.SplitN(bind, "=", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "Error: invalid binding format '%s'. Use name=value\n", bind)
			os.Exit(1)
		}

		config.Bindings[parts[0]] = parseBindingValue(parts[1])
	}

	args := flag.Args()
	if len(args) < 1 {
		color.Red("Error: an expression is required")
		flag.Usage()
		os.Exit(1)
	}
	config.Expression = args[0]
	if len(args) > 1 {
		config.Value = &args[1]
	}
	return config
}

// parseBindingValue keeps integers integral (JSON would widen them to
// float64, which matters to expressions that index with them), then falls
// back to JSON for structured values and finally to the raw string.
func parseBindingValue(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(text); err == nil {
		return b
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed
	}
	return text
}

// Custom flag type for repeated binding values
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}
