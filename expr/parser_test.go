package expr

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeEvaluable struct {
	source string
	prefix string
}

func (f *fakeEvaluable) Evaluate(_ context.Context, _ Bindings) (Result, error) {
	return Result{Value: f.source}, nil
}

func (f *fakeEvaluable) GetSource() string         { return f.source }
func (f *fakeEvaluable) GetLanguagePrefix() string { return f.prefix }

func fakeParser() LanguageParser {
	return ParserFunc(func(source, languagePrefix string) (Evaluable, error) {
		return &fakeEvaluable{source: source, prefix: languagePrefix}, nil
	})
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("nil parser rejected", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry(slog.NewTextHandler(os.Stdout, nil))
		err := reg.Register("lang", nil)
		require.ErrorIs(t, err, ErrParserRegistration)
	})

	t.Run("bad prefixes rejected", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry(slog.NewTextHandler(os.Stdout, nil))
		require.ErrorIs(t, reg.Register("", fakeParser()), ErrParserRegistration)
		require.ErrorIs(t, reg.Register("a:b", fakeParser()), ErrParserRegistration)
	})

	t.Run("re-registration replaces", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry(slog.NewTextHandler(os.Stdout, nil))
		require.NoError(t, reg.Register("lang", ParserFunc(func(string, string) (Evaluable, error) {
			return &fakeEvaluable{source: "old"}, nil
		})))
		require.NoError(t, reg.Register("lang", ParserFunc(func(string, string) (Evaluable, error) {
			return &fakeEvaluable{source: "new"}, nil
		})))

		ev, err := reg.Parse("lang:anything")
		require.NoError(t, err)
		require.Equal(t, "new", ev.GetSource())
	})
}

func TestRegistryParse(t *testing.T) {
	t.Parallel()

	newReg := func(t *testing.T) *Registry {
		t.Helper()
		reg := NewRegistry(slog.NewTextHandler(os.Stdout, nil))
		require.NoError(t, reg.Register("lang", fakeParser()))
		return reg
	}

	t.Run("prefixed expression dispatches by tag", func(t *testing.T) {
		t.Parallel()
		reg := newReg(t)
		ev, err := reg.Parse("lang:value + 1")
		require.NoError(t, err)
		require.Equal(t, "value + 1", ev.GetSource(), "prefix must be stripped from the source")
		require.Equal(t, "lang", ev.GetLanguagePrefix())
	})

	t.Run("unknown prefix without default errors", func(t *testing.T) {
		t.Parallel()
		reg := newReg(t)
		_, err := reg.Parse("other:value")
		require.ErrorIs(t, err, ErrLanguageUnknown)
	})

	t.Run("unprefixed without default errors", func(t *testing.T) {
		t.Parallel()
		reg := newReg(t)
		_, err := reg.Parse("value + 1")
		require.ErrorIs(t, err, ErrLanguageUnknown)
	})

	t.Run("default language takes unprefixed text", func(t *testing.T) {
		t.Parallel()
		reg := newReg(t)
		require.NoError(t, reg.SetDefaultLanguage("lang"))

		ev, err := reg.Parse("value + 1")
		require.NoError(t, err)
		require.Equal(t, "value + 1", ev.GetSource())
		require.Equal(t, "lang", ev.GetLanguagePrefix())
	})

	t.Run("colon in source is not a prefix unless registered", func(t *testing.T) {
		t.Parallel()
		reg := newReg(t)
		require.NoError(t, reg.SetDefaultLanguage("lang"))

		ev, err := reg.Parse("value[1:2]")
		require.NoError(t, err)
		require.Equal(t, "value[1:2]", ev.GetSource(), "whole text goes to the default language")
		require.Equal(t, "lang", ev.GetLanguagePrefix())
	})

	t.Run("only first colon is considered", func(t *testing.T) {
		t.Parallel()
		reg := newReg(t)
		ev, err := reg.Parse("lang:a:b")
		require.NoError(t, err)
		require.Equal(t, "a:b", ev.GetSource())
	})
}

func TestRegistrySetDefaultLanguage(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(slog.NewTextHandler(os.Stdout, nil))
	require.ErrorIs(t, reg.SetDefaultLanguage("lang"), ErrParserRegistration,
		"default language must already be registered")

	require.NoError(t, reg.Register("lang", fakeParser()))
	require.NoError(t, reg.SetDefaultLanguage("lang"))
}

func TestRegistryLanguages(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(slog.NewTextHandler(os.Stdout, nil))
	require.Empty(t, reg.Languages())

	require.NoError(t, reg.Register("zeta", fakeParser()))
	require.NoError(t, reg.Register("alpha", fakeParser()))
	require.Equal(t, []string{"alpha", "zeta"}, reg.Languages(), "tags come back sorted")
}
