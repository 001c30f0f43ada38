package expression

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/autobrr/qbtc/pkg/config"
	"github.com/autobrr/qbtc/pkg/regex"
)

func Compile(filter *config.FilterConfiguration) (*Expressions, error) {
	exp := new(Expressions)
	if filter == nil {
		return exp, nil
	}

	var err error
	if exp.Includes, err = compileList(filter.Include); err != nil {
		return nil, fmt.Errorf("compile include expression: %w", err)
	}

	if exp.Excludes, err = compileList(filter.Exclude); err != nil {
		return nil, fmt.Errorf("compile exclude expression: %w", err)
	}

	return exp, nil
}

func compileList(expressions []string) ([]CompiledExpression, error) {
	exprEnv := &config.Torrent{}

	out := make([]CompiledExpression, 0, len(expressions))
	for _, text := range expressions {
		// validate regex patterns before they are silently treated as non matching
		patterns, err := regex.PatternsFromExpression(text)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", text, err)
		}

		if err := regex.ValidatePatterns(patterns); err != nil {
			return nil, fmt.Errorf("%q: invalid regex pattern: %w", text, err)
		}

		program, err := expr.Compile(text, expr.Env(exprEnv), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%q: %w", text, err)
		}

		out = append(out, CompiledExpression{Program: program, Text: text})
	}

	return out, nil
}
